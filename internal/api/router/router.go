package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	m "github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.RecoverMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 身份headers由gateway帶入，缺了就擋下
		r.Group(func(r chi.Router) {
			r.Use(m.IdentityMiddleware)
			r.Use(m.LoggerMiddleware(logger))

			r.Route("/books", func(r chi.Router) {
				r.Get("/", server.BookHandler.ListBooks)
				r.Get("/{bookID}", server.BookHandler.GetBook)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Get("/summary", server.CartHandler.GetSummary)
				r.Post("/add", server.CartHandler.AddItem)
				r.Patch("/update-quantity/{bookID}", server.CartHandler.UpdateQuantity)
				r.Delete("/remove/{bookID}", server.CartHandler.RemoveItem)
				r.Delete("/clear", server.CartHandler.ClearCart)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", server.FavoriteHandler.ListFavorites)
				r.Post("/{bookID}", server.FavoriteHandler.AddFavorite)
				r.Post("/{bookID}/toggle", server.FavoriteHandler.ToggleFavorite)
				r.Delete("/{bookID}", server.FavoriteHandler.RemoveFavorite)
				r.Delete("/", server.FavoriteHandler.ClearFavorites)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/checkout", server.OrderHandler.Checkout)
				r.Get("/", server.OrderHandler.ListOrders)
				r.Get("/{orderID}", server.OrderHandler.GetOrder)
			})
		})

		// 內部維運路由，庫存由外部庫存系統呼叫
		r.Group(func(r chi.Router) {
			r.Use(m.LoggerMiddleware(logger))

			r.Route("/admin/books", func(r chi.Router) {
				r.Post("/", server.BookHandler.CreateBook)
				r.Post("/{bookID}/stock/add", server.BookHandler.AddStock)
				r.Put("/{bookID}/stock", server.BookHandler.SetStock)
			})
		})
	})

	return r
}
