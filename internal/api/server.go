package api

import "github.com/RoyceAzure/lab/bookstore/internal/api/handler"

type Server struct {
	BookHandler     *handler.BookHandler
	CartHandler     *handler.CartHandler
	FavoriteHandler *handler.FavoriteHandler
	OrderHandler    *handler.OrderHandler
}

func NewServer(
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	favoriteHandler *handler.FavoriteHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		BookHandler:     bookHandler,
		CartHandler:     cartHandler,
		FavoriteHandler: favoriteHandler,
		OrderHandler:    orderHandler,
	}
}
