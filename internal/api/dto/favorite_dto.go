package dto

import (
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
)

type FavoriteDTO struct {
	BookID    uint            `json:"book_id"`
	BookName  string          `json:"book_name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

type ToggleFavoriteResponse struct {
	Favorited bool   `json:"favorited"`
	Action    string `json:"action"`
}

func ConvertFavoritesToDTOs(favorites []model.Favorite) []FavoriteDTO {
	dtos := make([]FavoriteDTO, 0, len(favorites))
	for _, favorite := range favorites {
		dtos = append(dtos, FavoriteDTO{
			BookID:    favorite.BookID,
			BookName:  favorite.Book.Name,
			Price:     favorite.Book.Price,
			CreatedAt: favorite.CreatedAt,
		})
	}
	return dtos
}
