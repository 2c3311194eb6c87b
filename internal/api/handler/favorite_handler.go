package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type FavoriteHandler struct {
	favoriteService service.IFavoriteService
}

func NewFavoriteHandler(favoriteService service.IFavoriteService) *FavoriteHandler {
	if favoriteService == nil {
		panic("favoriteService cannot be nil")
	}
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	favorites, err := h.favoriteService.ListFavorites(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.ConvertFavoritesToDTOs(favorites))
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	_, created, err := h.favoriteService.AddToFavorites(r.Context(), *requester, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// 重複加同一本不是錯誤，只差在狀態碼
	if created {
		CreatedJSON(w, map[string]bool{"favorited": true})
		return
	}
	SuccessJSON(w, map[string]bool{"favorited": true})
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	removed, err := h.favoriteService.RemoveFromFavorites(r.Context(), *requester, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]bool{"removed": removed})
}

func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	favorited, action, err := h.favoriteService.Toggle(r.Context(), *requester, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.ToggleFavoriteResponse{Favorited: favorited, Action: action})
}

func (h *FavoriteHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	deleted, err := h.favoriteService.ClearFavorites(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]int64{"deleted": deleted})
}
