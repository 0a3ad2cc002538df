package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
)

// FavoriteStore is the persistence surface for bookmarks, satisfied by
// *repository.FavoriteRepo.
type FavoriteStore interface {
	Add(ctx context.Context, userID, hallID uint64) error
	Remove(ctx context.Context, userID, hallID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]*model.FavoriteHall, error)
}

// FavoriteHandler implements the client's bookmark endpoints.
type FavoriteHandler struct {
	Favorites FavoriteStore
	Halls     HallStore
}

func NewFavoriteHandler(favorites FavoriteStore, halls HallStore) *FavoriteHandler {
	if favorites == nil || halls == nil {
		panic("nil dependency passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: favorites, Halls: halls}
}

type favoriteReq struct {
	HallID uint64 `json:"hall_id"`
}

// Add handles POST /favorites/add. Re-adding a hall already favorited is a
// success, not a conflict.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req favoriteReq
	if err := c.Bind(&req); err != nil || req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Favorites.Add(ctx, userID, req.HallID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add favorite"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Get handles GET /favorites/get.
func (h *FavoriteHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	favorites, err := h.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if favorites == nil {
		favorites = []*model.FavoriteHall{}
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": favorites})
}

// Remove handles DELETE /favorites/remove?id=, where id is the hall id.
// Removing a favorite that does not exist still succeeds.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall id is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Favorites.Remove(ctx, userID, hallID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove favorite"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
