package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
)

// RatingStore is the persistence surface for ratings, satisfied by
// *repository.RatingRepo.
type RatingStore interface {
	Upsert(ctx context.Context, userID, hallID uint64, value int) error
	StatsByHall(ctx context.Context, hallID uint64) (model.RatingStats, error)
	UserRating(ctx context.Context, userID, hallID uint64) (*model.Rating, error)
}

// ApprovalChecker answers whether a user ever had a booking approved for a
// hall. Satisfied by *repository.BookingRepo.
type ApprovalChecker interface {
	HasApproved(ctx context.Context, userID, hallID uint64) (bool, error)
}

// RatingHandler implements the public rating lookup and the client's
// submission endpoint.
type RatingHandler struct {
	Ratings  RatingStore
	Bookings ApprovalChecker
	Halls    HallStore
}

func NewRatingHandler(ratings RatingStore, bookings ApprovalChecker, halls HallStore) *RatingHandler {
	if ratings == nil || bookings == nil || halls == nil {
		panic("nil dependency passed to NewRatingHandler")
	}
	return &RatingHandler{Ratings: ratings, Bookings: bookings, Halls: halls}
}

type submitRatingReq struct {
	HallID uint64 `json:"hall_id"`
	Rating int    `json:"rating"`
}

// Get handles GET /ratings/get?id=. Public, but when the request carries a
// valid session the caller's own rating rides along so the frontend can
// preselect it.
func (h *RatingHandler) Get(c echo.Context) error {
	hallID, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall id is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	stats, err := h.Ratings.StatsByHall(ctx, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := echo.Map{
		"average_rating": stats.Average,
		"total_ratings":  stats.Count,
	}
	if userID, err := currentUserID(c); err == nil {
		own, err := h.Ratings.UserRating(ctx, userID, hallID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if own != nil {
			resp["user_rating"] = own.Rating
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Submit handles POST /ratings/submit (client only). Only users who had a
// booking approved for the hall may rate it; a resubmission overwrites the
// previous value. The refreshed aggregate comes back in the response.
func (h *RatingHandler) Submit(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitRatingReq
	if err := c.Bind(&req); err != nil || req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id and rating are required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	ok, err := h.Bookings.HasApproved(ctx, userID, req.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only clients with an approved booking can rate this hall"})
	}

	if err := h.Ratings.Upsert(ctx, userID, req.HallID, req.Rating); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save rating"})
	}
	stats, err := h.Ratings.StatsByHall(ctx, req.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"average_rating": stats.Average,
		"total_ratings":  stats.Count,
		"user_rating":    req.Rating,
	})
}
