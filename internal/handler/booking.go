package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/queue"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
)

// BookingStore is the persistence surface for bookings, satisfied by
// *repository.BookingRepo.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	UpdateStatus(ctx context.Context, bookingID, ownerID uint64, status model.BookingStatus) (*model.Booking, error)
	ListForClient(ctx context.Context, userID uint64) ([]*model.BookingDetail, error)
	ListForOwner(ctx context.Context, ownerID uint64) ([]*model.BookingDetail, error)
}

// EventPublisher pushes booking status changes onto the message broker.
// A nil publisher disables eventing without touching the request path.
type EventPublisher interface {
	BookingStatusChanged(ctx context.Context, event queue.BookingStatusEvent) error
}

// BookingHandler implements booking creation, listing and the owner's
// status transitions.
type BookingHandler struct {
	Bookings BookingStore
	Halls    HallStore
	Events   EventPublisher
}

func NewBookingHandler(bookings BookingStore, halls HallStore, events EventPublisher) *BookingHandler {
	if bookings == nil || halls == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Halls: halls, Events: events}
}

type createBookingReq struct {
	HallID    uint64 `json:"hall_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type updateBookingReq struct {
	Status string `json:"status"`
}

// Create handles POST /bookings/create (client only). Validation runs in a
// fixed order: date shape, range direction, past start, hall existence, then
// the conflict check inside the repository transaction.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id, start_date and end_date are required"})
	}
	rng, err := model.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if rng.StartsBefore(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start date cannot be in the past"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	booking := &model.Booking{
		UserID:    userID,
		HallID:    req.HallID,
		StartDate: rng.Start.Format(model.DateLayout),
		EndDate:   rng.End.Format(model.DateLayout),
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall is already booked for the requested dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// List handles GET /bookings/get. The result set follows the caller's role:
// clients see their own requests, owners see every booking across their
// halls.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, ok := currentRole(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	var bookings []*model.BookingDetail
	if role == model.RoleOwner {
		bookings, err = h.Bookings.ListForOwner(ctx, userID)
	} else {
		bookings, err = h.Bookings.ListForClient(ctx, userID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if bookings == nil {
		bookings = []*model.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// UpdateStatus handles PUT /bookings/update?id= (owner only). Approving a
// booking whose range now collides with another approved one fails with 409;
// the repository holds the row locked while it decides.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking id is required"})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, ok := model.ParseBookingStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be one of pending, approved, rejected, cancelled"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	booking, err := h.Bookings.UpdateStatus(ctx, id, ownerID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrBookingConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall is already booked for the requested dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update booking"})
	}

	h.publishStatusChange(ctx, ownerID, booking)
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// publishStatusChange emits the status event. Failures are the publisher's
// problem; the status change already committed and the response must not
// depend on the broker.
func (h *BookingHandler) publishStatusChange(ctx context.Context, ownerID uint64, b *model.Booking) {
	if h.Events == nil {
		return
	}
	hallName := ""
	if hall, err := h.Halls.GetByID(ctx, b.HallID); err == nil {
		hallName = hall.Name
	}
	_ = h.Events.BookingStatusChanged(ctx, queue.BookingStatusEvent{
		BookingID: b.ID,
		HallID:    b.HallID,
		HallName:  hallName,
		ClientID:  b.UserID,
		OwnerID:   ownerID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    string(b.Status),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
