package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/handler"
	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

// RegisterOwner registers the endpoints reserved for the owner role: hall
// management and booking status decisions.
func RegisterOwner(e *echo.Echo, sessions session.Store,
	halls *handler.HallHandler, bookings *handler.BookingHandler) {
	g := e.Group("",
		middleware.Authenticate(sessions),
		middleware.RequireRole(model.RoleOwner))

	g.GET("/halls/getOwner", halls.GetOwner)
	g.POST("/halls/add", halls.Add)
	g.PUT("/halls/update", halls.Update)
	g.DELETE("/halls/delete", halls.Delete)
	g.POST("/halls/uploadImages", halls.UploadImages)

	g.PUT("/bookings/update", bookings.UpdateStatus)
}
