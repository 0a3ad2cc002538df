package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/handler"
	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

// RegisterClient registers the endpoints reserved for the client role:
// bookmarking halls, requesting bookings and rating halls.
func RegisterClient(e *echo.Echo, sessions session.Store,
	favorites *handler.FavoriteHandler, bookings *handler.BookingHandler, ratings *handler.RatingHandler) {
	g := e.Group("",
		middleware.Authenticate(sessions),
		middleware.RequireRole(model.RoleClient))

	g.POST("/favorites/add", favorites.Add)
	g.GET("/favorites/get", favorites.Get)
	g.DELETE("/favorites/remove", favorites.Remove)

	g.POST("/bookings/create", bookings.Create)

	g.POST("/ratings/submit", ratings.Submit)
}
