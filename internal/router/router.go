// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wedding-hall-booking/internal/config"
	"github.com/iliyamo/wedding-hall-booking/internal/handler"
	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

// RegisterRoutes registers the routes that carry no authentication at all:
// the health check, the uploaded-file static mount and the public browse
// endpoints. The ratings read gets optional auth so logged-in callers see
// their own rating in the response.
func RegisterRoutes(e *echo.Echo, uploadDir string, sessions session.Store,
	halls *handler.HallHandler, ratings *handler.RatingHandler) {
	e.GET("/healthz", handler.Health)
	e.Static("/uploads", uploadDir)

	e.GET("/halls/get", halls.GetAll)
	e.GET("/halls/detail", halls.Detail)
	e.GET("/ratings/get", ratings.Get, middleware.OptionalAuthenticate(sessions))
}

// RegisterAuth registers the account endpoints. Signup and login sit behind
// the rate limiter; the profile mutations require a live session. /auth/me
// uses optional auth because a guest probing it is a normal page load, not
// an error.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sessions session.Store,
	rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/auth")
	limited := middleware.RateLimit(rl, rdb)
	g.POST("/signup", a.Signup, limited)
	g.POST("/login", a.Login, limited)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.OptionalAuthenticate(sessions))

	authed := middleware.Authenticate(sessions)
	g.PUT("/updateProfile", a.UpdateProfile, authed)
	g.POST("/uploadProfilePicture", a.UploadProfilePicture, authed)
}

// RegisterBookingList registers the shared bookings listing. Both roles use
// the same route; the handler switches the result set on the caller's role.
func RegisterBookingList(e *echo.Echo, sessions session.Store, bookings *handler.BookingHandler) {
	e.GET("/bookings/get", bookings.List, middleware.Authenticate(sessions))
}
