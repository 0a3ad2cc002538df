package handler // handler implements the HTTP endpoints of the API

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// requestCtx derives a bounded context from the request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUserID extracts the authenticated user's id from the context set by
// the session middleware.
func currentUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("no authenticated user in context")
}

// currentRole extracts the authenticated user's role from the context.
func currentRole(c echo.Context) (model.Role, bool) {
	role, ok := c.Get(middleware.CtxRole).(model.Role)
	return role, ok && role.Valid()
}

// idQueryParam parses the ?id= query parameter common to detail, update and
// delete endpoints.
func idQueryParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
