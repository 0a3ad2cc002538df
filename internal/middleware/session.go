package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

// Context keys populated by the session middleware. Handlers read the
// authenticated identity through these rather than touching the cookie.
const (
	CtxUserID       = "user_id"
	CtxRole         = "role"
	CtxName         = "name"
	CtxEmail        = "email"
	CtxSessionToken = "session_token"
)

// Authenticate returns a middleware that resolves the session cookie against
// the store and injects the caller's identity into the request context. A
// missing cookie or a token that does not resolve to a live session aborts
// the request with 401; expiry and logout are indistinguishable on purpose.
func Authenticate(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, token, ok := resolve(c, store)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			inject(c, sess, token)
			return next(c)
		}
	}
}

// OptionalAuthenticate behaves like Authenticate but lets unauthenticated
// requests through without context values. Used by endpoints that enrich
// their response for logged-in callers, such as the ratings read.
func OptionalAuthenticate(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, token, ok := resolve(c, store); ok {
				inject(c, sess, token)
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, store session.Store) (session.Session, string, bool) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}, "", false
	}
	sess, err := store.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return session.Session{}, "", false
	}
	return sess, cookie.Value, true
}

func inject(c echo.Context, sess session.Session, token string) {
	c.Set(CtxUserID, sess.UserID)
	c.Set(CtxRole, sess.Role)
	c.Set(CtxName, sess.Name)
	c.Set(CtxEmail, sess.Email)
	c.Set(CtxSessionToken, token)
}
