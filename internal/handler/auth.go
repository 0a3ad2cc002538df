package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/config"
	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
	"github.com/iliyamo/wedding-hall-booking/internal/utils"
)

// UserStore is the persistence surface the auth endpoints need. It is
// satisfied by *repository.UserRepo; tests substitute a fake.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, role model.Role, cost int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	UpdateName(ctx context.Context, id uint64, name string) (*model.User, error)
	UpdateProfilePicture(ctx context.Context, id uint64, url string) (*model.User, error)
}

// AuthHandler bundles dependencies for signup, login, logout, the session
// probe and profile updates.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, users UserStore, sessions session.Store) *AuthHandler {
	if users == nil || sessions == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// ----- DTOs -----

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileReq struct {
	Name string `json:"name"`
}

// Signup handles POST /auth/signup: create the account and log it in
// immediately by establishing a session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Password = strings.TrimSpace(req.Password)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	role := model.RoleClient // default when omitted
	if s := strings.TrimSpace(req.Role); s != "" {
		var ok bool
		if role, ok = model.ParseRole(s); !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be either client or owner"})
		}
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if err := h.startSession(c, ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u})
}

// Login handles POST /auth/login. A missing account and a wrong password
// produce the same response so the endpoint cannot be used to probe emails.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	if err := h.startSession(c, ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// Logout handles POST /auth/logout: drop the server-side session and expire
// the cookie. Logging out without a live session still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		ctx, cancel := requestCtx(c)
		defer cancel()
		_ = h.Sessions.Delete(ctx, cookie.Value)
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me handles GET /auth/me behind the optional-auth middleware. The frontend
// calls it on load to restore a logged-in state; 401 with a null user is the
// expected answer for guests, not an error condition.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"user": nil})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		// The account may have been removed while the session lived on.
		return c.JSON(http.StatusUnauthorized, echo.Map{"user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u, "isAuthenticated": true})
}

// UpdateProfile handles PUT /auth/updateProfile. Only the display name is
// mutable; the session's cached copy is refreshed alongside the row.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.UpdateName(ctx, userID, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.refreshSession(c, ctx, u)
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// UploadProfilePicture handles POST /auth/uploadProfilePicture (multipart,
// field profile_picture, max 2MB).
func (h *AuthHandler) UploadProfilePicture(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	url, err := saveUpload(fh, h.Cfg.UploadDir, "profile_pictures", "profile", userID, maxProfilePictureSize)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) || errors.Is(err, errUploadBadType) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save file"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Users.UpdateProfilePicture(ctx, userID, url)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.refreshSession(c, ctx, u)
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// startSession mints a session for the user and sets the HTTP-only cookie.
func (h *AuthHandler) startSession(c echo.Context, ctx context.Context, u *model.User) error {
	token, err := h.Sessions.Create(ctx, session.Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// refreshSession rewrites the session's cached user fields after a profile
// change. Best effort: a store miss means the session expired mid-request
// and the next request will see the 401.
func (h *AuthHandler) refreshSession(c echo.Context, ctx context.Context, u *model.User) {
	token, ok := c.Get(middleware.CtxSessionToken).(string)
	if !ok || token == "" {
		return
	}
	_ = h.Sessions.Update(ctx, token, session.Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
