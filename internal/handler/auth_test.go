package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-hall-booking/internal/config"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

func newAuthTestHandler() (*AuthHandler, *fakeUserStore, *session.MemoryStore) {
	users := newFakeUserStore()
	sessions := session.NewMemoryStore(time.Hour)
	cfg := config.Config{BcryptCost: 4, SessionTTLDays: 7}
	return NewAuthHandler(cfg, users, sessions), users, sessions
}

func decodeBody(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestSignupCreatesAccountAndSession(t *testing.T) {
	h, users, _ := newAuthTestHandler()

	c, rec := newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"Sara","email":"sara@example.com","password":"secret1","role":"client"}`)
	require.NoError(t, h.Signup(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	user := body["user"].(map[string]any)
	assert.Equal(t, "sara@example.com", user["email"])
	assert.Equal(t, "client", user["role"])
	assert.NotContains(t, user, "password_hash")

	// A session cookie must ride along with the created account.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	_, ok := users.byEmail["sara@example.com"]
	assert.True(t, ok)
}

func TestSignupDefaultsRoleToClient(t *testing.T) {
	h, users, _ := newAuthTestHandler()

	c, rec := newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"Omid","email":"omid@example.com","password":"secret1"}`)
	require.NoError(t, h.Signup(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.RoleClient, users.byEmail["omid@example.com"].Role)
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"email":"a@b.com"}`},
		{"bad email", `{"name":"X","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"X","email":"x@example.com","password":"abc"}`},
		{"unknown role", `{"name":"X","email":"x@example.com","password":"secret1","role":"admin"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _, _ := newAuthTestHandler()
			c, rec := newTestCtx(http.MethodPost, "/auth/signup", tc.body)
			require.NoError(t, h.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	h, _, _ := newAuthTestHandler()

	c, rec := newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"A","email":"dup@example.com","password":"secret1"}`)
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"B","email":"dup@example.com","password":"secret2"}`)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongCredentialsAreIndistinguishable(t *testing.T) {
	h, _, _ := newAuthTestHandler()
	c, rec := newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"A","email":"a@example.com","password":"secret1"}`)
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newTestCtx(http.MethodPost, "/auth/login",
		`{"email":"a@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPass := decodeBody(t, rec.Body.Bytes())["error"]

	c, rec = newTestCtx(http.MethodPost, "/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	noAccount := decodeBody(t, rec.Body.Bytes())["error"]

	assert.Equal(t, wrongPass, noAccount)
}

func TestLoginSuccess(t *testing.T) {
	h, _, sessions := newAuthTestHandler()
	c, rec := newTestCtx(http.MethodPost, "/auth/signup",
		`{"name":"A","email":"a@example.com","password":"secret1","role":"owner"}`)
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newTestCtx(http.MethodPost, "/auth/login",
		`{"email":"a@example.com","password":"secret1"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	sess, err := sessions.Get(c.Request().Context(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, sess.Role)
}

func TestMeWithoutSession(t *testing.T) {
	h, _, _ := newAuthTestHandler()
	c, rec := newTestCtx(http.MethodGet, "/auth/me", "")
	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	assert.Nil(t, body["user"])
}

func TestMeReturnsFreshUser(t *testing.T) {
	h, users, _ := newAuthTestHandler()
	u, err := users.Create(context.Background(), "A", "a@example.com", "secret1", model.RoleClient, 4)
	require.NoError(t, err)

	c, rec := newTestCtx(http.MethodGet, "/auth/me", "")
	asUser(c, u.ID, u.Role)
	require.NoError(t, h.Me(c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, true, body["isAuthenticated"])
	assert.Equal(t, "a@example.com", body["user"].(map[string]any)["email"])
}

func TestLogoutDeletesSessionAndExpiresCookie(t *testing.T) {
	h, _, sessions := newAuthTestHandler()
	token, err := sessions.Create(context.Background(), session.Session{UserID: 1, Role: model.RoleClient})
	require.NoError(t, err)

	c, rec := newTestCtx(http.MethodPost, "/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	require.NoError(t, h.Logout(c))

	require.Equal(t, http.StatusOK, rec.Code)
	_, err = sessions.Get(context.Background(), token)
	assert.ErrorIs(t, err, session.ErrNotFound)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestUpdateProfileChangesNameOnly(t *testing.T) {
	h, users, _ := newAuthTestHandler()
	u, err := users.Create(context.Background(), "Old", "a@example.com", "secret1", model.RoleClient, 4)
	require.NoError(t, err)

	c, rec := newTestCtx(http.MethodPut, "/auth/updateProfile", `{"name":"New"}`)
	asUser(c, u.ID, u.Role)
	require.NoError(t, h.UpdateProfile(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", users.byEmail["a@example.com"].Name)
	assert.Equal(t, "a@example.com", users.byEmail["a@example.com"].Email)
}
