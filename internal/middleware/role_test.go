package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []model.Role
		have    any
		want    int
	}{
		{"matching role", []model.Role{model.RoleOwner}, model.RoleOwner, http.StatusOK},
		{"wrong role", []model.Role{model.RoleOwner}, model.RoleClient, http.StatusForbidden},
		{"either of two", []model.Role{model.RoleOwner, model.RoleClient}, model.RoleClient, http.StatusOK},
		{"missing role", []model.Role{model.RoleOwner}, nil, http.StatusForbidden},
		{"unknown role value", []model.Role{model.RoleOwner}, model.Role("admin"), http.StatusForbidden},
		{"role as raw string", []model.Role{model.RoleOwner}, "owner", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newRequestCtx("")
			if tc.have != nil {
				c.Set(CtxRole, tc.have)
			}
			require.NoError(t, RequireRole(tc.allowed...)(okHandler)(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
