package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("client")
	assert.True(t, ok)
	assert.Equal(t, RoleClient, r)

	r, ok = ParseRole("owner")
	assert.True(t, ok)
	assert.Equal(t, RoleOwner, r)

	for _, bad := range []string{"", "admin", "Client", "OWNER"} {
		_, ok := ParseRole(bad)
		assert.False(t, ok, bad)
	}
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, RoleOwner.CanManageHalls())
	assert.False(t, RoleOwner.CanBook())

	assert.True(t, RoleClient.CanBook())
	assert.False(t, RoleClient.CanManageHalls())

	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
