package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readieg/library/internal/domain/user"
)

func TestSessionValue(t *testing.T) {
	anon := Anonymous()
	assert.False(t, anon.Authenticated())
	assert.False(t, anon.Exists())

	s := Session{ID: "sid", UserID: "u1", Role: user.RoleUser}
	promoted := s.WithRole(user.RoleAdmin)

	assert.Equal(t, user.RoleAdmin, promoted.Role)
	assert.Equal(t, user.RoleUser, s.Role, "原值不变")
	assert.True(t, promoted.Authenticated())
}
