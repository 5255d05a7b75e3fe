package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

func TestManager_CreateGetDestroy(t *testing.T) {
	m := NewManager()

	token := m.Create(models.UserSession("marco.navarro@gmail.com", "71371668T"))
	require.NotEmpty(t, token)

	sess, ok := m.Get(token)
	require.True(t, ok)
	assert.Equal(t, models.RoleUser, sess.Role)
	assert.Equal(t, "71371668T", sess.DNI)

	m.Destroy(token)
	_, ok = m.Get(token)
	assert.False(t, ok, "destroyed session must not resolve")
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := NewManager()
	t1 := m.Create(models.AdminSession("admin@copacrm.com"))
	t2 := m.Create(models.AdminSession("admin@copacrm.com"))
	assert.NotEqual(t, t1, t2)
}

func TestManager_DestroyUnknownTokenIsNoop(t *testing.T) {
	m := NewManager()
	m.Destroy("missing")
	_, ok := m.Get("missing")
	assert.False(t, ok)
}
