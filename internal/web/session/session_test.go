package session

import (
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenylist(t *testing.T) {
	d, err := New(memory.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	revoked, err := d.IsRevoked("abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke("abc", time.Minute))
	revoked, err = d.IsRevoked("abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, d.Revoke("expired", -time.Second))
	revoked, err = d.IsRevoked("expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewNilStorage(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilStorage)
}
