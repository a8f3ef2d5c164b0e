package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIKey(t *testing.T) {
	t.Run("creates a key", func(t *testing.T) {
		k, err := NewAPIKey(uuid.New(), "default", "hashed-value", nil)
		require.NoError(t, err)
		assert.Nil(t, k.ExpiresAt)
		assert.False(t, k.IsExpired(time.Now()))
	})

	t.Run("rejects empty hashed key", func(t *testing.T) {
		_, err := NewAPIKey(uuid.New(), "default", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty merchant id", func(t *testing.T) {
		_, err := NewAPIKey(uuid.Nil, "default", "hashed-value", nil)
		assert.Error(t, err)
	})
}

func TestAPIKeyIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	k, err := NewAPIKey(uuid.New(), "default", "hashed-value", &past)
	require.NoError(t, err)
	assert.True(t, k.IsExpired(time.Now()))

	future := time.Now().Add(time.Hour)
	k2, err := NewAPIKey(uuid.New(), "default", "hashed-value", &future)
	require.NoError(t, err)
	assert.False(t, k2.IsExpired(time.Now()))
}

func TestNewEphemeralKey(t *testing.T) {
	t.Run("creates a key with the epk_ prefix", func(t *testing.T) {
		k, err := NewEphemeralKey(uuid.New(), "cus_1", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, k.ID, "epk_")
		assert.False(t, k.IsExpired(time.Now()))
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := NewEphemeralKey(uuid.New(), "cus_1", 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty customer id", func(t *testing.T) {
		_, err := NewEphemeralKey(uuid.New(), "", 15*time.Minute)
		assert.Error(t, err)
	})
}

func TestEphemeralKeyIsExpired(t *testing.T) {
	k, err := NewEphemeralKey(uuid.New(), "cus_1", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	assert.True(t, k.IsExpired(time.Now()))
}
