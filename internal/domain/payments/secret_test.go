package payments

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRedaction(t *testing.T) {
	t.Run("String never contains the raw value", func(t *testing.T) {
		secret := NewSecret[CardNumberTag]("4242424242424242")
		assert.NotContains(t, secret.String(), "4242")
		assert.NotContains(t, fmt.Sprintf("%v", secret), "4242")
		assert.NotContains(t, fmt.Sprintf("%s", secret), "4242")
	})

	t.Run("MarshalJSON never contains the raw value", func(t *testing.T) {
		secret := NewSecret[CardNumberTag]("4242424242424242")
		data, err := json.Marshal(secret)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "4242")
	})

	t.Run("zero value redacts to empty string", func(t *testing.T) {
		var secret CardNumber
		assert.True(t, secret.IsZero())
		assert.Equal(t, "", secret.String())
	})

	t.Run("Peek and Expose return the raw value", func(t *testing.T) {
		secret := NewSecret[EmailTag]("a@b.com")
		assert.Equal(t, "a@b.com", secret.Peek())
		assert.Equal(t, "a@b.com", secret.Expose())
	})

	t.Run("UnmarshalJSON accepts a plain string", func(t *testing.T) {
		var secret Email
		err := json.Unmarshal([]byte(`"a@b.com"`), &secret)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", secret.Peek())
	})

	t.Run("struct embedding a secret redacts via the field's marshaler", func(t *testing.T) {
		type holder struct {
			Number CardNumber `json:"number"`
		}
		h := holder{Number: NewSecret[CardNumberTag]("4242424242424242")}
		data, err := json.Marshal(h)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "4242")
	})

	t.Run("distinct tags are distinct types", func(t *testing.T) {
		// CardNumber and Email are different instantiations of Secret;
		// this is a compile-time property, exercised here only to document it.
		var _ CardNumber = NewSecret[CardNumberTag]("x")
		var _ Email = NewSecret[EmailTag]("x")
	})
}
