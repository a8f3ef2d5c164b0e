package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

func newTestConnectorAccount(t *testing.T) *MerchantConnectorAccount {
	t.Helper()
	mca, err := NewMerchantConnectorAccount(
		uuid.New(), uuid.New(), "stripe", ConnectorTypePaymentProcessor,
		payments.NewSecret[payments.ConnectorAccountDetailsTag]("{}"),
	)
	require.NoError(t, err)
	return mca
}

func TestNewMerchantConnectorAccount(t *testing.T) {
	t.Run("creates an active account", func(t *testing.T) {
		mca := newTestConnectorAccount(t)
		assert.Equal(t, ConnectorAccountStatusActive, mca.Status)
		assert.True(t, mca.IsUsable())
	})

	t.Run("rejects empty connector name", func(t *testing.T) {
		_, err := NewMerchantConnectorAccount(uuid.New(), uuid.New(), "", ConnectorTypePaymentProcessor, payments.ConnectorAccountDetails{})
		assert.Error(t, err)
	})
}

func TestMerchantConnectorAccountPaymentMethods(t *testing.T) {
	mca := newTestConnectorAccount(t)

	assert.False(t, mca.SupportsPaymentMethod("card"))

	mca.EnablePaymentMethod("card")
	mca.EnablePaymentMethod("card") // idempotent
	assert.True(t, mca.SupportsPaymentMethod("card"))
	assert.Len(t, mca.PaymentMethodsEnabled, 1)

	mca.DisablePaymentMethod("card")
	assert.False(t, mca.SupportsPaymentMethod("card"))
}

func TestMerchantConnectorAccountDisableOverridesStatus(t *testing.T) {
	mca := newTestConnectorAccount(t)
	require.True(t, mca.IsUsable())

	mca.Disable()
	assert.False(t, mca.IsUsable())
	assert.Equal(t, ConnectorAccountStatusActive, mca.Status)

	mca.Enable()
	assert.True(t, mca.IsUsable())
}

func TestMerchantConnectorAccountDeactivate(t *testing.T) {
	mca := newTestConnectorAccount(t)
	mca.Deactivate()
	assert.False(t, mca.IsUsable())
	mca.Activate()
	assert.True(t, mca.IsUsable())
}
