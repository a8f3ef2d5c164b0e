package payments

import (
	"encoding/json"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// connectorAuthPayload is the plaintext JSON shape stored, encrypted
// under the merchant's key-store key, inside a MerchantConnectorAccount's
// ConnectorAccountDetails. It is decoded only at the one site that is
// about to hand credentials to a connector's request builders.
type connectorAuthPayload struct {
	AuthType  string `json:"auth_type"`
	APIKey    string `json:"api_key,omitempty"`
	KeyID     string `json:"key_id,omitempty"`
	APISecret string `json:"api_secret,omitempty"`
}

// connectorAuthFromAccount decodes account's stored credentials into the
// payments.ConnectorAuth shape a connector's request builders expect.
func connectorAuthFromAccount(account *identity.MerchantConnectorAccount) (payments.ConnectorAuth, error) {
	raw := account.ConnectorAccountDetails.Expose()
	if raw == "" {
		return payments.ConnectorAuth{}, ErrInvalidConnectorAuth
	}

	var decoded connectorAuthPayload
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return payments.ConnectorAuth{}, ErrInvalidConnectorAuth
	}

	authType := payments.AuthType(decoded.AuthType)
	switch authType {
	case payments.AuthTypeHeaderKey, payments.AuthTypeBodyKey, payments.AuthTypeSignatureKey, payments.AuthTypeNoKey:
	default:
		return payments.ConnectorAuth{}, ErrInvalidConnectorAuth
	}

	return payments.ConnectorAuth{
		Type:      authType,
		APIKey:    payments.NewSecret[payments.ConnectorKeyTag](decoded.APIKey),
		KeyID:     decoded.KeyID,
		APISecret: payments.NewSecret[payments.ConnectorKeyTag](decoded.APISecret),
	}, nil
}
