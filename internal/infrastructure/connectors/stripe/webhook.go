package stripe

import (
	"encoding/json"

	"github.com/erp/paymentrouter/internal/domain/payments"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

// VerifyWebhookSource implements connector.WebhookSourceVerifier: it HMACs
// the raw body against the configured webhook secret and checks it
// against the Stripe-Signature header, using stripe-go's verification
// helper rather than reimplementing HMAC comparison by hand. A
// verification failure returns (false, nil) — not a Go error — so the
// caller can map it to a 401 without parsing the body at all.
func (c *Connector) VerifyWebhookSource(req payments.WebhookSourceVerifyData) (bool, error) {
	if c.cfg.WebhookSecret == "" {
		return false, payments.NewConnectorError(payments.ErrCodeWebhookSignatureNotFound, "no webhook secret configured")
	}
	if req.SignatureHeader == "" {
		return false, payments.NewConnectorError(payments.ErrCodeWebhookSignatureNotFound, "missing Stripe-Signature header")
	}
	_, err := stripewebhook.ConstructEvent(req.RawBody, req.SignatureHeader, c.cfg.WebhookSecret)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// wireEventEnvelope mirrors the generic shape of every Stripe webhook
// event: a type discriminator and a nested data.object whose schema
// depends on that type.
type wireEventEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// wireEventObjectID is the minimal shape every event's data.object carries,
// used to extract the affected resource's id without needing to know its
// full per-type schema.
type wireEventObjectID struct {
	ID     string `json:"id"`
	Status string `json:"status"` // dispute events carry the network's status here
}

// DecodeEventEnvelope decodes the outer event envelope only; it does not
// interpret Type, leaving event-kind classification to the webhook
// dispatcher's closed enum.
func DecodeEventEnvelope(body []byte) (eventType string, objectID string, objectStatus string, err error) {
	var env wireEventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", "", "", err
	}
	var obj wireEventObjectID
	if len(env.Data.Object) > 0 {
		if err := json.Unmarshal(env.Data.Object, &obj); err != nil {
			return "", "", "", err
		}
	}
	return env.Type, obj.ID, obj.Status, nil
}

// DecodeWebhookEvent implements connector.WebhookEventDecoder by
// delegating to DecodeEventEnvelope.
func (c *Connector) DecodeWebhookEvent(body []byte) (eventType string, objectID string, objectStatus string, err error) {
	return DecodeEventEnvelope(body)
}
