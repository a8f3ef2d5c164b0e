package identity

import (
	"time"

	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// WebhookDetails is where a merchant's own webhook endpoint and the
// secret used to sign callbacks the router sends outbound to it are
// configured. Distinct from a connector's inbound webhook secret, which
// lives on the MerchantConnectorAccount.
type WebhookDetails struct {
	URL    string
	Secret payments.WebhookSecret
}

// defaultSessionExpiry matches the exemplar processor's own default for
// an ephemeral checkout session.
const defaultSessionExpiry = 15 * time.Minute

// Profile is a merchant's business-unit scoping: a named configuration
// surface (return URL, webhook target, routing algorithm, session
// lifetime) that MerchantConnectorAccounts and requests are attached to.
// A merchant with multiple storefronts or regions typically runs one
// profile per storefront.
type Profile struct {
	shared.BaseAggregateRoot
	MerchantID             uuid.UUID
	Name                   string
	ReturnURL              string
	PaymentResponseHashKey payments.ResponseHashKey
	Webhook                WebhookDetails
	RoutingAlgorithmID     string
	SessionExpiry          time.Duration
	IsPlatformAllowed      bool
	IsConnectedAllowed     bool
}

// NewProfile creates a profile under merchantID with the router's
// defaults: no routing algorithm assigned yet, and neither Platform nor
// Connected initiators permitted until explicitly opted in.
func NewProfile(merchantID uuid.UUID, name string) (*Profile, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MERCHANT_ID", "merchant id cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROFILE_NAME", "profile name cannot be empty")
	}

	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MerchantID:        merchantID,
		Name:              name,
		SessionExpiry:     defaultSessionExpiry,
	}, nil
}

// SetReturnURL sets the URL the exemplar processor redirects the
// customer to after a redirect-based authentication flow.
func (p *Profile) SetReturnURL(url string) {
	p.ReturnURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPaymentResponseHashKey sets the key used to compute the response
// hash merchants verify against on their own webhook-less integrations.
func (p *Profile) SetPaymentResponseHashKey(key payments.ResponseHashKey) {
	p.PaymentResponseHashKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetWebhook configures the merchant's own outbound webhook target.
func (p *Profile) SetWebhook(details WebhookDetails) {
	p.Webhook = details
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetRoutingAlgorithm assigns the routing algorithm this profile's
// requests are evaluated against. Empty clears back to the platform
// default.
func (p *Profile) SetRoutingAlgorithm(algorithmID string) {
	p.RoutingAlgorithmID = algorithmID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSessionExpiry overrides the default ephemeral-session lifetime.
func (p *Profile) SetSessionExpiry(d time.Duration) error {
	if d <= 0 {
		return shared.NewDomainError("INVALID_SESSION_EXPIRY", "session expiry must be positive")
	}
	p.SessionExpiry = d
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AllowPlatformInitiators opts this profile's endpoints into accepting
// requests initiated by a Platform merchant on behalf of a Connected one.
func (p *Profile) AllowPlatformInitiators(allowed bool) {
	p.IsPlatformAllowed = allowed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AllowConnectedInitiators opts this profile's endpoints into accepting
// requests initiated directly by a Connected merchant.
func (p *Profile) AllowConnectedInitiators(allowed bool) {
	p.IsConnectedAllowed = allowed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// BelongsTo reports whether this profile is scoped to merchantID,
// the check the resolver performs before attaching a requested profile
// to the authenticated principal.
func (p *Profile) BelongsTo(merchantID uuid.UUID) bool {
	return p.MerchantID == merchantID
}
