package authn

import (
	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// AuthMethod records which branch of the resolver state machine produced
// the principal, for logging and for callers that need to distinguish
// (e.g. profile-scoped endpoints reject AdminApiAuth).
type AuthMethod string

const (
	AuthMethodPublishableKey AuthMethod = "publishable_key"
	AuthMethodAPIKey         AuthMethod = "api_key"
	AuthMethodEphemeralKey   AuthMethod = "ephemeral_key"
	AuthMethodAdminAPI       AuthMethod = "admin_api"
	AuthMethodJWT            AuthMethod = "jwt"
	AuthMethodBasic          AuthMethod = "basic"
)

// RequestHeaders is the subset of inbound headers the resolver reads.
// Every field is the raw header value; the resolver is responsible for
// all parsing and validation.
type RequestHeaders struct {
	APIKey              string // "api-key"
	Authorization       string // "Authorization": "Bearer <jwt>" | "Basic <b64>" or admin-api-key carried as a comma-separated value
	AdminAPIKey         string // "admin-api-key", when sent as its own header rather than folded into Authorization
	MerchantID          string // "X-Merchant-Id"
	ProfileID           string // "X-Profile-Id"
	ConnectedMerchantID string // "X-Connected-Merchant-Id"
	OrganizationID      string // "X-Organization-Id"
	InternalAPIKey      string // "X-Internal-API-Key"
	TenantID            string // tenant the request believes it is addressing, compared against the JWT's tenant_id claim
	CookieJWT           string // JWT carried in a cookie; used whenever no api-key, admin key or Bearer/Basic credential is present (there is no on/off setting)
}

// EndpointPolicy declares which initiator account types an endpoint will
// accept. Profile-scoped endpoints also set RequiresProfile so the
// resolver attaches (and validates) the requested profile.
type EndpointPolicy struct {
	IsPlatformAllowed  bool
	IsConnectedAllowed bool
	RequiresProfile    bool
}

// DefaultEndpointPolicy matches the common case: standard merchants only,
// no profile scoping.
func DefaultEndpointPolicy() EndpointPolicy {
	return EndpointPolicy{}
}

// AuthenticatedPrincipal is what the resolver hands to the orchestration
// layer: the resolved processor/platform/initiator triple, the method
// that produced it, and (when the endpoint is profile-scoped) the
// attached profile.
type AuthenticatedPrincipal struct {
	Platform payments.Platform
	Method   AuthMethod
	Profile  *identity.Profile

	// JWTPermissions and JWTRoleIDs are carried through only for
	// AuthMethodJWT; nil otherwise.
	JWTPermissions []string
	JWTRoleIDs     []string
}

// HasPermission reports whether the principal's JWT carried perm. Always
// false for non-JWT authentication methods — API-key and admin
// authentication are authorized by possession of the key itself, not by
// a permission list.
func (p AuthenticatedPrincipal) HasPermission(perm string) bool {
	for _, have := range p.JWTPermissions {
		if have == perm {
			return true
		}
	}
	return false
}
