// Package authn implements the authentication resolver: the state
// machine that turns a request's headers into an authenticated
// principal (the resolved processor/platform/initiator triple, plus the
// profile the request is scoped to, if any).
package authn

import "github.com/erp/paymentrouter/internal/domain/shared"

// Resolution errors. These are domain errors, not HTTP errors; the
// interfaces/http layer maps them onto the invalid_request envelope.
var (
	ErrMissingCredentials      = shared.NewDomainError("MISSING_CREDENTIALS", "no recognized authentication header was present")
	ErrInvalidAPIKey           = shared.NewDomainError("INVALID_API_KEY", "api key is empty, unknown, or expired")
	ErrInvalidEphemeralKey     = shared.NewDomainError("INVALID_EPHEMERAL_KEY", "ephemeral key is unknown or expired")
	ErrInvalidAdminKey         = shared.NewDomainError("INVALID_ADMIN_KEY", "admin api key did not match")
	ErrInvalidJWT              = shared.NewDomainError("INVALID_JWT", "jwt failed signature, expiry, or claim verification")
	ErrTokenRevoked            = shared.NewDomainError("TOKEN_REVOKED", "token has been revoked")
	ErrTenantMismatch          = shared.NewDomainError("TENANT_MISMATCH", "jwt tenant does not match the request's tenant")
	ErrPermissionDenied        = shared.NewDomainError("PERMISSION_DENIED", "principal lacks the required permission")
	ErrBasicAuthUnsupported    = shared.NewDomainError("BASIC_AUTH_UNSUPPORTED", "no identity provider configured for basic auth")
	ErrMerchantNotFound        = shared.NewDomainError("MERCHANT_NOT_FOUND", "resolved merchant account does not exist")
	ErrPlatformNotEnabled      = shared.NewDomainError("PLATFORM_NOT_ENABLED", "platform feature is disabled by runtime configuration")
	ErrInvalidPlatformOp       = shared.NewDomainError("InvalidPlatformOperation", "a standard merchant cannot act on a connected merchant")
	ErrInvalidConnectedOp      = shared.NewDomainError("InvalidConnectedOperation", "a connected merchant cannot act on another merchant")
	ErrConnectedMismatch       = shared.NewDomainError("INVALID_CONNECTED_MERCHANT", "connected merchant does not belong to the initiator's organization or is not of type connected")
	ErrPlatformNotAllowed      = shared.NewDomainError("PlatformAccountAuthNotSupported", "this endpoint does not accept platform-initiated requests")
	ErrConnectedNotAllowed     = shared.NewDomainError("ConnectedAccountAuthNotSupported", "this endpoint does not accept connected-initiated requests")
	ErrProfileNotFound         = shared.NewDomainError("PROFILE_NOT_FOUND", "requested profile does not exist")
	ErrProfileMerchantMismatch = shared.NewDomainError("PROFILE_MERCHANT_MISMATCH", "requested profile belongs to a different merchant")
)
