package payments

// MerchantAccountType distinguishes a single-tenant merchant from a
// marketplace (Platform) and from a marketplace's seller (Connected).
type MerchantAccountType string

const (
	MerchantAccountTypeStandard  MerchantAccountType = "standard"
	MerchantAccountTypePlatform  MerchantAccountType = "platform"
	MerchantAccountTypeConnected MerchantAccountType = "connected"
)

// IsValid reports whether the account type is a recognized value.
func (t MerchantAccountType) IsValid() bool {
	switch t {
	case MerchantAccountTypeStandard, MerchantAccountTypePlatform, MerchantAccountTypeConnected:
		return true
	default:
		return false
	}
}

// InitiatorKind discriminates who is making the request, independent of
// which merchant account the request ultimately acts on.
type InitiatorKind string

const (
	InitiatorKindAdmin InitiatorKind = "admin"
	InitiatorKindAPI   InitiatorKind = "api"
	InitiatorKindJWT   InitiatorKind = "jwt"
)

// Initiator identifies the caller, independent of the merchant account(s)
// the request resolves to act on.
type Initiator struct {
	Kind InitiatorKind

	// Populated when Kind == InitiatorKindAPI.
	APIMerchantID string
	APIAccountType MerchantAccountType

	// Populated when Kind == InitiatorKindJWT.
	JWTUserID string
}

// MerchantIdentity is the minimal merchant-account shape the authentication
// resolver and pipeline need: enough to select a connector configuration
// and to enforce platform/connected delegation invariants.
type MerchantIdentity struct {
	MerchantID     string
	OrganizationID string
	AccountType    MerchantAccountType
}

// Platform is the resolved (processor, platform, initiator) triple handed
// by value from the authentication resolver to the execution pipeline.
// Processor is the merchant whose credentials actually talk to the
// downstream connector; Platform is the marketplace/ISV merchant, equal to
// Processor when no delegation occurred. Even when processor and platform
// are the same merchant, both fields hold independent copies: downstream
// code treats the two roles as distinct regardless of aliasing.
type Platform struct {
	Processor MerchantIdentity
	Platform  MerchantIdentity
	Initiator Initiator
}

// IsDelegated reports whether Platform is acting on behalf of a different
// merchant than Processor (i.e. a connected-merchant request).
func (p Platform) IsDelegated() bool {
	return p.Processor.MerchantID != p.Platform.MerchantID
}
