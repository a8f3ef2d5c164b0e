package authn

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/infrastructure/auth"
)

// Resolver implements the authentication state machine described in the
// external-interfaces contract: classify the request's headers into one
// of six credential forms, resolve it to a (processor, platform,
// initiator) triple, and — for profile-scoped endpoints — attach the
// requested profile.
type Resolver struct {
	accounts  identity.MerchantAccountRepository
	profiles  identity.ProfileRepository
	apiKeys   identity.ApiKeyRepository
	ephemeral identity.EphemeralKeyRepository

	jwtService      *auth.JWTService
	blacklist       auth.TokenBlacklist
	adminAPIKey     string
	apiKeyHashKey   []byte
	platformEnabled bool
}

// NewResolver wires the resolver against the repositories and the
// process-wide secrets loaded at startup (JWT secret pair, admin key,
// API-key hash key, platform-enabled flag).
func NewResolver(
	accounts identity.MerchantAccountRepository,
	profiles identity.ProfileRepository,
	apiKeys identity.ApiKeyRepository,
	ephemeral identity.EphemeralKeyRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	adminAPIKey string,
	apiKeyHashSecret string,
	platformEnabled bool,
) *Resolver {
	return &Resolver{
		accounts:        accounts,
		profiles:        profiles,
		apiKeys:         apiKeys,
		ephemeral:       ephemeral,
		jwtService:      jwtService,
		blacklist:       blacklist,
		adminAPIKey:     adminAPIKey,
		apiKeyHashKey:   []byte(apiKeyHashSecret),
		platformEnabled: platformEnabled,
	}
}

// HashAPIKey computes the keyed hash an API key is looked up by. It is
// exported so the key-issuance path (outside this package) can compute
// the same hash when creating an identity.ApiKey record — the raw key
// itself is never persisted.
func (r *Resolver) HashAPIKey(rawKey string) string {
	mac := hmac.New(sha256.New, r.apiKeyHashKey)
	mac.Write([]byte(rawKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// Resolve runs the state machine against headers and enforces policy for
// the endpoint the caller is about to serve.
func (r *Resolver) Resolve(ctx context.Context, headers RequestHeaders, policy EndpointPolicy) (*AuthenticatedPrincipal, error) {
	principal, err := r.classify(ctx, headers)
	if err != nil {
		return nil, err
	}

	if err := r.enforceDelegation(ctx, principal, headers); err != nil {
		return nil, err
	}

	if err := enforcePolicy(principal, policy); err != nil {
		return nil, err
	}

	if policy.RequiresProfile {
		if err := r.attachProfile(ctx, principal, headers); err != nil {
			return nil, err
		}
	}

	return principal, nil
}

// classify implements the top half of the state machine: turning raw
// headers into a principal whose Platform triple is, for now, just
// Processor == Platform == the initiator's own account. Delegation
// (Connected / Platform initiators acting on another merchant) is
// applied afterward by enforceDelegation.
func (r *Resolver) classify(ctx context.Context, headers RequestHeaders) (*AuthenticatedPrincipal, error) {
	switch {
	case strings.HasPrefix(headers.APIKey, "pk_"):
		return r.resolvePublishableKey(ctx, headers.APIKey)

	case strings.HasPrefix(headers.APIKey, "sk_"):
		return r.resolveAPIKey(ctx, headers.APIKey)

	case strings.HasPrefix(headers.APIKey, "epk_"):
		return r.resolveEphemeralKey(ctx, headers.APIKey)

	case headers.AdminAPIKey != "" || containsAdminKey(headers.Authorization):
		return r.resolveAdmin(headers)

	case strings.HasPrefix(headers.Authorization, "Bearer "):
		return r.resolveJWT(ctx, strings.TrimPrefix(headers.Authorization, "Bearer "), headers)

	case headers.CookieJWT != "":
		return r.resolveJWT(ctx, headers.CookieJWT, headers)

	case strings.HasPrefix(headers.Authorization, "Basic "):
		return nil, ErrBasicAuthUnsupported

	default:
		return nil, ErrMissingCredentials
	}
}

// containsAdminKey recognizes the admin-api-key when it rides inside the
// Authorization header as a comma-separated value alongside a scheme,
// e.g. "admin-api-key=<key>".
func containsAdminKey(authorization string) bool {
	return strings.Contains(authorization, "admin-api-key=")
}

func (r *Resolver) resolvePublishableKey(ctx context.Context, key string) (*AuthenticatedPrincipal, error) {
	account, err := r.accounts.FindByPublishableKey(ctx, key)
	if err != nil || account == nil {
		return nil, ErrInvalidAPIKey
	}
	return principalForAccount(account, AuthMethodPublishableKey), nil
}

func (r *Resolver) resolveAPIKey(ctx context.Context, rawKey string) (*AuthenticatedPrincipal, error) {
	if rawKey == "" {
		return nil, ErrInvalidAPIKey
	}
	hash := r.HashAPIKey(rawKey)

	key, err := r.apiKeys.FindByHashedKey(ctx, hash)
	if err != nil || key == nil {
		return nil, ErrInvalidAPIKey
	}
	if key.IsExpired(time.Now()) {
		return nil, ErrInvalidAPIKey
	}

	account, err := r.accounts.FindByID(ctx, key.MerchantID)
	if err != nil || account == nil {
		return nil, ErrMerchantNotFound
	}

	return principalForAccount(account, AuthMethodAPIKey), nil
}

func (r *Resolver) resolveEphemeralKey(ctx context.Context, key string) (*AuthenticatedPrincipal, error) {
	ek, err := r.ephemeral.FindByID(ctx, key)
	if err != nil || ek == nil {
		return nil, ErrInvalidEphemeralKey
	}
	if ek.IsExpired(time.Now()) {
		return nil, ErrInvalidEphemeralKey
	}

	account, err := r.accounts.FindByID(ctx, ek.MerchantID)
	if err != nil || account == nil {
		return nil, ErrMerchantNotFound
	}

	// An ephemeral key behaves as a MerchantIdAuth for the rest of the
	// request: same resolved identity as the API-key path, different
	// provenance recorded for logging.
	return principalForAccount(account, AuthMethodEphemeralKey), nil
}

func (r *Resolver) resolveAdmin(headers RequestHeaders) (*AuthenticatedPrincipal, error) {
	presented := headers.AdminAPIKey
	if presented == "" {
		presented = extractAdminKey(headers.Authorization)
	}
	if presented == "" || r.adminAPIKey == "" || !hmac.Equal([]byte(presented), []byte(r.adminAPIKey)) {
		return nil, ErrInvalidAdminKey
	}

	return &AuthenticatedPrincipal{
		Platform: payments.Platform{
			Initiator: payments.Initiator{Kind: payments.InitiatorKindAdmin},
		},
		Method: AuthMethodAdminAPI,
	}, nil
}

func extractAdminKey(authorization string) string {
	parts := strings.Split(authorization, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "admin-api-key="); ok {
			return v
		}
	}
	return ""
}

func (r *Resolver) resolveJWT(ctx context.Context, token string, headers RequestHeaders) (*AuthenticatedPrincipal, error) {
	claims, err := r.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, ErrInvalidJWT
	}

	if headers.TenantID != "" && claims.TenantID != "" && headers.TenantID != claims.TenantID {
		return nil, ErrTenantMismatch
	}

	if r.blacklist != nil {
		if claims.ID != "" {
			revoked, err := r.blacklist.IsBlacklisted(ctx, claims.ID)
			if err == nil && revoked {
				return nil, ErrTokenRevoked
			}
		}
		if claims.UserID != "" && claims.IssuedAt != nil {
			invalidated, err := r.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
			if err == nil && invalidated {
				return nil, ErrTokenRevoked
			}
		}
	}

	if claims.MerchantID == "" {
		return nil, ErrInvalidJWT
	}
	merchantID, err := uuid.Parse(claims.MerchantID)
	if err != nil {
		return nil, ErrInvalidJWT
	}

	account, err := r.accounts.FindByID(ctx, merchantID)
	if err != nil || account == nil {
		return nil, ErrMerchantNotFound
	}

	principal := principalForAccount(account, AuthMethodJWT)
	principal.Platform.Initiator = payments.Initiator{
		Kind:      payments.InitiatorKindJWT,
		JWTUserID: claims.UserID,
	}
	principal.JWTPermissions = claims.Permissions
	principal.JWTRoleIDs = claims.RoleIDs
	return principal, nil
}

// principalForAccount builds the baseline principal for a resolved
// merchant account: Processor == Platform == the account's own identity,
// Initiator carrying the account's own type. enforceDelegation rewrites
// this when the caller is a Platform or Connected initiator and a
// delegation header is present.
func principalForAccount(account *identity.MerchantAccount, method AuthMethod) *AuthenticatedPrincipal {
	id := account.Identity()
	return &AuthenticatedPrincipal{
		Platform: payments.Platform{
			Processor: id,
			Platform:  id,
			Initiator: payments.Initiator{
				Kind:           payments.InitiatorKindAPI,
				APIMerchantID:  id.MerchantID,
				APIAccountType: id.AccountType,
			},
		},
		Method: method,
	}
}

// enforceDelegation applies the account-type/X-Connected-Merchant-Id
// matrix. It is a no-op for AuthMethodAdminAPI, whose principal has no
// resolved merchant identity to delegate from.
func (r *Resolver) enforceDelegation(ctx context.Context, principal *AuthenticatedPrincipal, headers RequestHeaders) error {
	if principal.Method == AuthMethodAdminAPI {
		return nil
	}

	initiatorType := principal.Platform.Processor.AccountType
	connectedHeader := strings.TrimSpace(headers.ConnectedMerchantID)

	switch initiatorType {
	case payments.MerchantAccountTypeStandard:
		if connectedHeader != "" {
			return ErrInvalidPlatformOp
		}
		return nil

	case payments.MerchantAccountTypePlatform:
		if !r.platformEnabled {
			return ErrPlatformNotEnabled
		}
		if connectedHeader == "" {
			return nil
		}
		connectedID, err := uuid.Parse(connectedHeader)
		if err != nil {
			return ErrConnectedMismatch
		}
		connected, err := r.accounts.FindByID(ctx, connectedID)
		if err != nil || connected == nil {
			return ErrConnectedMismatch
		}
		if !connected.IsConnected() || connected.OrganizationID != principal.Platform.Processor.OrganizationID {
			return ErrConnectedMismatch
		}
		principal.Platform.Processor = connected.Identity()
		return nil

	case payments.MerchantAccountTypeConnected:
		if connectedHeader != "" {
			return ErrInvalidConnectedOp
		}
		if !r.platformEnabled {
			return nil
		}
		// PlatformMerchantID is stored on the account itself, not on
		// Identity()'s projection; re-fetch to read it.
		return r.resolvePlatformForConnected(ctx, principal)

	default:
		return nil
	}
}

func (r *Resolver) resolvePlatformForConnected(ctx context.Context, principal *AuthenticatedPrincipal) error {
	// The account that produced principal.Platform.Processor is Connected
	// and carries its platform merchant id; fetch it again to read that
	// field (Identity() does not project it).
	processorID, err := uuid.Parse(principal.Platform.Processor.MerchantID)
	if err != nil {
		return ErrConnectedMismatch
	}
	account, err := r.accounts.FindByID(ctx, processorID)
	if err != nil || account == nil {
		return ErrMerchantNotFound
	}
	if account.PlatformMerchantID == "" {
		// No platform configured for this connected merchant: platform
		// equals processor, matching the Standard/no-delegation shape.
		return nil
	}
	platformID, err := uuid.Parse(account.PlatformMerchantID)
	if err != nil {
		return nil
	}
	platform, err := r.accounts.FindByID(ctx, platformID)
	if err != nil || platform == nil {
		return nil
	}
	principal.Platform.Platform = platform.Identity()
	return nil
}

// enforcePolicy applies the per-endpoint Platform/Connected acceptance
// flags. Admin-authenticated principals bypass these checks entirely:
// they carry no merchant account type to evaluate against.
func enforcePolicy(principal *AuthenticatedPrincipal, policy EndpointPolicy) error {
	if principal.Method == AuthMethodAdminAPI {
		return nil
	}
	switch principal.Platform.Processor.AccountType {
	case payments.MerchantAccountTypePlatform:
		if !policy.IsPlatformAllowed {
			return ErrPlatformNotAllowed
		}
	case payments.MerchantAccountTypeConnected:
		if !policy.IsConnectedAllowed {
			return ErrConnectedNotAllowed
		}
	}
	return nil
}

func (r *Resolver) attachProfile(ctx context.Context, principal *AuthenticatedPrincipal, headers RequestHeaders) error {
	if headers.ProfileID == "" {
		return nil
	}
	profileID, err := uuid.Parse(headers.ProfileID)
	if err != nil {
		return ErrProfileNotFound
	}
	profile, err := r.profiles.FindByID(ctx, profileID)
	if err != nil || profile == nil {
		return ErrProfileNotFound
	}

	merchantID, err := uuid.Parse(principal.Platform.Processor.MerchantID)
	if err != nil || !profile.BelongsTo(merchantID) {
		return ErrProfileMerchantMismatch
	}

	principal.Profile = profile
	return nil
}
