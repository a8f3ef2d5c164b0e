package middleware

import (
	"errors"
	"net/http"

	"github.com/erp/paymentrouter/internal/application/authn"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/erp/paymentrouter/internal/infrastructure/logger"
	"github.com/erp/paymentrouter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key an *authn.AuthenticatedPrincipal is
// stored under after Authenticate succeeds.
const PrincipalKey = "authn_principal"

// cookieName is the cookie a JWT is read from when none of the
// Authorization, api-key and admin-api-key headers is present. No setting
// turns cookie-borne auth on or off.
const cookieName = "access_token"

// Authenticate builds an authn middleware bound to resolver and policy.
// On success it stores the resolved principal under PrincipalKey; on
// failure it writes the external contract's 401 envelope and aborts the
// chain before any handler runs.
func Authenticate(resolver *authn.Resolver, policy authn.EndpointPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := headersFromRequest(c)

		principal, err := resolver.Resolve(c.Request.Context(), headers, policy)
		if err != nil {
			writeUnauthorized(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// headersFromRequest reads the subset of inbound headers the resolver
// cares about, plus a cookie-borne JWT when no Authorization header
// carries one.
func headersFromRequest(c *gin.Context) authn.RequestHeaders {
	headers := authn.RequestHeaders{
		APIKey:              c.GetHeader("api-key"),
		Authorization:       c.GetHeader("Authorization"),
		AdminAPIKey:         c.GetHeader("admin-api-key"),
		MerchantID:          c.GetHeader("X-Merchant-Id"),
		ProfileID:           c.GetHeader("X-Profile-Id"),
		ConnectedMerchantID: c.GetHeader("X-Connected-Merchant-Id"),
		OrganizationID:      c.GetHeader("X-Organization-Id"),
		InternalAPIKey:      c.GetHeader("X-Internal-API-Key"),
		TenantID:            c.GetHeader("X-Tenant-Id"),
	}
	if headers.Authorization == "" && headers.APIKey == "" && headers.AdminAPIKey == "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			headers.CookieJWT = cookie
		}
	}
	return headers
}

// writeUnauthorized writes the external contract's 401 envelope. The
// message never echoes the resolver's internal error string verbatim for
// credential-guessing-relevant failures — only the sentinel code does,
// avoiding a resource-existence leak (e.g. distinguishing "wrong
// merchant" from "wrong key").
func writeUnauthorized(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Warn("authentication failed",
		zap.Error(err), zap.String("path", c.Request.URL.Path))

	code := "IR_01"
	message := "authentication failed"
	var de *shared.DomainError
	if errors.As(err, &de) {
		code = de.Code
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIErrorEnvelope("invalid_request", code, message))
}

// RequirePermission builds a middleware that rejects a JWT-authenticated
// principal lacking perm. Non-JWT methods (API key, admin) always pass:
// they are authorized by possession of the credential itself.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := MustPrincipal(c)
		if principal.Method == authn.AuthMethodJWT && !principal.HasPermission(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewAPIErrorEnvelope("invalid_request", "IR_03", "permission denied"))
			return
		}
		c.Next()
	}
}

// MustPrincipal fetches the principal Authenticate stored in context. It
// panics if called from a route not behind Authenticate, which is a
// wiring bug caught immediately in development rather than a
// nil-pointer deref deep inside a handler.
func MustPrincipal(c *gin.Context) *authn.AuthenticatedPrincipal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		panic("middleware.MustPrincipal: no principal in context, route is missing Authenticate")
	}
	return v.(*authn.AuthenticatedPrincipal)
}
