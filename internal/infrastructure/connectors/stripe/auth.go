package stripe

import (
	"net/http"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// buildHeaders assembles the headers common to every non-GET Stripe
// request: HTTP Basic auth with the secret key as username and an empty
// password, the pinned API version, and form content-type. GET requests
// (sync calls) carry auth and version but no content-type.
func (c *Connector) buildHeaders(auth payments.ConnectorAuth, withBody bool) (http.Header, error) {
	if auth.Type != payments.AuthTypeHeaderKey || auth.APIKey.IsZero() {
		return nil, payments.NewConnectorError(payments.ErrCodeFailedToObtainAuthType, "stripe requires a header-key secret key")
	}

	headers := http.Header{}
	headers.Set(apiVersionHeader, c.cfg.APIVersion)
	if withBody {
		headers.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	req := &http.Request{Header: headers}
	req.SetBasicAuth(auth.APIKey.Expose(), "")
	return req.Header, nil
}
