package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// BuildPSyncRequest implements connector.PSyncer.
func (c *Connector) BuildPSyncRequest(auth payments.ConnectorAuth, req payments.PaymentsSyncData) (connector.RequestSpec, error) {
	if req.ConnectorTransactionID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_transaction_id")
	}
	headers, err := c.buildHeaders(auth, false)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodGet,
		URL:     c.url("/payment_intents/" + req.ConnectorTransactionID),
		Headers: headers,
	}, nil
}

// BuildCaptureRequest implements connector.Capturer.
func (c *Connector) BuildCaptureRequest(auth payments.ConnectorAuth, req payments.PaymentsCaptureData) (connector.RequestSpec, error) {
	if req.ConnectorTransactionID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_transaction_id")
	}
	form := url.Values{}
	if req.AmountToCapture > 0 {
		form.Set("amount_to_capture", req.AmountToCapture.String())
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_intents/" + req.ConnectorTransactionID + "/capture"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// BuildVoidRequest implements connector.Voider.
func (c *Connector) BuildVoidRequest(auth payments.ConnectorAuth, req payments.PaymentsCancelData) (connector.RequestSpec, error) {
	if req.ConnectorTransactionID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_transaction_id")
	}
	form := url.Values{}
	if req.CancellationReason != "" {
		form.Set("cancellation_reason", req.CancellationReason)
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_intents/" + req.ConnectorTransactionID + "/cancel"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}
