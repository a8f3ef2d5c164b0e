package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// BuildSetupMandateRequest implements connector.MandateSetupper: a
// confirmed PaymentIntent whose sole purpose is establishing a reusable
// mandate, not moving funds now.
func (c *Connector) BuildSetupMandateRequest(auth payments.ConnectorAuth, req payments.SetupMandateRequestData) (connector.RequestSpec, error) {
	if req.ReturnURL == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("return_url")
	}
	if err := req.PaymentMethodData.Validate(); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeMissingRequiredField, err.Error())
	}

	form := url.Values{}
	form.Set("confirm", "true")
	form.Set("currency", req.Currency.LowerCode())
	form.Set("return_url", req.ReturnURL)
	form.Set("setup_future_usage", "off_session")
	if err := encodePaymentMethodData(form, req.PaymentMethodData); err != nil {
		return connector.RequestSpec{}, err
	}

	if req.MandateData.Acceptance == payments.MandateAcceptanceOnline {
		form.Set("mandate_data[customer_acceptance][type]", "online")
		form.Set("mandate_data[customer_acceptance][online][ip_address]", req.MandateData.CustomerIP.Expose())
		form.Set("mandate_data[customer_acceptance][online][user_agent]", req.MandateData.UserAgent)
	} else {
		form.Set("mandate_data[customer_acceptance][type]", "offline")
	}

	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_intents"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// BuildCompleteAuthorizeRequest implements connector.CompleteAuthorizer:
// resumes a PaymentIntent after the customer returns from a redirect
// challenge, by confirming it again with whatever params the redirect
// returned.
func (c *Connector) BuildCompleteAuthorizeRequest(auth payments.ConnectorAuth, req payments.CompleteAuthorizeData) (connector.RequestSpec, error) {
	if req.ConnectorTransactionID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_transaction_id")
	}
	form := url.Values{}
	for k, v := range req.RedirectResponseParams {
		form.Set(k, v)
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_intents/" + req.ConnectorTransactionID + "/confirm"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

type wireMandate struct {
	Status string `json:"status"`
}

// BuildMandateRevokeRequest implements connector.MandateRevoker.
func (c *Connector) BuildMandateRevokeRequest(auth payments.ConnectorAuth, req payments.MandateRevokeData) (connector.RequestSpec, error) {
	if req.ConnectorMandateID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_mandate_id")
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/mandates/" + req.ConnectorMandateID + "/cancel"),
		Headers: headers,
	}, nil
}

// ParseMandateRevokeResponse implements connector.MandateRevoker.
func (c *Connector) ParseMandateRevokeResponse(httpStatus int, body []byte) (payments.MandateRevokeResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		m, err := decodeJSON[wireMandate](body)
		if err != nil {
			return payments.MandateRevokeResponseData{}, nil, err
		}
		return payments.MandateRevokeResponseData{MandateStatus: m.Status}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.MandateRevokeResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.MandateRevokeResponseData{}, &errResp, nil
}
