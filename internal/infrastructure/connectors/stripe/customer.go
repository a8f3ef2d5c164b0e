package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

type wireCustomer struct {
	ID string `json:"id"`
}

// BuildCreateCustomerRequest implements connector.CustomerCreator.
func (c *Connector) BuildCreateCustomerRequest(auth payments.ConnectorAuth, req payments.ConnectorCustomerData) (connector.RequestSpec, error) {
	form := url.Values{}
	if !req.Email.IsZero() {
		form.Set("email", req.Email.Expose())
	}
	if req.Name != "" {
		form.Set("name", req.Name)
	}
	if req.Phone != nil && !req.Phone.Number.IsZero() {
		form.Set("phone", req.Phone.Number.Expose())
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/customers"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// ParseCreateCustomerResponse implements connector.CustomerCreator.
func (c *Connector) ParseCreateCustomerResponse(httpStatus int, body []byte) (payments.ConnectorCustomerResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		cust, err := decodeJSON[wireCustomer](body)
		if err != nil {
			return payments.ConnectorCustomerResponseData{}, nil, err
		}
		return payments.ConnectorCustomerResponseData{ConnectorCustomerID: cust.ID}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.ConnectorCustomerResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.ConnectorCustomerResponseData{}, &errResp, nil
}

// BuildTokenizeRequest implements connector.Tokenizer: exchanges raw card
// data for a processor-scoped payment-method token ahead of
// authorization by creating a PaymentMethod via POST /payment_methods,
// so no funds move.
func (c *Connector) BuildTokenizeRequest(auth payments.ConnectorAuth, req payments.PaymentMethodTokenizationData) (connector.RequestSpec, error) {
	if err := req.PaymentMethodData.Validate(); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeMissingRequiredField, err.Error())
	}
	form := url.Values{}
	if err := encodePaymentMethodData(form, req.PaymentMethodData); err != nil {
		return connector.RequestSpec{}, err
	}
	if req.CustomerID != "" {
		form.Set("customer", req.CustomerID)
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_methods"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}
