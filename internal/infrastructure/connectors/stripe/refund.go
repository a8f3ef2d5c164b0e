package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

type wireRefund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func mapRefundStatus(s string) payments.RefundStatus {
	switch s {
	case "succeeded":
		return payments.RefundStatusSuccess
	case "pending":
		return payments.RefundStatusPending
	case "failed":
		return payments.RefundStatusFailure
	default:
		return payments.RefundStatusPending
	}
}

// BuildRefundRequest implements connector.RefundExecutor.
func (c *Connector) BuildRefundRequest(auth payments.ConnectorAuth, req payments.RefundsData) (connector.RequestSpec, error) {
	if req.ConnectorTransactionID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_transaction_id")
	}
	form := url.Values{}
	form.Set("payment_intent", req.ConnectorTransactionID)
	if req.RefundAmount > 0 {
		form.Set("amount", req.RefundAmount.String())
	}
	if req.Reason != "" {
		form.Set("reason", req.Reason)
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/refunds"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// ParseRefundResponse implements connector.RefundExecutor.
func (c *Connector) ParseRefundResponse(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error) {
	return parseRefundBody(httpStatus, body)
}

// BuildRSyncRequest implements connector.RefundSyncer.
func (c *Connector) BuildRSyncRequest(auth payments.ConnectorAuth, req payments.RefundsData) (connector.RequestSpec, error) {
	if req.RefundID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("refund_id")
	}
	headers, err := c.buildHeaders(auth, false)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodGet,
		URL:     c.url("/refunds/" + req.RefundID),
		Headers: headers,
	}, nil
}

// ParseRSyncResponse implements connector.RefundSyncer.
func (c *Connector) ParseRSyncResponse(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error) {
	return parseRefundBody(httpStatus, body)
}

func parseRefundBody(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		r, err := decodeJSON[wireRefund](body)
		if err != nil {
			return payments.RefundsResponseData{}, nil, err
		}
		return payments.RefundsResponseData{
			ConnectorRefundID: r.ID,
			RefundStatus:      mapRefundStatus(r.Status),
		}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.RefundsResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.RefundsResponseData{}, &errResp, nil
}
