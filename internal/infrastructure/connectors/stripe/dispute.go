package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

type wireDispute struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func mapDisputeStatus(s string) payments.DisputeStatus {
	switch s {
	case "warning_needs_response", "needs_response":
		return payments.DisputeStatusOpened
	case "under_review":
		return payments.DisputeStatusChallenged
	case "won":
		return payments.DisputeStatusWon
	case "lost":
		return payments.DisputeStatusLost
	case "warning_closed":
		return payments.DisputeStatusCancelled
	default:
		return payments.DisputeStatusOpened
	}
}

func parseDisputeBody(httpStatus int, body []byte) (payments.DisputesResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		d, err := decodeJSON[wireDispute](body)
		if err != nil {
			return payments.DisputesResponseData{}, nil, err
		}
		return payments.DisputesResponseData{ConnectorDisputeID: d.ID, DisputeStatus: mapDisputeStatus(d.Status)}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.DisputesResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.DisputesResponseData{}, &errResp, nil
}

// BuildAcceptDisputeRequest implements connector.DisputeAccepter.
func (c *Connector) BuildAcceptDisputeRequest(auth payments.ConnectorAuth, req payments.DisputesFlowData) (connector.RequestSpec, error) {
	if req.ConnectorDisputeID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_dispute_id")
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/disputes/" + req.ConnectorDisputeID + "/close"),
		Headers: headers,
	}, nil
}

// ParseAcceptDisputeResponse implements connector.DisputeAccepter.
func (c *Connector) ParseAcceptDisputeResponse(httpStatus int, body []byte) (payments.DisputesResponseData, *payments.ErrorResponse, error) {
	return parseDisputeBody(httpStatus, body)
}

// BuildSubmitEvidenceRequest implements connector.DisputeEvidenceSubmitter.
func (c *Connector) BuildSubmitEvidenceRequest(auth payments.ConnectorAuth, req payments.DisputesFlowData) (connector.RequestSpec, error) {
	if req.ConnectorDisputeID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("connector_dispute_id")
	}
	form := url.Values{}
	if req.EvidenceText != "" {
		form.Set("evidence[uncategorized_text]", req.EvidenceText)
	}
	if req.EvidenceFileID != "" {
		form.Set("evidence[uncategorized_file]", req.EvidenceFileID)
	}
	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/disputes/" + req.ConnectorDisputeID),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// ParseSubmitEvidenceResponse implements connector.DisputeEvidenceSubmitter.
func (c *Connector) ParseSubmitEvidenceResponse(httpStatus int, body []byte) (payments.DisputesResponseData, *payments.ErrorResponse, error) {
	return parseDisputeBody(httpStatus, body)
}
