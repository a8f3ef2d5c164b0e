package stripe

import (
	"bytes"
	"mime/multipart"
	"net/http"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

type wireFile struct {
	ID string `json:"id"`
}

// BuildUploadFileRequest implements connector.FileUploader. Stripe's
// /files endpoint is the one request shape in this connector that is not
// form-urlencoded: it requires multipart/form-data.
func (c *Connector) BuildUploadFileRequest(auth payments.ConnectorAuth, req payments.FilesFlowData) (connector.RequestSpec, error) {
	if len(req.FileContent) == 0 {
		return connector.RequestSpec{}, payments.MissingRequiredField("file_content")
	}
	purpose := req.PurposeTag
	if purpose == "" {
		purpose = "dispute_evidence"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("purpose", purpose); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeRequestEncodingFailed, err.Error())
	}
	part, err := writer.CreateFormFile("file", req.FileID)
	if err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeRequestEncodingFailed, err.Error())
	}
	if _, err := part.Write(req.FileContent); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeRequestEncodingFailed, err.Error())
	}
	if err := writer.Close(); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeRequestEncodingFailed, err.Error())
	}

	auth0, err := c.buildHeaders(auth, false)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	auth0.Set("Content-Type", writer.FormDataContentType())

	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     "https://files.stripe.com/v1/files",
		Headers: auth0,
		Body:    buf.Bytes(),
	}, nil
}

// ParseUploadFileResponse implements connector.FileUploader.
func (c *Connector) ParseUploadFileResponse(httpStatus int, body []byte) (payments.FilesResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		f, err := decodeJSON[wireFile](body)
		if err != nil {
			return payments.FilesResponseData{}, nil, err
		}
		return payments.FilesResponseData{ConnectorFileID: f.ID}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.FilesResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.FilesResponseData{}, &errResp, nil
}

// BuildRetrieveFileRequest implements connector.FileRetriever.
func (c *Connector) BuildRetrieveFileRequest(auth payments.ConnectorAuth, req payments.FilesFlowData) (connector.RequestSpec, error) {
	if req.FileID == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("file_id")
	}
	headers, err := c.buildHeaders(auth, false)
	if err != nil {
		return connector.RequestSpec{}, err
	}
	return connector.RequestSpec{
		Method:  http.MethodGet,
		URL:     c.url("/files/" + req.FileID),
		Headers: headers,
	}, nil
}

// ParseRetrieveFileResponse implements connector.FileRetriever.
func (c *Connector) ParseRetrieveFileResponse(httpStatus int, body []byte) (payments.FilesResponseData, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		f, err := decodeJSON[wireFile](body)
		if err != nil {
			return payments.FilesResponseData{}, nil, err
		}
		return payments.FilesResponseData{ConnectorFileID: f.ID, FileContent: body}, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.FilesResponseData{}, nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.FilesResponseData{}, &errResp, nil
}
