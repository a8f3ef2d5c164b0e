package payments

import "fmt"

// Sentinel strings guaranteeing an ErrorResponse never carries an empty
// code or message, per the contract that every error path surfaces
// something a caller can act on or at least log meaningfully.
const (
	NoErrorCode    = "NO_ERROR_CODE"
	NoErrorMessage = "NO_ERROR_MESSAGE"
)

// ErrorResponse is the canonical processor-failure shape stored in a
// RouterData when a connector's error parser runs. It is distinct from a
// connector-layer Go error: ErrorResponse represents a business decline or
// a malformed processor response that the pipeline successfully completed
// an HTTP exchange to learn about.
type ErrorResponse struct {
	Code                   string
	Message                string
	Reason                 string
	StatusCode             int
	AttemptStatus          AttemptStatus
	ConnectorTransactionID string
}

// NewErrorResponse fills in the sentinel code/message when either is
// empty, guaranteeing the invariant that both fields are always non-empty.
func NewErrorResponse(code, message, reason string, statusCode int, attemptStatus AttemptStatus, connectorTxnID string) ErrorResponse {
	if code == "" {
		code = NoErrorCode
	}
	if message == "" {
		message = NoErrorMessage
	}
	return ErrorResponse{
		Code:                   code,
		Message:                message,
		Reason:                 reason,
		StatusCode:             statusCode,
		AttemptStatus:          attemptStatus,
		ConnectorTransactionID: connectorTxnID,
	}
}

// ConnectorErrorCode enumerates the closed set of errors a connector's
// trait methods can raise before any bytes leave the process, or that the
// pipeline raises around the single I/O point.
type ConnectorErrorCode string

const (
	ErrCodeFailedToObtainAuthType        ConnectorErrorCode = "failed_to_obtain_auth_type"
	ErrCodeNotImplemented                ConnectorErrorCode = "not_implemented"
	ErrCodeInvalidConnectorName          ConnectorErrorCode = "invalid_connector_name"
	ErrCodeInvalidConnectorConfig        ConnectorErrorCode = "invalid_connector_config"
	ErrCodeMissingRequiredField          ConnectorErrorCode = "missing_required_field"
	ErrCodeMissingRequiredFields         ConnectorErrorCode = "missing_required_fields"
	ErrCodeMismatchedPaymentData         ConnectorErrorCode = "mismatched_payment_data"
	ErrCodeInvalidWalletToken            ConnectorErrorCode = "invalid_wallet_token"
	ErrCodeMissingApplePayTokenData      ConnectorErrorCode = "missing_apple_pay_token_data"
	ErrCodeResponseHandlingFailed        ConnectorErrorCode = "response_handling_failed"
	ErrCodeResponseDeserializationFailed ConnectorErrorCode = "response_deserialization_failed"
	ErrCodeRequestEncodingFailed         ConnectorErrorCode = "request_encoding_failed"
	ErrCodeConnectorConnectionError      ConnectorErrorCode = "connector_connection_error"
	ErrCodeConnectorTimeout              ConnectorErrorCode = "connector_timeout"
	ErrCodeWebhookSignatureNotFound      ConnectorErrorCode = "webhook_signature_not_found"
	ErrCodeWebhookSourceVerificationFailed ConnectorErrorCode = "webhook_source_verification_failed"
)

// ConnectorError is a typed, closed-enum connector-layer error. It is
// distinct from ErrorResponse: a ConnectorError means the pipeline could
// not even complete an interpretable exchange with the processor (or
// refused to try), whereas ErrorResponse means the processor answered
// with a decline or a malformed body.
type ConnectorError struct {
	Code    ConnectorErrorCode
	Message string
	Fields  []string // populated for ErrCodeMissingRequiredFields
	Retriable bool
}

func (e *ConnectorError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Fields)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConnectorError constructs a non-retriable ConnectorError.
func NewConnectorError(code ConnectorErrorCode, message string) *ConnectorError {
	return &ConnectorError{Code: code, Message: message}
}

// NewRetriableConnectorError constructs a ConnectorError the pipeline's
// retry policy is permitted to retry (transport failures only).
func NewRetriableConnectorError(code ConnectorErrorCode, message string) *ConnectorError {
	return &ConnectorError{Code: code, Message: message, Retriable: true}
}

// MissingRequiredField builds the single-field variant.
func MissingRequiredField(field string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Fields:  []string{field},
	}
}

// MissingRequiredFields builds the multi-field variant.
func MissingRequiredFields(fields []string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeMissingRequiredFields,
		Message: fmt.Sprintf("missing required fields: %v", fields),
		Fields:  fields,
	}
}

// NotImplemented builds the error a capability registry returns when a
// connector has no implementation for the requested flow.
func NotImplemented(connector, flow string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeNotImplemented,
		Message: fmt.Sprintf("connector %q does not implement flow %q", connector, flow),
	}
}
