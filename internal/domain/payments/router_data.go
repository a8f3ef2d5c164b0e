package payments

import "net/http"

// AuthType discriminates the credential shape a connector expects to find
// in ConnectorAuth. Each connector declares which shapes it accepts; the
// pipeline rejects a mismatched shape with FailedToObtainAuthType before
// ever calling the connector.
type AuthType string

const (
	AuthTypeHeaderKey    AuthType = "header_key"
	AuthTypeBodyKey      AuthType = "body_key"
	AuthTypeSignatureKey AuthType = "signature_key"
	AuthTypeNoKey        AuthType = "no_key"
)

// ConnectorAuth carries the credential material a connector's request
// builders read from. Fields are Secret-wrapped; which fields are
// populated depends on AuthType.
type ConnectorAuth struct {
	Type      AuthType
	APIKey    ConnectorKey
	KeyID     string
	APISecret ConnectorKey
}

// PaymentsResponseData is the canonical success payload written into a
// RouterData's response slot once a connector's success parser has run.
type PaymentsResponseData struct {
	ConnectorTransactionID       string
	RedirectionData              NextAction
	Mandate                      MandateReference
	ConnectorMetadata            map[string]string
	ConnectorResponseReferenceID string
}

// RouterData is the per-attempt envelope threading a flow-specific
// request through the execution pipeline to a flow-specific response.
// Flow is a phantom type parameter (see connector.Authorize and its
// siblings) that pins which capability triple this carrier belongs to, so
// a RouterData built for one flow cannot be handed to another flow's
// trait methods by mistake. It is owned by exactly one logical request:
// created by the pipeline caller, mutated only by the pipeline, and never
// shared across concurrent flows. Fan-out to helper goroutines must clone
// the immutable fields rather than share this value.
type RouterData[Flow any, Req any, Resp any] struct {
	MerchantID string
	ProfileID  string

	AuthType AuthType
	Request  Req

	ResponseSet bool
	Response    Resp
	Err         *ErrorResponse

	ConnectorAuth          ConnectorAuth
	PaymentMethodToken     string
	AttemptStatus          AttemptStatus
	HTTPStatusCode         int
	ConnectorTransactionID string
	RedirectResponseBody   []byte
	Mandate                MandateReference
	ReturnURL              string
}

// ConnectorRequest is the fully assembled outbound HTTP request a
// connector's trait methods build up step by step (URL, method, headers,
// body) before the pipeline's single I/O point executes it.
type ConnectorRequest struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}
