// Package connector declares the capability-interface set every payment
// processor integration implements a subset of. Each capability
// corresponds to one (request, response) flow named in the capability
// catalogue; a connector is a plain Go value that implements zero or more
// of these interfaces, and callers discover which flows it supports via a
// type assertion through Registry rather than through inheritance.
package connector

import (
	"net/http"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// Info is the static identity of a connector: its name (used as the
// registry key and as the profiling/logging label) and the base URL its
// request builders assemble paths against.
type Info struct {
	Name    string
	BaseURL string
}

// Flow marker types. Each is an empty struct used only as the Flow type
// parameter of payments.RouterData, so a carrier built for one capability
// triple cannot be passed to another flow's pipeline call by mistake —
// the phantom parameter makes the mismatch a compile error rather than a
// runtime one.
type (
	Authorize         struct{}
	PSync             struct{}
	Capture           struct{}
	Void              struct{}
	Execute           struct{} // refund execute, distinct from pipeline.Execute
	RSync             struct{}
	SetupMandate      struct{}
	CompleteAuthorize struct{}
)

// Connector is the minimal contract every processor integration
// satisfies. Capability interfaces below are implemented in addition to
// this one, discovered by type assertion.
type Connector interface {
	Info() Info
}

// RequestSpec is what a connector's per-flow BuildXxx methods assemble
// before the pipeline's single I/O point executes it. Ordering contract:
// URL, then Method, then Headers, then Body — each one a pure function of
// the flow's request and the connector's own configuration.
type RequestSpec struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Authorizer is the (Authorize, PaymentsAuthorizeData, PaymentsResponseData)
// capability triple.
type Authorizer interface {
	Connector
	BuildAuthorizeRequest(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (RequestSpec, error)
	ParseAuthorizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// PSyncer is the (PSync, PaymentsSyncData, PaymentsResponseData) capability
// triple.
type PSyncer interface {
	Connector
	BuildPSyncRequest(auth payments.ConnectorAuth, req payments.PaymentsSyncData) (RequestSpec, error)
	ParsePSyncResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// Capturer is the (Capture, PaymentsCaptureData, PaymentsResponseData)
// capability triple.
type Capturer interface {
	Connector
	BuildCaptureRequest(auth payments.ConnectorAuth, req payments.PaymentsCaptureData) (RequestSpec, error)
	ParseCaptureResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// Voider is the (Void, PaymentsCancelData, PaymentsResponseData)
// capability triple.
type Voider interface {
	Connector
	BuildVoidRequest(auth payments.ConnectorAuth, req payments.PaymentsCancelData) (RequestSpec, error)
	ParseVoidResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// RefundExecutor is the (Execute, RefundsData, RefundsResponseData)
// capability triple.
type RefundExecutor interface {
	Connector
	BuildRefundRequest(auth payments.ConnectorAuth, req payments.RefundsData) (RequestSpec, error)
	ParseRefundResponse(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error)
}

// RefundSyncer is the (RSync, RefundsData, RefundsResponseData) capability
// triple.
type RefundSyncer interface {
	Connector
	BuildRSyncRequest(auth payments.ConnectorAuth, req payments.RefundsData) (RequestSpec, error)
	ParseRSyncResponse(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error)
}

// MandateSetupper is the (SetupMandate, SetupMandateRequestData,
// PaymentsResponseData) capability triple.
type MandateSetupper interface {
	Connector
	BuildSetupMandateRequest(auth payments.ConnectorAuth, req payments.SetupMandateRequestData) (RequestSpec, error)
	ParseSetupMandateResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// CompleteAuthorizer is the (CompleteAuthorize, CompleteAuthorizeData,
// PaymentsResponseData) capability triple.
type CompleteAuthorizer interface {
	Connector
	BuildCompleteAuthorizeRequest(auth payments.ConnectorAuth, req payments.CompleteAuthorizeData) (RequestSpec, error)
	ParseCompleteAuthorizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// AccessTokenAuthenticator is the (AccessTokenAuth, AccessTokenRequestData,
// AccessToken) capability triple.
type AccessTokenAuthenticator interface {
	Connector
	BuildAccessTokenRequest(req payments.AccessTokenRequestData) (RequestSpec, error)
	ParseAccessTokenResponse(httpStatus int, body []byte) (payments.AccessToken, *payments.ErrorResponse, error)
}

// CustomerCreator is the (CreateConnectorCustomer, ConnectorCustomerData,
// PaymentsResponseData) capability triple.
type CustomerCreator interface {
	Connector
	BuildCreateCustomerRequest(auth payments.ConnectorAuth, req payments.ConnectorCustomerData) (RequestSpec, error)
	ParseCreateCustomerResponse(httpStatus int, body []byte) (payments.ConnectorCustomerResponseData, *payments.ErrorResponse, error)
}

// Tokenizer is the (PaymentMethodToken, PaymentMethodTokenizationData,
// PaymentsResponseData) capability triple.
type Tokenizer interface {
	Connector
	BuildTokenizeRequest(auth payments.ConnectorAuth, req payments.PaymentMethodTokenizationData) (RequestSpec, error)
	ParseTokenizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// PreProcessor is the (PreProcessing, PaymentsPreProcessingData,
// PaymentsResponseData) capability triple.
type PreProcessor interface {
	Connector
	BuildPreProcessingRequest(auth payments.ConnectorAuth, req payments.PaymentsPreProcessingData) (RequestSpec, error)
	ParsePreProcessingResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// IncrementalAuthorizer is the (IncrementalAuthorization,
// IncrementalAuthorizationData, PaymentsResponseData) capability triple.
type IncrementalAuthorizer interface {
	Connector
	BuildIncrementalAuthorizationRequest(auth payments.ConnectorAuth, req payments.IncrementalAuthorizationData) (RequestSpec, error)
	ParseIncrementalAuthorizationResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error)
}

// DisputeAccepter is the (Accept, DisputesFlowData, DisputesResponseData)
// capability triple.
type DisputeAccepter interface {
	Connector
	BuildAcceptDisputeRequest(auth payments.ConnectorAuth, req payments.DisputesFlowData) (RequestSpec, error)
	ParseAcceptDisputeResponse(httpStatus int, body []byte) (payments.DisputesResponseData, *payments.ErrorResponse, error)
}

// DisputeEvidenceSubmitter is the (Evidence, DisputesFlowData,
// DisputesResponseData) capability triple.
type DisputeEvidenceSubmitter interface {
	Connector
	BuildSubmitEvidenceRequest(auth payments.ConnectorAuth, req payments.DisputesFlowData) (RequestSpec, error)
	ParseSubmitEvidenceResponse(httpStatus int, body []byte) (payments.DisputesResponseData, *payments.ErrorResponse, error)
}

// FileUploader is the (Upload, FilesFlowData, FilesResponseData)
// capability triple.
type FileUploader interface {
	Connector
	BuildUploadFileRequest(auth payments.ConnectorAuth, req payments.FilesFlowData) (RequestSpec, error)
	ParseUploadFileResponse(httpStatus int, body []byte) (payments.FilesResponseData, *payments.ErrorResponse, error)
}

// FileRetriever is the (Retrieve, FilesFlowData, FilesResponseData)
// capability triple.
type FileRetriever interface {
	Connector
	BuildRetrieveFileRequest(auth payments.ConnectorAuth, req payments.FilesFlowData) (RequestSpec, error)
	ParseRetrieveFileResponse(httpStatus int, body []byte) (payments.FilesResponseData, *payments.ErrorResponse, error)
}

// WebhookSourceVerifier is the (VerifyWebhookSource,
// WebhookSourceVerifyData, bool) capability triple.
type WebhookSourceVerifier interface {
	Connector
	VerifyWebhookSource(req payments.WebhookSourceVerifyData) (bool, error)
}

// WebhookEventDecoder decodes a verified webhook body's outer envelope
// into the raw fields the webhook dispatcher needs to classify it into a
// canonical event: the processor's own event-type string, the affected
// resource's id, and (for processors whose dispute events carry it) the
// network's status field. It never interprets eventType itself — that
// closed-enum classification belongs to the dispatcher, not the
// connector, since the canonical event set is shared across processors.
type WebhookEventDecoder interface {
	Connector
	DecodeWebhookEvent(body []byte) (eventType string, objectID string, objectStatus string, err error)
}

// MandateRevoker is the (MandateRevoke, MandateRevokeData,
// MandateRevokeResponseData) capability triple.
type MandateRevoker interface {
	Connector
	BuildMandateRevokeRequest(auth payments.ConnectorAuth, req payments.MandateRevokeData) (RequestSpec, error)
	ParseMandateRevokeResponse(httpStatus int, body []byte) (payments.MandateRevokeResponseData, *payments.ErrorResponse, error)
}

// Payouter is the Payout* capability triple family (create, fulfill,
// cancel all share one request/response shape at this level of
// abstraction; connectors needing per-sub-flow URLs branch internally on
// PayoutFlowData).
type Payouter interface {
	Connector
	BuildPayoutRequest(auth payments.ConnectorAuth, req payments.PayoutFlowData) (RequestSpec, error)
	ParsePayoutResponse(httpStatus int, body []byte) (payments.PayoutResponseData, *payments.ErrorResponse, error)
}

// ExternalAuthenticator is the
// Authentication/PreAuthentication/PostAuthentication capability triple
// family, used by connectors that delegate 3-D Secure to a dedicated
// authentication service.
type ExternalAuthenticator interface {
	Connector
	BuildAuthenticationRequest(auth payments.ConnectorAuth, req payments.ExternalAuthenticationFlowData) (RequestSpec, error)
	ParseAuthenticationResponse(httpStatus int, body []byte) (payments.ExternalAuthenticationResponseData, *payments.ErrorResponse, error)
}

// FraudCheckFlow is the Sale/Checkout/Transaction/Fulfillment/RecordReturn
// capability triple family.
type FraudCheckFlow interface {
	Connector
	BuildFrmRequest(auth payments.ConnectorAuth, req payments.FrmFlowData) (RequestSpec, error)
	ParseFrmResponse(httpStatus int, body []byte) (payments.FrmResponseData, *payments.ErrorResponse, error)
}
