package payments

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/erp/paymentrouter/internal/infrastructure/logger"
	"github.com/erp/paymentrouter/internal/infrastructure/pipeline"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the orchestration layer for every connector flow: it
// resolves which connector account a profile has configured, decodes its
// stored credentials, looks up the requested capability off the
// registry, and runs the pipeline. It holds no transport or storage code
// of its own.
type Service struct {
	accounts    identity.MerchantConnectorAccountRepository
	registry    *connector.Registry
	idempotency shared.IdempotencyStore
	httpClient  *http.Client
	retryPolicy pipeline.RetryPolicy
}

// NewService constructs the orchestration service. idempotencyStore guards
// against duplicate submission of the same attempt id for non-idempotent
// flows; it is a separate concern from the pipeline's processor-facing
// Idempotency-Key header, which is derived fresh on every call regardless
// of whether this guard has already seen the attempt.
func NewService(
	accounts identity.MerchantConnectorAccountRepository,
	registry *connector.Registry,
	idempotencyStore shared.IdempotencyStore,
	httpClient *http.Client,
	retryPolicy pipeline.RetryPolicy,
) *Service {
	return &Service{
		accounts:    accounts,
		registry:    registry,
		idempotency: idempotencyStore,
		httpClient:  httpClient,
		retryPolicy: retryPolicy,
	}
}

// resolved bundles what every flow needs before it can call the pipeline:
// the usable connector account and its decoded credentials.
type resolved struct {
	account *identity.MerchantConnectorAccount
	auth    payments.ConnectorAuth
}

// resolveAccount loads and validates the connector account a profile has
// configured for connectorName, decoding its stored credentials.
func (s *Service) resolveAccount(ctx context.Context, profileID uuid.UUID, connectorName string) (resolved, error) {
	account, err := s.accounts.FindUsableByProfileAndConnector(ctx, profileID, connectorName)
	if err != nil {
		return resolved{}, err
	}
	if account == nil {
		return resolved{}, ErrConnectorAccountNotFound
	}
	if !account.IsUsable() {
		return resolved{}, ErrConnectorAccountDisabled
	}

	auth, err := connectorAuthFromAccount(account)
	if err != nil {
		return resolved{}, err
	}
	return resolved{account: account, auth: auth}, nil
}

// guardDuplicate reports ErrDuplicateAttempt if attemptID has already been
// marked processed by an earlier call to this non-idempotent flow. It is
// a best-effort guard: a nil store (idempotency disabled) always passes.
func (s *Service) guardDuplicate(ctx context.Context, attemptID string) error {
	if s.idempotency == nil || attemptID == "" {
		return nil
	}
	marked, err := s.idempotency.MarkProcessed(ctx, attemptID, 24*time.Hour)
	if err != nil {
		logger.FromContext(ctx).Warn("idempotency store unavailable, proceeding without duplicate guard",
			zap.String("attempt_id", attemptID), zap.Error(err))
		return nil
	}
	if !marked {
		return ErrDuplicateAttempt
	}
	return nil
}

// Authorize runs the Authorize capability triple for profileID's
// configured connectorName account.
func (s *Service) Authorize(ctx context.Context, profileID uuid.UUID, connectorName string, req payments.PaymentsAuthorizeData) (*payments.RouterData[connector.Authorize, payments.PaymentsAuthorizeData, payments.PaymentsResponseData], error) {
	if err := s.guardDuplicate(ctx, req.AttemptID); err != nil {
		return nil, err
	}

	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	authorizer, err := connector.Capability[connector.Authorizer](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.Authorize, payments.PaymentsAuthorizeData, payments.PaymentsResponseData]{
		MerchantID: res.account.MerchantID.String(),
		ProfileID:  profileID.String(),
		AuthType:   res.auth.Type,
		Request:    req,
		ConnectorAuth: res.auth,
		ReturnURL:  req.ReturnURL,
	}

	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, req.AttemptID, res.auth, req, authorizer.BuildAuthorizeRequest, authorizer.ParseAuthorizeResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	if payments.RequiresNextAction(rd.AttemptStatus, false) && rd.Response.RedirectionData.Kind == payments.NextActionNoAction {
		logger.FromContext(ctx).Warn("attempt status requires a next action but connector returned none",
			zap.String("status", string(rd.AttemptStatus)))
	}
	return rd, nil
}

// CompleteAuthorize resumes an authorization after a redirect-based
// challenge completes.
func (s *Service) CompleteAuthorize(ctx context.Context, profileID uuid.UUID, connectorName string, req payments.CompleteAuthorizeData) (*payments.RouterData[connector.CompleteAuthorize, payments.CompleteAuthorizeData, payments.PaymentsResponseData], error) {
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	capable, err := connector.Capability[connector.CompleteAuthorizer](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.CompleteAuthorize, payments.CompleteAuthorizeData, payments.PaymentsResponseData]{
		MerchantID:     res.account.MerchantID.String(),
		ProfileID:      profileID.String(),
		AuthType:       res.auth.Type,
		Request:        req,
		ConnectorAuth:  res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, req.ConnectorTransactionID, res.auth, req, capable.BuildCompleteAuthorizeRequest, capable.ParseCompleteAuthorizeResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	return rd, nil
}

// PSync retrieves a payment attempt's current status from the connector,
// the recovery path for attempts left Pending by an ambiguous pipeline
// outcome.
func (s *Service) PSync(ctx context.Context, profileID uuid.UUID, connectorName string, req payments.PaymentsSyncData) (*payments.RouterData[connector.PSync, payments.PaymentsSyncData, payments.PaymentsResponseData], error) {
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	syncer, err := connector.Capability[connector.PSyncer](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.PSync, payments.PaymentsSyncData, payments.PaymentsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, "", res.auth, req, syncer.BuildPSyncRequest, syncer.ParsePSyncResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	return rd, nil
}

// Capture captures a previously authorized (manual-capture) payment.
func (s *Service) Capture(ctx context.Context, profileID uuid.UUID, connectorName, attemptID string, req payments.PaymentsCaptureData) (*payments.RouterData[connector.Capture, payments.PaymentsCaptureData, payments.PaymentsResponseData], error) {
	if err := s.guardDuplicate(ctx, attemptID); err != nil {
		return nil, err
	}
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	capturer, err := connector.Capability[connector.Capturer](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.Capture, payments.PaymentsCaptureData, payments.PaymentsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, attemptID, res.auth, req, capturer.BuildCaptureRequest, capturer.ParseCaptureResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	return rd, nil
}

// Void cancels a payment that has not yet been captured.
func (s *Service) Void(ctx context.Context, profileID uuid.UUID, connectorName, attemptID string, req payments.PaymentsCancelData) (*payments.RouterData[connector.Void, payments.PaymentsCancelData, payments.PaymentsResponseData], error) {
	if err := s.guardDuplicate(ctx, attemptID); err != nil {
		return nil, err
	}
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	voider, err := connector.Capability[connector.Voider](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.Void, payments.PaymentsCancelData, payments.PaymentsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, attemptID, res.auth, req, voider.BuildVoidRequest, voider.ParseVoidResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	return rd, nil
}

// SetupMandate runs a zero- or minimal-amount authorization purely to
// establish a reusable mandate.
func (s *Service) SetupMandate(ctx context.Context, profileID uuid.UUID, connectorName, attemptID string, req payments.SetupMandateRequestData) (*payments.RouterData[connector.SetupMandate, payments.SetupMandateRequestData, payments.PaymentsResponseData], error) {
	if err := s.guardDuplicate(ctx, attemptID); err != nil {
		return nil, err
	}
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	setupper, err := connector.Capability[connector.MandateSetupper](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.SetupMandate, payments.SetupMandateRequestData, payments.PaymentsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
		ReturnURL:     req.ReturnURL,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, attemptID, res.auth, req, setupper.BuildSetupMandateRequest, setupper.ParseSetupMandateResponse)
	if err != nil {
		return rd, err
	}
	applyOutcome(rd, outcome)
	return rd, nil
}

// Refund issues a refund against a previously captured payment. The
// refund status lives in RefundsResponseData.RefundStatus rather than
// RouterData.AttemptStatus, since refunds have their own canonical status
// enum distinct from a payment attempt's.
func (s *Service) Refund(ctx context.Context, profileID uuid.UUID, connectorName string, req payments.RefundsData) (*payments.RouterData[connector.Execute, payments.RefundsData, payments.RefundsResponseData], error) {
	if err := s.guardDuplicate(ctx, req.RefundID); err != nil {
		return nil, err
	}
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	executor, err := connector.Capability[connector.RefundExecutor](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.Execute, payments.RefundsData, payments.RefundsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, req.RefundID, res.auth, req, executor.BuildRefundRequest, refundParser(executor.ParseRefundResponse))
	if err != nil {
		return rd, err
	}
	rd.ResponseSet = true
	rd.Response = outcome.Response
	rd.Err = outcome.Err
	rd.HTTPStatusCode = outcome.HTTPStatus
	return rd, nil
}

// RSync retrieves a refund's current status from the connector.
func (s *Service) RSync(ctx context.Context, profileID uuid.UUID, connectorName string, req payments.RefundsData) (*payments.RouterData[connector.RSync, payments.RefundsData, payments.RefundsResponseData], error) {
	res, err := s.resolveAccount(ctx, profileID, connectorName)
	if err != nil {
		return nil, err
	}
	syncer, err := connector.Capability[connector.RefundSyncer](s.registry, connectorName)
	if err != nil {
		return nil, err
	}

	rd := &payments.RouterData[connector.RSync, payments.RefundsData, payments.RefundsResponseData]{
		MerchantID:    res.account.MerchantID.String(),
		ProfileID:     profileID.String(),
		AuthType:      res.auth.Type,
		Request:       req,
		ConnectorAuth: res.auth,
	}
	outcome, err := pipeline.Execute(ctx, s.httpClient, s.retryPolicy, "", res.auth, req, syncer.BuildRSyncRequest, refundParser(syncer.ParseRSyncResponse))
	if err != nil {
		return rd, err
	}
	rd.ResponseSet = true
	rd.Response = outcome.Response
	rd.Err = outcome.Err
	rd.HTTPStatusCode = outcome.HTTPStatus
	return rd, nil
}

// refundParser adapts a refund capability's (Resp, *ErrorResponse, error)
// parser shape onto pipeline.ResponseParser's (Resp, AttemptStatus,
// *ErrorResponse, error) shape. Refunds carry their own RefundStatus
// field rather than AttemptStatus, so the status slot is always the zero
// value here; it is never read by the refund flows above.
func refundParser(parse func(httpStatus int, body []byte) (payments.RefundsResponseData, *payments.ErrorResponse, error)) pipeline.ResponseParser[payments.RefundsResponseData] {
	return func(httpStatus int, body []byte) (payments.RefundsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
		resp, errResp, err := parse(httpStatus, body)
		return resp, "", errResp, err
	}
}

// applyOutcome writes a pipeline.Outcome into a PaymentsResponseData-typed
// RouterData, enforcing the transition invariant: a connector response
// that would regress attempt status past a terminal state is dropped in
// favor of keeping the carrier's prior status, since the pipeline caller
// owns the only mutation of a RouterData and a regression can only mean a
// stale or duplicate response arrived out of order.
func applyOutcome[Flow any, Req any](rd *payments.RouterData[Flow, Req, payments.PaymentsResponseData], outcome pipeline.Outcome[payments.PaymentsResponseData]) {
	if rd.AttemptStatus != "" && !rd.AttemptStatus.CanTransitionTo(outcome.AttemptStatus) {
		rd.Err = outcome.Err
		rd.HTTPStatusCode = outcome.HTTPStatus
		return
	}
	rd.ResponseSet = true
	rd.Response = outcome.Response
	rd.AttemptStatus = outcome.AttemptStatus
	rd.Err = outcome.Err
	rd.HTTPStatusCode = outcome.HTTPStatus
	rd.ConnectorTransactionID = outcome.Response.ConnectorTransactionID
	rd.Mandate = outcome.Response.Mandate
}
