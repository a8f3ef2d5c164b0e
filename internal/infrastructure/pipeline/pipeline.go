// Package pipeline implements the execution step shared by every
// connector flow: assemble a request, issue it through a pooled HTTP
// client with a bounded retry policy, and classify the outcome into a
// canonical success or error shape. Connectors themselves never perform
// I/O; this package is the pipeline's single suspension point.
package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// RetryPolicy bounds how many times a transient transport failure is
// retried and how the backoff between attempts grows. Business declines
// (any response the processor actually sent) are never retried regardless
// of this policy; only network-level failures before a response was
// received are eligible.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy matches the exemplar Stripe connector's configured
// defaults (see config.StripeConfig).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 200 * time.Millisecond}
}

// RequestBuilder assembles the outbound HTTP request for one flow from
// its canonical request value. It must be a pure function of auth and
// req: no I/O, no retries, no knowledge of the transport.
type RequestBuilder[Req any] func(auth payments.ConnectorAuth, req Req) (connector.RequestSpec, error)

// ResponseParser turns a completed HTTP exchange into either a canonical
// success value or a structured ErrorResponse. A non-nil error return
// means the body could not be interpreted at all (malformed JSON, wrong
// shape) and becomes ResponseDeserializationFailed; it is distinct from a
// populated ErrorResponse, which means the processor's own decline was
// understood.
type ResponseParser[Resp any] func(httpStatus int, body []byte) (Resp, payments.AttemptStatus, *payments.ErrorResponse, error)

// Outcome is the result of one Execute call.
type Outcome[Resp any] struct {
	Response      Resp
	AttemptStatus payments.AttemptStatus
	Err           *payments.ErrorResponse
	HTTPStatus    int
}

// IdempotencyKeyFor derives a deterministic idempotency key from an
// attempt id, per the contract that re-issuing the same non-idempotent
// call (authorize/capture/refund) with the same attempt id must reach the
// processor as the same logical request.
func IdempotencyKeyFor(attemptID string) string {
	sum := sha256.Sum256([]byte(attemptID))
	return hex.EncodeToString(sum[:])
}

// Execute runs the (build, issue, classify) sequence for one flow. client
// must already be configured with the pool/timeout policy appropriate for
// the target connector; Execute only adds retry and idempotency-key
// behavior on top of it.
func Execute[Req any, Resp any](
	ctx context.Context,
	client *http.Client,
	policy RetryPolicy,
	attemptID string,
	auth payments.ConnectorAuth,
	req Req,
	build RequestBuilder[Req],
	parse ResponseParser[Resp],
) (Outcome[Resp], error) {
	var zero Outcome[Resp]

	spec, err := build(auth, req)
	if err != nil {
		return zero, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL, bytes.NewReader(spec.Body))
	if err != nil {
		return zero, payments.NewConnectorError(payments.ErrCodeRequestEncodingFailed, err.Error())
	}
	for key, values := range spec.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if attemptID != "" && spec.Method != http.MethodGet {
		httpReq.Header.Set("Idempotency-Key", IdempotencyKeyFor(attemptID))
	}

	resp, httpErr := doWithRetry(ctx, client, httpReq, spec.Body, policy)
	if httpErr != nil {
		return zero, classifyTransportError(ctx, httpErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, payments.NewConnectorError(payments.ErrCodeResponseDeserializationFailed, err.Error())
	}

	respVal, status, errResp, parseErr := parse(resp.StatusCode, body)
	if parseErr != nil {
		return zero, payments.NewConnectorError(payments.ErrCodeResponseDeserializationFailed, parseErr.Error())
	}

	return Outcome[Resp]{
		Response:      respVal,
		AttemptStatus: status,
		Err:           errResp,
		HTTPStatus:    resp.StatusCode,
	}, nil
}

// doWithRetry issues httpReq, retrying only network-level failures (no
// response received at all) up to policy.MaxRetries times with
// exponentially growing jittered backoff. Responses that were actually
// received — including 4xx/5xx business declines — are never retried: the
// processor answered, and the pipeline must not second-guess it.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, bodyBytes []byte, policy RetryPolicy) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.BaseDelay * time.Duration(1<<uint(attempt-1))
			delay += time.Duration(rand.Int63n(int64(policy.BaseDelay)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := client.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetriableTransportError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func isRetriableTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// classifyTransportError maps a failed HTTP exchange into the two
// connector-layer transport error variants: a deadline crossed anywhere
// in the call (ConnectorTimeout, retriable by a later sync rather than
// the pipeline itself) or any other network failure
// (ConnectorConnectionError, retriable per policy already exhausted).
func classifyTransportError(ctx context.Context, err error) *payments.ConnectorError {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return payments.NewRetriableConnectorError(payments.ErrCodeConnectorTimeout, err.Error())
	}
	return payments.NewRetriableConnectorError(payments.ErrCodeConnectorConnectionError, err.Error())
}
