package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"succeeded"}`))
	}))
	defer srv.Close()

	build := func(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
		return connector.RequestSpec{Method: http.MethodPost, URL: srv.URL, Body: []byte("amount=1234")}, nil
	}
	parse := func(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
		return payments.PaymentsResponseData{ConnectorTransactionID: "pi_1"}, payments.AttemptStatusCharged, nil, nil
	}

	outcome, err := Execute[payments.PaymentsAuthorizeData, payments.PaymentsResponseData](
		context.Background(), srv.Client(), DefaultRetryPolicy(), "attempt-1",
		payments.ConnectorAuth{}, payments.PaymentsAuthorizeData{}, build, parse,
	)

	require.NoError(t, err)
	assert.Equal(t, payments.AttemptStatusCharged, outcome.AttemptStatus)
	assert.Equal(t, "pi_1", outcome.Response.ConnectorTransactionID)
	assert.Nil(t, outcome.Err)
}

func TestExecuteBusinessDeclineNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"card_declined"}}`))
	}))
	defer srv.Close()

	build := func(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
		return connector.RequestSpec{Method: http.MethodPost, URL: srv.URL}, nil
	}
	parse := func(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
		errResp := payments.NewErrorResponse("card_declined", "Your card was declined.", "", httpStatus, payments.AttemptStatusFailure, "pi_1")
		return payments.PaymentsResponseData{}, payments.AttemptStatusFailure, &errResp, nil
	}

	outcome, err := Execute[payments.PaymentsAuthorizeData, payments.PaymentsResponseData](
		context.Background(), srv.Client(), DefaultRetryPolicy(), "attempt-2",
		payments.ConnectorAuth{}, payments.PaymentsAuthorizeData{}, build, parse,
	)

	require.NoError(t, err)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, "card_declined", outcome.Err.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "a business decline must not be retried")
}

func TestExecuteMalformedBodyIsResponseDeserializationFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	build := func(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
		return connector.RequestSpec{Method: http.MethodPost, URL: srv.URL}, nil
	}
	parse := func(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
		return payments.PaymentsResponseData{}, "", nil, assertParseFails()
	}

	_, err := Execute[payments.PaymentsAuthorizeData, payments.PaymentsResponseData](
		context.Background(), srv.Client(), DefaultRetryPolicy(), "attempt-3",
		payments.ConnectorAuth{}, payments.PaymentsAuthorizeData{}, build, parse,
	)

	require.Error(t, err)
	var connErr *payments.ConnectorError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, payments.ErrCodeResponseDeserializationFailed, connErr.Code)
}

func assertParseFails() error {
	return payments.NewConnectorError(payments.ErrCodeResponseDeserializationFailed, "malformed body")
}

func TestIdempotencyKeyForIsDeterministic(t *testing.T) {
	a := IdempotencyKeyFor("attempt-1")
	b := IdempotencyKeyFor("attempt-1")
	c := IdempotencyKeyFor("attempt-2")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestExecuteHonorsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	build := func(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
		return connector.RequestSpec{Method: http.MethodPost, URL: srv.URL}, nil
	}
	parse := func(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
		return payments.PaymentsResponseData{}, payments.AttemptStatusCharged, nil, nil
	}

	_, err := Execute[payments.PaymentsAuthorizeData, payments.PaymentsResponseData](
		ctx, srv.Client(), RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}, "attempt-4",
		payments.ConnectorAuth{}, payments.PaymentsAuthorizeData{}, build, parse,
	)

	require.Error(t, err)
	var connErr *payments.ConnectorError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, payments.ErrCodeConnectorTimeout, connErr.Code)
}
