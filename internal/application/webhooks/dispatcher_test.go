package webhooks

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/stretchr/testify/require"
)

var errMalformed = errors.New("malformed envelope")

// fakeWebhookConnector implements WebhookSourceVerifier and
// WebhookEventDecoder with results fixed per test case.
type fakeWebhookConnector struct {
	verifyOK     bool
	verifyErr    error
	eventType    string
	objectID     string
	objectStatus string
	decodeErr    error
}

func (f *fakeWebhookConnector) Info() connector.Info {
	return connector.Info{Name: "fake", BaseURL: "https://fake.test"}
}

func (f *fakeWebhookConnector) VerifyWebhookSource(req payments.WebhookSourceVerifyData) (bool, error) {
	return f.verifyOK, f.verifyErr
}

func (f *fakeWebhookConnector) DecodeWebhookEvent(body []byte) (string, string, string, error) {
	return f.eventType, f.objectID, f.objectStatus, f.decodeErr
}

// fakeSink records every event handed to it.
type fakeSink struct {
	events []Event
	err    error
}

func (s *fakeSink) Handle(ctx context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func newDispatcherFixture(fc *fakeWebhookConnector, sink Sink) *Dispatcher {
	reg := connector.NewRegistry()
	reg.Register(fc)
	return NewDispatcher(reg, sink)
}

func TestDispatchVerificationFailureReturnsErrorBeforeDecoding(t *testing.T) {
	fc := &fakeWebhookConnector{verifyOK: false, eventType: "payment_intent.succeeded"}
	sink := &fakeSink{}
	d := newDispatcherFixture(fc, sink)

	_, err := d.Dispatch(context.Background(), "fake", []byte(`{}`), "bad-signature")
	require.ErrorIs(t, err, ErrSourceVerificationFailed)
	require.Empty(t, sink.events)
}

func TestDispatchKnownEventReachesSinkExactlyOnce(t *testing.T) {
	fc := &fakeWebhookConnector{verifyOK: true, eventType: "payment_intent.succeeded", objectID: "pi_1", objectStatus: "succeeded"}
	sink := &fakeSink{}
	d := newDispatcherFixture(fc, sink)

	event, err := d.Dispatch(context.Background(), "fake", []byte(`{}`), "v1=sig")
	require.NoError(t, err)
	require.Equal(t, PaymentIntentSuccess, event.Kind)
	require.Equal(t, "pi_1", event.ObjectID)
	require.Len(t, sink.events, 1)
}

func TestDispatchUnknownEventAcknowledgedWithoutReachingSink(t *testing.T) {
	fc := &fakeWebhookConnector{verifyOK: true, eventType: "customer.created", objectID: "cus_1"}
	sink := &fakeSink{}
	d := newDispatcherFixture(fc, sink)

	event, err := d.Dispatch(context.Background(), "fake", []byte(`{}`), "v1=sig")
	require.NoError(t, err)
	require.Equal(t, Unknown, event.Kind)
	require.Empty(t, sink.events)
}

func TestDispatchDisputeEventClassifiedByNetworkStatus(t *testing.T) {
	cases := []struct {
		status string
		want   Kind
	}{
		{"opened", DisputeOpened},
		{"cancelled", DisputeCancelled},
		{"challenged", DisputeChallenged},
		{"won", DisputeWon},
		{"lost", DisputeLost},
		{"needs_response", Unknown},
	}
	for _, tc := range cases {
		fc := &fakeWebhookConnector{verifyOK: true, eventType: "charge.dispute.updated", objectID: "dp_1", objectStatus: tc.status}
		sink := &fakeSink{}
		d := newDispatcherFixture(fc, sink)

		event, err := d.Dispatch(context.Background(), "fake", []byte(`{}`), "v1=sig")
		require.NoError(t, err)
		require.Equal(t, tc.want, event.Kind, "status %q", tc.status)
	}
}

func TestDispatchMalformedEnvelope(t *testing.T) {
	fc := &fakeWebhookConnector{verifyOK: true, decodeErr: errMalformed}
	d := newDispatcherFixture(fc, &fakeSink{})

	_, err := d.Dispatch(context.Background(), "fake", []byte(`not json`), "v1=sig")
	require.ErrorIs(t, err, ErrMalformedEnvelope)
}
