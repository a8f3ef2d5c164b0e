package webhooks

import (
	"context"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// Sink receives every dispatched event whose Kind is not Unknown. An
// unknown event type is acknowledged by Dispatch's caller without ever
// reaching a Sink, per the contract that unrecognized events are
// accepted but not acted on.
type Sink interface {
	Handle(ctx context.Context, event Event) error
}

// Dispatcher verifies and classifies inbound webhook deliveries for every
// registered connector, then hands known events to a Sink.
type Dispatcher struct {
	registry *connector.Registry
	sink     Sink
}

// NewDispatcher constructs a Dispatcher. sink may be nil, in which case
// Dispatch still verifies, decodes, and classifies, but never invokes it
// — useful for callers that only need the classification result (e.g. a
// dry-run endpoint).
func NewDispatcher(registry *connector.Registry, sink Sink) *Dispatcher {
	return &Dispatcher{registry: registry, sink: sink}
}

// Dispatch runs the full inbound webhook contract for one delivery:
// verify source, decode the envelope, classify into a canonical Kind,
// and — for anything other than Unknown — hand the Event to the sink.
// A verification failure returns ErrSourceVerificationFailed with no body
// ever having been parsed, matching the no-parse-before-verify ordering
// the spec requires. An Unknown Kind is returned with a nil error: the
// caller acknowledges it (HTTP 200, {status: "event_not_supported"})
// without it ever reaching the sink.
func (d *Dispatcher) Dispatch(ctx context.Context, connectorName string, rawBody []byte, signatureHeader string) (Event, error) {
	verifier, err := connector.Capability[connector.WebhookSourceVerifier](d.registry, connectorName)
	if err != nil {
		return Event{}, err
	}
	ok, err := verifier.VerifyWebhookSource(payments.WebhookSourceVerifyData{
		RawBody:         rawBody,
		SignatureHeader: signatureHeader,
	})
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, ErrSourceVerificationFailed
	}

	decoder, err := connector.Capability[connector.WebhookEventDecoder](d.registry, connectorName)
	if err != nil {
		return Event{}, err
	}
	eventType, objectID, objectStatus, err := decoder.DecodeWebhookEvent(rawBody)
	if err != nil {
		return Event{}, ErrMalformedEnvelope
	}

	event := Event{
		Kind:          classify(eventType, objectStatus),
		ConnectorName: connectorName,
		ObjectID:      objectID,
		RawType:       eventType,
	}
	if event.Kind == Unknown || d.sink == nil {
		return event, nil
	}
	if err := d.sink.Handle(ctx, event); err != nil {
		return event, err
	}
	return event, nil
}
