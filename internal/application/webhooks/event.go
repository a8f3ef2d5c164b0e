// Package webhooks implements the inbound webhook dispatcher: it verifies
// a processor's webhook source signature, decodes the event envelope, and
// classifies the processor-native event type into the canonical,
// closed-enum event set every connector's webhooks are normalized onto.
package webhooks

// Kind is the canonical, closed-enum set every processor's webhook events
// are classified into. Unknown is the catch-all for any event type this
// dispatcher does not recognize: it is acknowledged, never acted on.
type Kind string

const (
	PaymentIntentSuccess         Kind = "payment_intent_success"
	PaymentIntentFailure         Kind = "payment_intent_failure"
	PaymentIntentProcessing      Kind = "payment_intent_processing"
	PaymentIntentRequiresAction  Kind = "payment_intent_requires_action"
	PaymentIntentPartiallyFunded Kind = "payment_intent_partially_funded"
	PaymentIntentCanceled        Kind = "payment_intent_canceled"

	ChargeSuccess      Kind = "charge_success"
	ChargeFailure      Kind = "charge_failure"
	ChargeRefunded     Kind = "charge_refunded"
	ChargeCaptured     Kind = "charge_captured"
	ChargeExpired      Kind = "charge_expired"
	ChargeRefundUpdated Kind = "charge_refund_updated"

	DisputeOpened     Kind = "dispute_opened"
	DisputeCancelled  Kind = "dispute_cancelled"
	DisputeChallenged Kind = "dispute_challenged"
	DisputeWon        Kind = "dispute_won"
	DisputeLost       Kind = "dispute_lost"

	SourceChargeable         Kind = "source_chargeable"
	SourceTransactionCreated Kind = "source_transaction_created"

	Unknown Kind = "event_not_supported"
)

// eventTypeKinds maps a processor's literal event-type string onto its
// canonical Kind for every event whose kind is determined by type alone.
// Dispute events are classified separately, by the network's status
// field rather than by type, via disputeStatusKinds.
var eventTypeKinds = map[string]Kind{
	"payment_intent.succeeded":        PaymentIntentSuccess,
	"payment_intent.payment_failed":   PaymentIntentFailure,
	"payment_intent.processing":       PaymentIntentProcessing,
	"payment_intent.requires_action":  PaymentIntentRequiresAction,
	"payment_intent.partially_funded": PaymentIntentPartiallyFunded,
	"payment_intent.canceled":         PaymentIntentCanceled,

	"charge.succeeded":      ChargeSuccess,
	"charge.failed":         ChargeFailure,
	"charge.refunded":       ChargeRefunded,
	"charge.captured":       ChargeCaptured,
	"charge.expired":        ChargeExpired,
	"charge.refund.updated": ChargeRefundUpdated,

	"source.chargeable":          SourceChargeable,
	"source.transaction.created": SourceTransactionCreated,
}

// disputeEventTypes is the set of event types whose canonical Kind is
// determined by the network's status field rather than by type alone.
var disputeEventTypes = map[string]bool{
	"charge.dispute.created":         true,
	"charge.dispute.closed":          true,
	"charge.dispute.updated":         true,
	"charge.dispute.funds_reinstated": true,
	"charge.dispute.funds_withdrawn":  true,
}

// disputeStatusKinds maps the network's dispute status field onto its
// canonical Kind.
var disputeStatusKinds = map[string]Kind{
	"opened":     DisputeOpened,
	"cancelled":  DisputeCancelled,
	"challenged": DisputeChallenged,
	"won":        DisputeWon,
	"lost":       DisputeLost,
}

// classify maps a decoded (eventType, objectStatus) pair onto its
// canonical Kind. It is a total function: every input has a Kind,
// defaulting to Unknown for anything this dispatcher does not recognize.
func classify(eventType, objectStatus string) Kind {
	if disputeEventTypes[eventType] {
		if kind, ok := disputeStatusKinds[objectStatus]; ok {
			return kind
		}
		return Unknown
	}
	if kind, ok := eventTypeKinds[eventType]; ok {
		return kind
	}
	return Unknown
}

// Event is the canonical, processor-agnostic shape a dispatched webhook
// is normalized into before reaching the downstream sink.
type Event struct {
	Kind          Kind
	ConnectorName string
	ObjectID      string
	RawType       string
}
