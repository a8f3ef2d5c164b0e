package payments

// PayoutStatus is the canonical status of an outbound payout to a
// customer or connected account.
type PayoutStatus string

const (
	PayoutStatusSuccess   PayoutStatus = "success"
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusFailed    PayoutStatus = "failed"
	PayoutStatusCancelled PayoutStatus = "cancelled"
)

// PayoutFlowData is the flow-specific request shared by the Payout*
// capability triples (create, fulfill, cancel, eligibility-check).
type PayoutFlowData struct {
	PayoutID       string
	Amount         MinorUnits
	Currency       Currency
	DestinationID  string // processor-scoped destination account/card id
	Reason         string
}

// PayoutResponseData is the flow-specific response for payout operations.
type PayoutResponseData struct {
	ConnectorPayoutID string
	Status            PayoutStatus
}
