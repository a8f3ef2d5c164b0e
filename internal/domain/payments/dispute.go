package payments

// DisputeStage tracks where in the network's dispute lifecycle a dispute
// currently sits.
type DisputeStage string

const (
	DisputeStagePreDispute DisputeStage = "pre_dispute"
	DisputeStageDispute    DisputeStage = "dispute"
	DisputeStagePreArbitration DisputeStage = "pre_arbitration"
)

// DisputeStatus is the canonical dispute status, mapped from each
// processor's native dispute-event `status` field.
type DisputeStatus string

const (
	DisputeStatusOpened            DisputeStatus = "opened"
	DisputeStatusExpired           DisputeStatus = "expired"
	DisputeStatusCancelled         DisputeStatus = "cancelled"
	DisputeStatusChallenged        DisputeStatus = "challenged"
	DisputeStatusWon               DisputeStatus = "won"
	DisputeStatusLost              DisputeStatus = "lost"
)

// Dispute is the canonical aggregate describing a cardholder dispute
// against a captured attempt.
type Dispute struct {
	DisputeID              string
	ConnectorDisputeID      string
	ConnectorTransactionID  string
	Amount                  MinorUnits
	Currency                Currency
	Stage                   DisputeStage
	Status                  DisputeStatus
	ConnectorReason         string
	ConnectorReasonCode     string
	EvidenceDueBy           int64 // unix seconds
}

// DisputesFlowData is the flow-specific request shared by the
// Accept/Defend/SubmitEvidence capability triples.
type DisputesFlowData struct {
	DisputeID          string
	ConnectorDisputeID string
	EvidenceText       string
	EvidenceFileID     string
}

// DisputesResponseData is the flow-specific response for dispute
// operations.
type DisputesResponseData struct {
	ConnectorDisputeID string
	DisputeStatus      DisputeStatus
}

// FilesFlowData is the flow-specific request shared by the Upload/Retrieve
// capability triples, used to attach evidence to a dispute.
type FilesFlowData struct {
	FileID      string
	FileContent []byte
	FileType    string
	PurposeTag  string // e.g. "dispute_evidence"
}

// FilesResponseData is the flow-specific response for file operations.
type FilesResponseData struct {
	ConnectorFileID string
	FileContent     []byte
}

// WebhookSourceVerifyData carries what VerifyWebhookSource needs: the raw
// body and the signature header value, so it can be HMAC-verified before
// any JSON decoding occurs.
type WebhookSourceVerifyData struct {
	RawBody         []byte
	SignatureHeader string
}
