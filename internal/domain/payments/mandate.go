package payments

// MandateReferenceIDKind discriminates which opaque identifier a caller
// holds for a merchant-initiated transaction against a previously
// established mandate.
type MandateReferenceIDKind string

const (
	// MandateReferenceKindConnectorMandateID is the processor-mandate path:
	// the caller holds an opaque processor-scoped payment-method token and
	// sends only that, with no raw card data.
	MandateReferenceKindConnectorMandateID MandateReferenceIDKind = "connector_mandate_id"
	// MandateReferenceKindNetworkMandateID is the network-mandate path: the
	// caller holds only the card network's prior transaction id and must
	// resend the PAN/expiry (without CVC) alongside it.
	MandateReferenceKindNetworkMandateID MandateReferenceIDKind = "network_mandate_id"
)

// MandateReferenceID is the oneof a merchant-initiated request carries to
// identify which prior mandate it is debiting against.
type MandateReferenceID struct {
	Kind              MandateReferenceIDKind
	ConnectorMandateID string
	NetworkMandateID   string
}

// MandateReference is returned by a connector after a successful
// set-up-for-future-usage authorization. PaymentMethodID is required
// whenever set-up succeeded; NetworkTransactionID is present only when the
// card network returned one, and is required input for any later
// merchant-initiated transaction taking the network-mandate path.
type MandateReference struct {
	PaymentMethodID      string
	NetworkTransactionID string
}

// IsEmpty reports whether no mandate reference was produced by an attempt.
func (m MandateReference) IsEmpty() bool {
	return m.PaymentMethodID == "" && m.NetworkTransactionID == ""
}

// MandateAcceptanceKind discriminates how a customer accepted the
// mandate's terms, which governs which extra fields a connector must
// attach to the authorization request.
type MandateAcceptanceKind string

const (
	// MandateAcceptanceOnline means the customer actively accepted the
	// mandate terms in an online session; the connector must attach the
	// customer's IP and user agent.
	MandateAcceptanceOnline MandateAcceptanceKind = "online"
	// MandateAcceptanceOffline means acceptance happened outside any
	// online session (e.g. a signed paper mandate).
	MandateAcceptanceOffline MandateAcceptanceKind = "offline"
)

// MandateData describes a caller's request to set up a mandate for future
// usage alongside the current attempt.
type MandateData struct {
	Acceptance MandateAcceptanceKind
	CustomerIP IPAddress
	UserAgent  string
}
