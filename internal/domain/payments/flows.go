package payments

// CaptureMethod discriminates whether funds are captured automatically on
// authorization or held pending an explicit Capture call.
type CaptureMethod string

const (
	CaptureMethodAutomatic CaptureMethod = "automatic"
	CaptureMethodManual    CaptureMethod = "manual"
)

// ThreeDSPreference discriminates a caller's 3-D Secure request strength.
type ThreeDSPreference string

const (
	ThreeDSPreferenceAny        ThreeDSPreference = "any"
	ThreeDSPreferenceAutomatic  ThreeDSPreference = "automatic"
	ThreeDSPreferenceNone       ThreeDSPreference = "none"
)

// PaymentsAuthorizeData is the flow-specific request for the Authorize
// capability triple.
type PaymentsAuthorizeData struct {
	AttemptID          string // unique per-attempt id used to derive the idempotency key
	Amount             MinorUnits
	Currency           Currency
	PaymentMethodData  PaymentMethodData
	CaptureMethod      CaptureMethod
	ThreeDS            ThreeDSPreference
	ReturnURL          string
	BrowserInfo        *BrowserInfo
	Billing            *Address
	Shipping           *Address
	SetupFutureUsage   bool
	MandateData        *MandateData
	MandateReferenceID *MandateReferenceID
	StatementDescriptor string
	Metadata           map[string]string
}

// PaymentsSyncData is the flow-specific request for the PSync capability
// triple.
type PaymentsSyncData struct {
	ConnectorTransactionID string
}

// PaymentsCaptureData is the flow-specific request for the Capture
// capability triple.
type PaymentsCaptureData struct {
	ConnectorTransactionID string
	AmountToCapture        MinorUnits
	Currency               Currency
}

// PaymentsCancelData is the flow-specific request for the Void capability
// triple.
type PaymentsCancelData struct {
	ConnectorTransactionID string
	CancellationReason     string
}

// SetupMandateRequestData is the flow-specific request for the
// SetupMandate capability triple: authorize a zero- or minimal-amount
// transaction purely to establish a reusable mandate.
type SetupMandateRequestData struct {
	Currency          Currency
	PaymentMethodData PaymentMethodData
	MandateData       MandateData
	BrowserInfo       *BrowserInfo
	ReturnURL         string
}

// CompleteAuthorizeData is the flow-specific request for the
// CompleteAuthorize capability triple: resumes an authorization after the
// customer returns from a redirect-based challenge.
type CompleteAuthorizeData struct {
	ConnectorTransactionID string
	RedirectResponseParams map[string]string
}

// AccessTokenRequestData is the flow-specific request for the
// AccessTokenAuth capability triple, used by connectors whose credential
// model requires exchanging long-lived credentials for a short-lived
// bearer token before any other call.
type AccessTokenRequestData struct {
	AppID     string
	AppSecret ConnectorKey
}

// AccessToken is the flow-specific response for AccessTokenAuth.
type AccessToken struct {
	Token     Token
	ExpiresIn int64 // seconds
}

// ConnectorCustomerData is the flow-specific request for the
// CreateConnectorCustomer capability triple.
type ConnectorCustomerData struct {
	Email   Email
	Name    string
	Phone   *PhoneDetails
}

// ConnectorCustomerResponseData is the flow-specific response for
// CreateConnectorCustomer.
type ConnectorCustomerResponseData struct {
	ConnectorCustomerID string
}

// PaymentMethodTokenizationData is the flow-specific request for the
// PaymentMethodToken capability triple: exchange raw payment-method data
// for a processor-scoped token before authorization.
type PaymentMethodTokenizationData struct {
	PaymentMethodData PaymentMethodData
	CustomerID        string
}

// PaymentsPreProcessingData is the flow-specific request for the
// PreProcessing capability triple, used for flows that must mint an
// intermediate resource (e.g. a bank-transfer source) before
// authorization proper.
type PaymentsPreProcessingData struct {
	Amount            MinorUnits
	Currency          Currency
	PaymentMethodData PaymentMethodData
	Billing           *Address
	ReturnURL         string
}

// IncrementalAuthorizationData is the flow-specific request for the
// IncrementalAuthorization capability triple: raise a held authorization's
// amount without a new customer interaction.
type IncrementalAuthorizationData struct {
	ConnectorTransactionID string
	AdditionalAmount       MinorUnits
	Currency               Currency
	Reason                 string
}

// MandateRevokeData is the flow-specific request for the MandateRevoke
// capability triple.
type MandateRevokeData struct {
	ConnectorMandateID string
}

// MandateRevokeResponseData is the flow-specific response for
// MandateRevoke.
type MandateRevokeResponseData struct {
	MandateStatus string
}

// ExternalAuthenticationFlowData is the flow-specific request shared by
// the Authentication/PreAuthentication/PostAuthentication capability
// triples, used by connectors that delegate 3-D Secure authentication to
// a dedicated authentication service rather than the processor itself.
type ExternalAuthenticationFlowData struct {
	ConnectorTransactionID string
	DeviceChannel          string
	ThreeDSServerTransID   string
}

// ExternalAuthenticationResponseData is the flow-specific response for
// external-authentication operations.
type ExternalAuthenticationResponseData struct {
	AuthenticationStatus string
	ACSURL               string
}

// FrmFlowData is the flow-specific request shared by the
// Sale/Checkout/Transaction/Fulfillment/RecordReturn fraud-risk-management
// capability triples.
type FrmFlowData struct {
	ConnectorTransactionID string
	OrderID                string
}

// FrmResponseData is the flow-specific response for fraud-risk-management
// operations.
type FrmResponseData struct {
	FrmTransactionID string
	FrmStatus        string
}
