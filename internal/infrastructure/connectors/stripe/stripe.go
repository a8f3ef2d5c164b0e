// Package stripe is the exemplar connector integration: a hand-rolled,
// form-urlencoded client for the Stripe Payment Intents API. It deliberately
// does not use stripe-go's high-level client for request construction —
// the pipeline in internal/infrastructure/pipeline owns the one I/O point,
// and this package's job is purely to build requests and parse responses
// as pure functions of their input, per the connector-integration
// capability contract. stripe-go is used narrowly, for its webhook
// signature-verification helper only.
package stripe

import (
	"github.com/erp/paymentrouter/internal/domain/connector"
)

const (
	apiVersionHeader = "Stripe-Version"
	defaultAPIVersion = "2024-06-20"
)

// Config carries the per-deployment settings a Connector needs: which
// base URL to talk to and which API version to pin requests to.
type Config struct {
	BaseURL       string
	APIVersion    string
	WebhookSecret string
}

// Connector is the Stripe payment-intents integration. It implements the
// Authorize/PSync/Capture/Void/RefundExecutor/RefundSyncer/
// MandateSetupper/Tokenizer/CustomerCreator/PreProcessor/
// CompleteAuthorizer/DisputeAccepter/DisputeEvidenceSubmitter/
// FileUploader/FileRetriever/WebhookSourceVerifier capability set.
type Connector struct {
	cfg Config
}

// New constructs a Stripe connector bound to cfg. An empty APIVersion
// falls back to the pinned default.
func New(cfg Config) *Connector {
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	return &Connector{cfg: cfg}
}

// Info identifies this connector to the registry and to profiling labels.
func (c *Connector) Info() connector.Info {
	return connector.Info{Name: "stripe", BaseURL: c.cfg.BaseURL}
}

func (c *Connector) url(path string) string {
	return c.cfg.BaseURL + path
}

var (
	_ connector.Authorizer             = (*Connector)(nil)
	_ connector.PSyncer                = (*Connector)(nil)
	_ connector.Capturer               = (*Connector)(nil)
	_ connector.Voider                 = (*Connector)(nil)
	_ connector.RefundExecutor         = (*Connector)(nil)
	_ connector.RefundSyncer           = (*Connector)(nil)
	_ connector.MandateSetupper        = (*Connector)(nil)
	_ connector.CompleteAuthorizer     = (*Connector)(nil)
	_ connector.CustomerCreator        = (*Connector)(nil)
	_ connector.Tokenizer              = (*Connector)(nil)
	_ connector.PreProcessor           = (*Connector)(nil)
	_ connector.DisputeAccepter        = (*Connector)(nil)
	_ connector.DisputeEvidenceSubmitter = (*Connector)(nil)
	_ connector.FileUploader           = (*Connector)(nil)
	_ connector.FileRetriever          = (*Connector)(nil)
	_ connector.WebhookSourceVerifier  = (*Connector)(nil)
	_ connector.WebhookEventDecoder    = (*Connector)(nil)
	_ connector.MandateRevoker         = (*Connector)(nil)
)
