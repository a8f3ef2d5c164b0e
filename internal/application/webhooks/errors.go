package webhooks

import "github.com/erp/paymentrouter/internal/domain/shared"

var (
	ErrSourceVerificationFailed = shared.NewDomainError("WEBHOOK_SOURCE_VERIFICATION_FAILED", "webhook signature did not verify against the configured secret")
	ErrMalformedEnvelope        = shared.NewDomainError("WEBHOOK_MALFORMED_ENVELOPE", "webhook body could not be decoded into the event envelope")
)
