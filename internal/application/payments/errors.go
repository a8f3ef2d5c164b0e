// Package payments is the orchestration layer: it loads the merchant's
// connector configuration, selects the requested capability off the
// connector registry, runs it through the execution pipeline, and
// assembles the result into the canonical RouterData carrier. It holds
// no transport or storage code of its own — everything here composes
// domain/connector, domain/identity, domain/payments, and
// infrastructure/pipeline.
package payments

import "github.com/erp/paymentrouter/internal/domain/shared"

var (
	ErrConnectorAccountNotFound = shared.NewDomainError("CONNECTOR_ACCOUNT_NOT_FOUND", "no usable connector account configured for this profile and connector")
	ErrConnectorAccountDisabled = shared.NewDomainError("CONNECTOR_ACCOUNT_DISABLED", "connector account is not currently usable")
	ErrInvalidConnectorAuth     = shared.NewDomainError("INVALID_CONNECTOR_AUTH", "stored connector account details could not be decoded into connector credentials")
	ErrDuplicateAttempt         = shared.NewDomainError("DUPLICATE_ATTEMPT", "an attempt with this id is already being processed")
	ErrReturnURLRequired        = shared.NewDomainError("RETURN_URL_REQUIRED", "a return url is required to confirm this payment")
)
