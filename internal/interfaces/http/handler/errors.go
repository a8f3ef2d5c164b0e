// Package handler implements the gin handlers for the payments and
// webhooks HTTP surface: request decoding, service invocation, and the
// response/error shapes the external contract defines.
package handler

import (
	"errors"
	"net/http"

	apppayments "github.com/erp/paymentrouter/internal/application/payments"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/erp/paymentrouter/internal/infrastructure/logger"
	"github.com/erp/paymentrouter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps a domain/connector-layer error onto the API layer's
// HTTP response per the external contract: missing/invalid fields → 400,
// not-found on merchant/profile/connector → 404, not-implemented
// capability → 400, everything else unexpected → 500. Authentication
// errors never reach this function — they are handled by the
// authn middleware before any handler runs.
func writeError(c *gin.Context, err error) {
	var connErr *payments.ConnectorError
	if errors.As(err, &connErr) {
		switch connErr.Code {
		case payments.ErrCodeMissingRequiredField, payments.ErrCodeMissingRequiredFields,
			payments.ErrCodeMismatchedPaymentData, payments.ErrCodeInvalidWalletToken,
			payments.ErrCodeMissingApplePayTokenData, payments.ErrCodeFailedToObtainAuthType,
			payments.ErrCodeInvalidConnectorConfig:
			c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", string(connErr.Code), connErr.Message))
			return
		case payments.ErrCodeInvalidConnectorName:
			c.JSON(http.StatusNotFound, dto.NewAPIErrorEnvelope("invalid_request", string(connErr.Code), connErr.Message))
			return
		case payments.ErrCodeNotImplemented:
			c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", string(connErr.Code), connErr.Message))
			return
		default:
			logger.FromContext(c.Request.Context()).Error("connector error reached api layer", zap.Error(connErr))
			c.JSON(http.StatusInternalServerError, dto.NewAPIErrorEnvelope("invalid_request", string(connErr.Code), "an unexpected error occurred"))
			return
		}
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case apppayments.ErrConnectorAccountNotFound.Code:
			c.JSON(http.StatusNotFound, dto.NewAPIErrorEnvelope("invalid_request", de.Code, de.Message))
			return
		case apppayments.ErrConnectorAccountDisabled.Code, apppayments.ErrInvalidConnectorAuth.Code,
			apppayments.ErrDuplicateAttempt.Code, apppayments.ErrReturnURLRequired.Code:
			c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", de.Code, de.Message))
			return
		default:
			c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", de.Code, de.Message))
			return
		}
	}

	logger.FromContext(c.Request.Context()).Error("unexpected error in payments handler", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewAPIErrorEnvelope("invalid_request", "INTERNAL_ERROR", "an unexpected error occurred"))
}
