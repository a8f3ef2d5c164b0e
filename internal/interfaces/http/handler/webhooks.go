package handler

import (
	"errors"
	"io"
	"net/http"

	appwebhooks "github.com/erp/paymentrouter/internal/application/webhooks"
	"github.com/erp/paymentrouter/internal/infrastructure/logger"
	"github.com/erp/paymentrouter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhooksHandler exposes the webhook dispatcher over HTTP.
type WebhooksHandler struct {
	dispatcher *appwebhooks.Dispatcher
}

// NewWebhooksHandler constructs a WebhooksHandler bound to dispatcher.
func NewWebhooksHandler(dispatcher *appwebhooks.Dispatcher) *WebhooksHandler {
	return &WebhooksHandler{dispatcher: dispatcher}
}

// webhookAckResponse is returned for a known event once the sink has run.
type webhookAckResponse struct {
	Status string `json:"status"`
}

// Receive handles POST /connectors/:connector/webhooks. Verification
// failure returns 401 with no body ever parsed; an unknown event type is
// acknowledged with 200 rather than treated as an error, per the
// contract that unrecognized events are accepted but not acted on.
func (h *WebhooksHandler) Receive(c *gin.Context) {
	connectorName := c.Param("connector")
	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Webhook-Signature")
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", "IR_06", "could not read request body"))
		return
	}

	event, err := h.dispatcher.Dispatch(c.Request.Context(), connectorName, body, signature)
	if err != nil {
		if errors.Is(err, appwebhooks.ErrSourceVerificationFailed) {
			c.JSON(http.StatusUnauthorized, dto.NewAPIErrorEnvelope("invalid_request", "IR_01", "webhook signature verification failed"))
			return
		}
		if errors.Is(err, appwebhooks.ErrMalformedEnvelope) {
			c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", "IR_02", "webhook body could not be decoded"))
			return
		}
		logger.FromContext(c.Request.Context()).Error("webhook dispatch failed",
			zap.String("connector", connectorName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewAPIErrorEnvelope("invalid_request", "INTERNAL_ERROR", "an unexpected error occurred"))
		return
	}

	if event.Kind == appwebhooks.Unknown {
		c.JSON(http.StatusOK, webhookAckResponse{Status: "event_not_supported"})
		return
	}
	c.JSON(http.StatusOK, webhookAckResponse{Status: "processed"})
}
