package handler

import (
	"net/http"

	"github.com/google/uuid"

	apppayments "github.com/erp/paymentrouter/internal/application/payments"
	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/interfaces/http/dto"
	"github.com/erp/paymentrouter/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentsHandler exposes the orchestration service's flows over HTTP.
type PaymentsHandler struct {
	service *apppayments.Service
}

// NewPaymentsHandler constructs a PaymentsHandler bound to service.
func NewPaymentsHandler(service *apppayments.Service) *PaymentsHandler {
	return &PaymentsHandler{service: service}
}

// writeValidationError writes the 400 envelope for a request that failed
// to bind or convert before it ever reached the orchestration service.
func writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", "IR_02", err.Error()))
}

// profileAndConnector reads the authenticated principal's attached
// profile (set by an Authenticate middleware configured with
// RequiresProfile) and the :connector path parameter.
func profileAndConnector(c *gin.Context) (uuid.UUID, string, bool) {
	principal := middleware.MustPrincipal(c)
	if principal.Profile == nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", "IR_04", "X-Profile-Id is required for this endpoint"))
		return uuid.UUID{}, "", false
	}
	connectorName := c.Param("connector")
	if connectorName == "" {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorEnvelope("invalid_request", "IR_05", "connector path segment is required"))
		return uuid.UUID{}, "", false
	}
	return principal.Profile.ID, connectorName, true
}

// Authorize handles POST /connectors/:connector/payments/authorize.
func (h *PaymentsHandler) Authorize(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	var body dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.Authorize(c.Request.Context(), profileID, connectorName, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// CompleteAuthorize handles POST /connectors/:connector/payments/complete_authorize.
func (h *PaymentsHandler) CompleteAuthorize(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	var body dto.CompleteAuthorizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.CompleteAuthorize(c.Request.Context(), profileID, connectorName, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// PSync handles GET /connectors/:connector/payments/:transaction_id/sync.
func (h *PaymentsHandler) PSync(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	txnID := c.Param("transaction_id")
	if txnID == "" {
		writeValidationError(c, payments.MissingRequiredField("transaction_id"))
		return
	}

	rd, err := h.service.PSync(c.Request.Context(), profileID, connectorName, payments.PaymentsSyncData{ConnectorTransactionID: txnID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// Capture handles POST /connectors/:connector/payments/:attempt_id/capture.
func (h *PaymentsHandler) Capture(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	attemptID := c.Param("attempt_id")
	var body dto.CaptureRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.Capture(c.Request.Context(), profileID, connectorName, attemptID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// Void handles POST /connectors/:connector/payments/:attempt_id/void.
func (h *PaymentsHandler) Void(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	attemptID := c.Param("attempt_id")
	var body dto.VoidRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.Void(c.Request.Context(), profileID, connectorName, attemptID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// SetupMandate handles POST /connectors/:connector/mandates/setup.
func (h *PaymentsHandler) SetupMandate(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	attemptID := c.Query("attempt_id")
	var body dto.SetupMandateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.SetupMandate(c.Request.Context(), profileID, connectorName, attemptID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAttemptResponseFrom(rd))
}

// Refund handles POST /connectors/:connector/refunds.
func (h *PaymentsHandler) Refund(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	var body dto.RefundRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeValidationError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		writeValidationError(c, err)
		return
	}

	rd, err := h.service.Refund(c.Request.Context(), profileID, connectorName, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefundResponseFrom[connector.Execute](rd))
}

// RSync handles GET /connectors/:connector/refunds/:refund_id/sync.
func (h *PaymentsHandler) RSync(c *gin.Context) {
	profileID, connectorName, ok := profileAndConnector(c)
	if !ok {
		return
	}
	refundID := c.Param("refund_id")
	txnID := c.Query("connector_transaction_id")
	if refundID == "" {
		writeValidationError(c, payments.MissingRequiredField("refund_id"))
		return
	}
	if txnID == "" {
		writeValidationError(c, payments.MissingRequiredField("connector_transaction_id"))
		return
	}

	rd, err := h.service.RSync(c.Request.Context(), profileID, connectorName, payments.RefundsData{
		ConnectorTransactionID: txnID,
		RefundID:               refundID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefundResponseFrom[connector.RSync](rd))
}
