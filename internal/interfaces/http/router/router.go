// Package router assembles the gin engine: middleware chain, route
// table, and handler wiring.
package router

import (
	"time"

	"github.com/erp/paymentrouter/internal/application/authn"
	apppayments "github.com/erp/paymentrouter/internal/application/payments"
	appwebhooks "github.com/erp/paymentrouter/internal/application/webhooks"
	"github.com/erp/paymentrouter/internal/interfaces/http/handler"
	"github.com/erp/paymentrouter/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

// Dependencies bundles everything the route table needs to wire
// handlers and per-route authentication policy.
type Dependencies struct {
	Resolver         *authn.Resolver
	PaymentsService  *apppayments.Service
	WebhookDispatcher *appwebhooks.Dispatcher
	CORSConfig       middleware.CORSConfig
	RequestTimeout   time.Duration
}

// New builds the full gin engine: global middleware, health endpoints,
// and the versioned payments/webhooks route table.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(deps.CORSConfig))
	engine.Use(middleware.Tracing())
	// Mirrors Tracing()'s no-config-required wiring: otel.Meter draws on
	// whatever global MeterProvider the process has installed, and is a
	// safe no-op until one is. No SPEC_FULL.md component currently
	// installs an OTLP meter provider, so this ships inert by default but
	// already live in the request path rather than unreachable code.
	engine.Use(middleware.HTTPMetricsWithMeter(otel.Meter("paymentrouter"), true))
	if deps.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(deps.RequestTimeout))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	paymentsHandler := handler.NewPaymentsHandler(deps.PaymentsService)
	webhooksHandler := handler.NewWebhooksHandler(deps.WebhookDispatcher)

	profileScoped := authn.EndpointPolicy{
		IsPlatformAllowed:  true,
		IsConnectedAllowed: true,
		RequiresProfile:    true,
	}

	v1 := engine.Group("/api/v1")
	{
		connectors := v1.Group("/connectors/:connector")
		connectors.Use(middleware.Authenticate(deps.Resolver, profileScoped))
		{
			connectors.POST("/payments/authorize", paymentsHandler.Authorize)
			connectors.POST("/payments/complete_authorize", paymentsHandler.CompleteAuthorize)
			connectors.GET("/payments/:transaction_id/sync", paymentsHandler.PSync)
			connectors.POST("/payments/:attempt_id/capture", paymentsHandler.Capture)
			connectors.POST("/payments/:attempt_id/void", paymentsHandler.Void)
			connectors.POST("/mandates/setup", paymentsHandler.SetupMandate)
			connectors.POST("/refunds", paymentsHandler.Refund)
			connectors.GET("/refunds/:refund_id/sync", paymentsHandler.RSync)
		}

		// Webhook deliveries authenticate via the processor's own
		// signature scheme, not the authn resolver: they carry no
		// api-key/JWT at all.
		v1.POST("/connectors/:connector/webhooks", webhooksHandler.Receive)
	}

	return engine
}
