package v1

import (
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1. A nil auditService
// disables both recording and the /operations route.
func SetupRoutes(r *gin.Engine,
	gatewayService gateway.GatewayService,
	sessionService gateway.SessionService,
	auditService gateway.AuditService,
	logger logger.Logger) {

	v1 := r.Group(BasePath)

	// One-shot routes
	gatewayHandler := NewGatewayHandler(gatewayService, auditService, logger)
	v1.GET("/variants", gatewayHandler.ListVariants)
	v1.POST("/compute", gatewayHandler.Compute)
	v1.POST("/verify", gatewayHandler.Verify)
	v1.POST("/keypairs", gatewayHandler.GenerateKeyPair)
	v1.POST("/shared-secrets", gatewayHandler.DeriveSharedSecret)

	// Session routes
	sessionHandler := NewSessionHandler(sessionService, auditService, logger)
	v1.POST("/sessions", sessionHandler.Open)
	v1.POST("/sessions/:id/update", sessionHandler.Update)
	v1.POST("/sessions/:id/finalize", sessionHandler.Finalize)
	v1.DELETE("/sessions/:id", sessionHandler.Abandon)

	// Audit routes
	if auditService != nil {
		operationHandler := NewOperationHandler(auditService)
		v1.GET("/operations", operationHandler.List)
	}
}
