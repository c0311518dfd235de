package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finledger/ledgerd/internal/core/services"
	"github.com/finledger/ledgerd/internal/middleware"
	"github.com/finledger/ledgerd/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, container.Account, container.Transaction)
	registerTransactionRoutes(v1, container.Transaction)
	registerTransferRoutes(v1, container.Transfer, container.Rates)
	registerSettlementRoutes(v1, container.Settlement)
	registerRatesRoutes(v1, container.Rates)
}
