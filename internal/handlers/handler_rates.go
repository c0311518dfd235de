package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/middleware"
)

// ratesHandler exposes the resolved exchange-rate table.
type ratesHandler struct {
	rateService portssvc.RateSvcFacade
}

// registerRatesRoutes registers the exchange-rate routes.
func registerRatesRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := &ratesHandler{rateService: rateService}

	rg.GET("/rates", h.getRates)
}

func (h *ratesHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.rateService.GetRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to resolve rate table", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rates are unavailable, retry later"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateTableResponse(snapshot))
}
