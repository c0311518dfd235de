package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/middleware"
)

// transferHandler handles HTTP requests for cross-account transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
	rateService     portssvc.RateSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade, rs portssvc.RateSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
		rateService:     rs,
	}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade, rateService portssvc.RateSvcFacade) {
	h := newTransferHandler(transferService, rateService)

	rg.POST("/transfers", h.createTransfer)
}

func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("owner_id", ownerID),
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
	)
	logger.Info("Received request to transfer",
		slog.String("from_currency", req.FromCurrencyCode),
		slog.String("to_currency", req.ToCurrencyCode),
	)

	// Resolve the rate table once, up front, so both legs of the
	// transfer see the same rates.
	snapshot, err := h.rateService.GetRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to resolve rate table", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rates are unavailable, retry later"})
		return
	}

	result, err := h.transferService.Execute(c.Request.Context(), req, snapshot.Rates, ownerID)
	if err != nil {
		respondTransactionError(c, logger, err, "execute transfer")
		return
	}

	logger.Info("Transfer executed successfully",
		slog.String("out_transaction_id", result.OutTransaction.TransactionID),
		slog.String("in_transaction_id", result.InTransaction.TransactionID),
	)
	c.JSON(http.StatusCreated, dto.TransferResponse{
		OutTransaction: dto.ToTransactionResponse(&result.OutTransaction),
		InTransaction:  dto.ToTransactionResponse(&result.InTransaction),
	})
}
