package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finledger/ledgerd/internal/apperrors"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/middleware"
)

// settlementHandler handles HTTP requests for two-party shared expenses.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
	}
}

// registerSettlementRoutes registers routes related to shared expenses.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	expenses := rg.Group("/shared-expenses")
	{
		expenses.POST("", h.createSharedExpense)
		expenses.GET("", h.listSharedExpenses)
		expenses.GET("/balance", h.getBalance)
		expenses.GET("/:id", h.getSharedExpense)
		expenses.PUT("/:id", h.updateSharedExpense)
		expenses.POST("/:id/settle", h.settle)
	}
}

func respondSettlementError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Shared expense not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Shared expense not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Shared expense already settled", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *settlementHandler) createSharedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSharedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSharedExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_id", ownerID), slog.String("counterparty_id", req.CounterpartyID))
	logger.Info("Received request to record shared expense")

	expense, err := h.settlementService.RecordOwnPayment(c.Request.Context(), req, ownerID)
	if err != nil {
		respondSettlementError(c, logger, err, "record shared expense")
		return
	}

	logger.Info("Shared expense recorded successfully", slog.String("shared_expense_id", expense.SharedExpenseID))
	c.JSON(http.StatusCreated, dto.ToSharedExpenseResponse(expense))
}

func (h *settlementHandler) getSharedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sharedExpenseID := c.Param("id")

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("shared_expense_id", sharedExpenseID))

	expense, err := h.settlementService.GetSharedExpenseByID(c.Request.Context(), sharedExpenseID, ownerID)
	if err != nil {
		respondSettlementError(c, logger, err, "retrieve shared expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToSharedExpenseResponse(expense))
}

func (h *settlementHandler) updateSharedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sharedExpenseID := c.Param("id")

	var req dto.UpdateSharedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSharedExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("shared_expense_id", sharedExpenseID), slog.String("owner_id", ownerID))
	logger.Info("Received request to update shared expense")

	expense, err := h.settlementService.UpdateSharedExpense(c.Request.Context(), sharedExpenseID, req, ownerID)
	if err != nil {
		respondSettlementError(c, logger, err, "update shared expense")
		return
	}

	logger.Info("Shared expense updated successfully")
	c.JSON(http.StatusOK, dto.ToSharedExpenseResponse(expense))
}

func (h *settlementHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	counterpartyID := c.Query("counterpartyID")
	if counterpartyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counterpartyID query parameter is required"})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("owner_id", ownerID), slog.String("counterparty_id", counterpartyID))

	balances, err := h.settlementService.BalancesByCurrency(c.Request.Context(), ownerID, counterpartyID)
	if err != nil {
		respondSettlementError(c, logger, err, "compute settlement balance")
		return
	}

	c.JSON(http.StatusOK, dto.PairBalanceResponse{
		CounterpartyID: counterpartyID,
		Balances:       balances,
	})
}

func (h *settlementHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sharedExpenseID := c.Param("id")

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("shared_expense_id", sharedExpenseID), slog.String("owner_id", ownerID))
	logger.Info("Received request to settle shared expense")

	expense, err := h.settlementService.Settle(c.Request.Context(), sharedExpenseID, ownerID)
	if err != nil {
		respondSettlementError(c, logger, err, "settle shared expense")
		return
	}

	logger.Info("Shared expense settled successfully")
	c.JSON(http.StatusOK, dto.ToSharedExpenseResponse(expense))
}

func (h *settlementHandler) listSharedExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSharedExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListSharedExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.settlementService.ListSharedExpenses(c.Request.Context(), ownerID, params)
	if err != nil {
		respondSettlementError(c, logger, err, "list shared expenses")
		return
	}

	c.JSON(http.StatusOK, resp)
}
