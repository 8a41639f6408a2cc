package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodefoundry/depinmarket/internal/server/http/dto"
)

// BalanceHandler manages balance-related endpoints.
type BalanceHandler struct {
	facade BalanceFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(facade BalanceFacade) *BalanceHandler {
	return &BalanceHandler{facade: facade}
}

// Summary handles GET /api/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	balance, err := h.facade.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Current: balance.Current})
}

// Deposit handles POST /api/balance/deposit.
func (h *BalanceHandler) Deposit(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.Deposit(c.Request.Context(), userID, req.Amount); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Withdraw handles POST /api/balance/withdraw.
func (h *BalanceHandler) Withdraw(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.Withdraw(c.Request.Context(), userID, req.Amount); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
