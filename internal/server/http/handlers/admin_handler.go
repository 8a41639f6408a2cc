package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/server/http/dto"
)

// AdminHandler serves operator endpoints. The engine checks operator
// identity on every call, so a non-operator caller gets 403 regardless
// of how it reached the route.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Initialize handles POST /api/admin/initialize.
func (h *AdminHandler) Initialize(c *gin.Context) {
	callerID := CurrentUserID(c)
	if err := h.facade.Initialize(c.Request.Context(), callerID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Settings handles POST /api/admin/settings.
func (h *AdminHandler) Settings(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	if req.RegistryAddress != "" {
		if err := h.facade.SetRegistryAddress(ctx, callerID, req.RegistryAddress); err != nil {
			abortWithDomainError(c, err)
			return
		}
	}
	if req.LedgerAddress != "" {
		if err := h.facade.SetLedgerAddress(ctx, callerID, req.LedgerAddress); err != nil {
			abortWithDomainError(c, err)
			return
		}
	}
	if req.TreasuryAddress != "" {
		if err := h.facade.SetTreasuryAddress(ctx, callerID, req.TreasuryAddress); err != nil {
			abortWithDomainError(c, err)
			return
		}
	}

	c.Status(http.StatusOK)
}

// UpdateOrderStatus handles POST /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateOrderStatus(c.Request.Context(), callerID, c.Param("id"), model.OrderStatus(req.Status), req.Reference)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// CompleteOrder handles POST /api/admin/orders/:id/complete.
func (h *AdminHandler) CompleteOrder(c *gin.Context) {
	callerID := CurrentUserID(c)
	order, err := h.facade.CompleteOrder(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// RefundOrder handles POST /api/admin/orders/:id/refund.
func (h *AdminHandler) RefundOrder(c *gin.Context) {
	callerID := CurrentUserID(c)
	order, err := h.facade.RefundOrder(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	orderCount, err := h.facade.OrderCount(ctx)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	escrowed, err := h.facade.TotalEscrowed(ctx)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	resourceCount, err := h.facade.ResourceCount(ctx)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		OrderCount:    orderCount,
		TotalEscrowed: escrowed,
		ResourceCount: resourceCount,
	})
}

// ResourceOrders handles GET /api/admin/resources/:id/orders.
func (h *AdminHandler) ResourceOrders(c *gin.Context) {
	ids, err := h.facade.OrderIDsByResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(ids) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// AddResource handles POST /api/admin/resources.
func (h *AdminHandler) AddResource(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	res, err := h.facade.AddResource(c.Request.Context(), callerID, model.Resource{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		Uptime:      req.Uptime,
		Reliability: req.Reliability,
		Cost:        req.Cost,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResourceResponse(*res))
}

// UpdateResource handles PUT /api/admin/resources/:id.
func (h *AdminHandler) UpdateResource(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateResource(c.Request.Context(), callerID, model.Resource{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Uptime:      req.Uptime,
		Reliability: req.Reliability,
		Cost:        req.Cost,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveResource handles DELETE /api/admin/resources/:id.
func (h *AdminHandler) RemoveResource(c *gin.Context) {
	callerID := CurrentUserID(c)
	if err := h.facade.RemoveResource(c.Request.Context(), callerID, c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// SetResourceActive handles PATCH /api/admin/resources/:id/active.
func (h *AdminHandler) SetResourceActive(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetResourceActive(c.Request.Context(), callerID, c.Param("id"), req.Active); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Treasury handles GET /api/admin/treasury.
func (h *AdminHandler) Treasury(c *gin.Context) {
	callerID := CurrentUserID(c)
	treasury, err := h.facade.Treasury(c.Request.Context(), callerID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TreasuryResponse{
		Balance:        treasury.Balance,
		TotalReceived:  treasury.TotalReceived,
		TotalWithdrawn: treasury.TotalWithdrawn,
	})
}

// TreasuryWithdraw handles POST /api/admin/treasury/withdraw.
func (h *AdminHandler) TreasuryWithdraw(c *gin.Context) {
	callerID := CurrentUserID(c)
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.TreasuryWithdraw(c.Request.Context(), callerID, req.Amount); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// PurgeReviews handles DELETE /api/admin/resources/:id/reviews.
func (h *AdminHandler) PurgeReviews(c *gin.Context) {
	callerID := CurrentUserID(c)
	if err := h.facade.PurgeReviews(c.Request.Context(), callerID, c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
