package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/server/http/dto"
)

// OrderHandler manages buyer-side order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	buyerID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), buyerID, model.OrderSpec{
		ResourceID:       req.ResourceID,
		ServiceType:      req.ServiceType,
		DurationUnits:    req.DurationUnits,
		UnitPrice:        req.UnitPrice,
		DeploymentTarget: req.DeploymentTarget,
		ServiceParams:    req.ServiceParams,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	buyerID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), buyerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id. Buyers may only inspect their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	buyerID := CurrentUserID(c)
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if order.BuyerID != buyerID {
		c.Status(http.StatusForbidden)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	buyerID := CurrentUserID(c)
	order, err := h.facade.CancelOrder(c.Request.Context(), buyerID, c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                order.ID,
		ResourceID:        order.ResourceID,
		ServiceType:       order.ServiceType,
		DurationUnits:     order.DurationUnits,
		UnitPrice:         order.UnitPrice,
		TotalAmount:       order.TotalAmount,
		EscrowedAmount:    order.EscrowedAmount,
		Status:            string(order.Status),
		ExternalReference: order.ExternalReference,
		CreatedAt:         order.CreatedAt,
	}
}
