package api

import (
	"net/http"

	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the orders REST surface
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new orders handler
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// SetupRoutes sets up the orders routes
func (h *OrderHandler) SetupRoutes(router *gin.Engine) {
	setupCommon(router)

	g := router.Group("/orders")
	{
		g.POST("/create", h.createOrder)
		g.GET("/:orderId", h.getOrderStatus)
	}
}

// createOrder handles order creation
func (h *OrderHandler) createOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	stored := h.orders.CreateOrder(c.Request.Context(), order)
	c.String(http.StatusOK, "Order created and sent to fulfillment: %d", stored.ID)
}

// getOrderStatus handles get order status by ID
func (h *OrderHandler) getOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	order, found := h.orders.GetOrderDetails(c.Request.Context(), orderID)
	if !found {
		c.String(http.StatusNotFound, "Order not found")
		return
	}

	c.String(http.StatusOK, "Order Status: %s", order.Status)
}
