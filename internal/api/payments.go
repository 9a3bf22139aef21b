package api

import (
	"net/http"

	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes the payments REST surface
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler creates a new payments handler
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// SetupRoutes sets up the payments routes
func (h *PaymentHandler) SetupRoutes(router *gin.Engine) {
	setupCommon(router)

	g := router.Group("/api/payments")
	{
		g.POST("", h.createPayment)
		g.GET("/:paymentId", h.getPayment)
		g.PUT("/:paymentId", h.updatePaymentStatus)
		g.DELETE("/:paymentId", h.deletePayment)
	}
}

// createPayment handles payment creation
func (h *PaymentHandler) createPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created := h.payments.CreatePayment(c.Request.Context(), payment)
	c.JSON(http.StatusCreated, created)
}

// getPayment handles get payment by ID
func (h *PaymentHandler) getPayment(c *gin.Context) {
	paymentID, ok := parseID(c, "paymentId")
	if !ok {
		return
	}

	payment, found := h.payments.GetPaymentByID(c.Request.Context(), paymentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// updatePaymentStatus overwrites the payment status from the query string
func (h *PaymentHandler) updatePaymentStatus(c *gin.Context) {
	paymentID, ok := parseID(c, "paymentId")
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}

	payment, found := h.payments.UpdatePaymentStatus(c.Request.Context(), paymentID, status)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// deletePayment handles payment deletion
func (h *PaymentHandler) deletePayment(c *gin.Context) {
	paymentID, ok := parseID(c, "paymentId")
	if !ok {
		return
	}

	if !h.payments.DeletePayment(c.Request.Context(), paymentID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
