package api

import (
	"net/http"

	"fulfillment-pipeline/internal/models"
	"fulfillment-pipeline/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingHandler exposes the shipping REST surface
type ShippingHandler struct {
	shipping *service.ShippingService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(shipping *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shipping: shipping}
}

// SetupRoutes sets up the shipping routes
func (h *ShippingHandler) SetupRoutes(router *gin.Engine) {
	setupCommon(router)

	g := router.Group("/api/shipments")
	{
		g.POST("/create", h.createShipment)
		g.GET("/:shipmentId", h.getShipmentDetails)
		g.GET("/:shipmentId/status", h.getShipmentStatus)
		g.PUT("/:shipmentId/status", h.updateShipmentStatus)
		g.DELETE("/:shipmentId", h.deleteShipment)
	}
}

// createShipment handles shipment creation from a ShippingOrder request
func (h *ShippingHandler) createShipment(c *gin.Context) {
	var req models.ShippingOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	shipment := h.shipping.CreateShipment(c.Request.Context(), req.OrderID, req.ShippingMethod)
	c.JSON(http.StatusCreated, shipment)
}

// getShipmentDetails handles get shipment by ID
func (h *ShippingHandler) getShipmentDetails(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipmentId")
	if !ok {
		return
	}

	shipment, found := h.shipping.GetShipmentDetails(c.Request.Context(), shipmentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.JSON(http.StatusOK, shipment)
}

// getShipmentStatus returns only the status string
func (h *ShippingHandler) getShipmentStatus(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipmentId")
	if !ok {
		return
	}

	status, found := h.shipping.GetShipmentStatus(c.Request.Context(), shipmentID)
	if !found {
		c.String(http.StatusNotFound, "Shipment not found")
		return
	}

	c.String(http.StatusOK, status)
}

// updateShipmentStatus overwrites the shipment status from the query string
func (h *ShippingHandler) updateShipmentStatus(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipmentId")
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}

	shipment, found := h.shipping.UpdateShipmentStatus(c.Request.Context(), shipmentID, status)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.JSON(http.StatusOK, shipment)
}

// deleteShipment handles shipment deletion
func (h *ShippingHandler) deleteShipment(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipmentId")
	if !ok {
		return
	}

	if !h.shipping.DeleteShipment(c.Request.Context(), shipmentID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
