package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/services"
)

// PricingHandler handles price viewing and editing HTTP requests.
type PricingHandler struct {
	pricingService *services.PricingService
	bulkService    *services.BulkService
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(pricingService *services.PricingService, bulkService *services.BulkService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		bulkService:    bulkService,
	}
}

// ListPrices resolves a product and returns one page of its prices.
// GET /api/v1/products/:id/prices
func (h *PricingHandler) ListPrices(c *gin.Context) {
	productID := c.Param("id")
	cursor := c.Query("cursor")

	listing, err := h.pricingService.ResolveAndListPrices(c.Request.Context(), productID, cursor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ListPricePoints returns the allowed price points for one territory.
// GET /api/v1/products/:id/price-points?territory=USA
func (h *PricingHandler) ListPricePoints(c *gin.Context) {
	productID := c.Param("id")
	territory := c.Query("territory")
	if territory == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "territory is required"})
		return
	}

	points, err := h.pricingService.ListPricePoints(c.Request.Context(), productID, territory)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"territory":   territory,
		"pricePoints": points,
	})
}

// UpdatePriceRequest is the body for a single price change.
type UpdatePriceRequest struct {
	Territory            string `json:"territory" binding:"required"`
	PricePointID         string `json:"pricePointId" binding:"required"`
	PreserveCurrentPrice bool   `json:"preserveCurrentPrice"`
}

// UpdatePrice schedules a price change for one territory.
// POST /api/v1/products/:id/price
func (h *PricingHandler) UpdatePrice(c *gin.Context) {
	productID := c.Param("id")

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.pricingService.UpdatePrice(c.Request.Context(), productID, req.Territory, req.PricePointID, req.PreserveCurrentPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "scheduled"})
}

// BulkEditRequest is the body for a bulk price edit. Text holds one
// "territory, price" pair per line.
type BulkEditRequest struct {
	Text                 string `json:"text" binding:"required"`
	PreserveCurrentPrice bool   `json:"preserveCurrentPrice"`
}

// BulkEdit runs a bulk price reconciliation.
// POST /api/v1/products/:id/prices/bulk
func (h *PricingHandler) BulkEdit(c *gin.Context) {
	productID := c.Param("id")

	var req BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.bulkService.Run(c.Request.Context(), productID, req.Text, req.PreserveCurrentPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	if errors.Is(err, services.ErrResourceNotFound) || errors.Is(err, services.ErrNoPricePoints) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var upstreamErr *clients.UpstreamError
	if errors.As(err, &upstreamErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":          "app store api request failed",
			"upstreamStatus": upstreamErr.StatusCode,
			"upstreamBody":   upstreamErr.Body,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
