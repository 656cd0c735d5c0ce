package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/mystore/backend/internal/application/catalog"
)

// PriceHandler handles price list HTTP requests
type PriceHandler struct {
	BaseHandler
	priceService *catalogapp.PriceService
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(priceService *catalogapp.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// RegisterRoutes registers price routes on the given group
func (h *PriceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prices := rg.Group("/prices")
	prices.POST("", h.Create)
	prices.GET("", h.List)
	prices.GET("/:id", h.GetByID)
	prices.PUT("/:id", h.Update)
	prices.DELETE("/:id", h.Delete)
}

// Create creates a named price list
func (h *PriceHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	price, err := h.priceService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, price)
}

// GetByID returns a single price list
func (h *PriceHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	priceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	price, err := h.priceService.GetByID(c.Request.Context(), ownerID, priceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, price)
}

// List returns all of the owner's price lists
func (h *PriceHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	prices, err := h.priceService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prices)
}

// Update renames a price list
func (h *PriceHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	priceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	var req catalogapp.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	price, err := h.priceService.Update(c.Request.Context(), ownerID, priceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, price)
}

// Delete removes a price list and its product links
func (h *PriceHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	priceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	if err := h.priceService.Delete(c.Request.Context(), ownerID, priceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
