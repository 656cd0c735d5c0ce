package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/mystore/backend/internal/application/sales"
)

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// RegisterRoutes registers sale routes on the given group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.POST("", h.Create)
	sales.GET("", h.List)
	sales.GET("/:id", h.GetByID)
	sales.PUT("/:id", h.Update)
	sales.POST("/:id/state", h.SetState)
	sales.DELETE("/:id", h.Destroy)
}

// Create creates a draft sale with its line items
func (h *SaleHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID returns a sale with its line items
func (h *SaleHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), ownerID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns the owner's sales, optionally filtered by date, bill number or state
func (h *SaleHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	sales, err := h.saleService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, len(sales), filter.Limit)
}

// Update updates a draft sale's fields and reconciles its line items
func (h *SaleHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req salesapp.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), ownerID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// SetState applies a lifecycle event to a sale
func (h *SaleHandler) SetState(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req salesapp.SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.SetState(c.Request.Context(), ownerID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Destroy deletes a draft sale and its line items
func (h *SaleHandler) Destroy(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.Destroy(c.Request.Context(), ownerID, saleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
