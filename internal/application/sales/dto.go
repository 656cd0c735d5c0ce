package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mystore/backend/internal/domain/sales"
	"github.com/mystore/backend/internal/domain/shared"
)

// LineItemRequest is one client-supplied change record for a sale's line
// items. Delete removes the existing line named by ID; otherwise the
// record keeps (inserts or updates) the line for ProductID.
type LineItemRequest struct {
	ID        *uuid.UUID      `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Delete    bool            `json:"delete"`
}

// CreateSaleRequest contains the input for sale creation
type CreateSaleRequest struct {
	SaleDate   time.Time         `json:"sale_date" binding:"required" time_format:"2006-01-02"`
	Total      decimal.Decimal   `json:"total"`
	BillNumber *string           `json:"bill_number"`
	Items      []LineItemRequest `json:"items"`
}

// UpdateSaleRequest contains the input for a partial draft update.
// Nil fields leave the stored value untouched.
type UpdateSaleRequest struct {
	SaleDate   *time.Time        `json:"sale_date" time_format:"2006-01-02"`
	Total      *decimal.Decimal  `json:"total"`
	BillNumber *string           `json:"bill_number"`
	Items      []LineItemRequest `json:"items"`
}

// SetStateRequest names the lifecycle event to apply
type SetStateRequest struct {
	Event string `json:"event" binding:"required"`
}

// SaleListFilter contains listing options for sales
type SaleListFilter struct {
	SaleDate   *time.Time `form:"sale_date" time_format:"2006-01-02"`
	BillNumber *string    `form:"bill_number"`
	State      *string    `form:"state"`
	Limit      int        `form:"limit"`
	OrderBy    string     `form:"order_by"`
}

// LineItemResponse is one enriched line item of a sale
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Amount      decimal.Decimal `json:"amount"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse is a sale with its enriched line items
type SaleResponse struct {
	ID         uuid.UUID          `json:"id"`
	SaleDate   time.Time          `json:"sale_date"`
	Total      decimal.Decimal    `json:"total"`
	BillNumber *string            `json:"bill_number"`
	State      string             `json:"state"`
	Items      []LineItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ToSaleResponse converts an enriched sale to its response form
func ToSaleResponse(full *sales.FullSale) SaleResponse {
	items := make([]LineItemResponse, 0, len(full.Items))
	for _, item := range full.Items {
		items = append(items, LineItemResponse{
			ID:          item.LineItem.ID,
			ProductID:   item.LineItem.ProductID,
			ProductName: item.Product.Name,
			Amount:      item.LineItem.Amount,
			Discount:    item.LineItem.Discount,
			Tax:         item.LineItem.Tax,
			Price:       item.LineItem.Price,
			Total:       item.LineItem.Total,
		})
	}

	return SaleResponse{
		ID:         full.Sale.ID,
		SaleDate:   full.Sale.SaleDate,
		Total:      full.Sale.Total,
		BillNumber: full.Sale.BillNumber,
		State:      full.Sale.State.String(),
		Items:      items,
		CreatedAt:  full.Sale.CreatedAt,
		UpdatedAt:  full.Sale.UpdatedAt,
	}
}

// toLineItemChanges converts client line requests into reconciliation
// change records. A delete without a line id is rejected.
func toLineItemChanges(requests []LineItemRequest) ([]sales.LineItemChange, error) {
	changes := make([]sales.LineItemChange, 0, len(requests))
	for _, req := range requests {
		if req.Delete {
			if req.ID == nil || *req.ID == uuid.Nil {
				return nil, shared.NewDomainError("INVALID_LINE_ITEM", "A line id is required to delete a line item")
			}
			changes = append(changes, shared.Remove[sales.SaleLineItem](*req.ID))
			continue
		}

		row, err := sales.NewSaleLineItem(req.ProductID, req.Amount, req.Discount, req.Tax, req.Price, req.Total)
		if err != nil {
			return nil, err
		}
		if req.ID != nil && *req.ID != uuid.Nil {
			changes = append(changes, shared.KeepExisting(*req.ID, *row))
		} else {
			changes = append(changes, shared.Keep(*row))
		}
	}
	return changes, nil
}
