package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
)

// PriceLinkRequest is one client-supplied change record for a product's
// price links. Delete removes the existing link named by ID; otherwise the
// record keeps (inserts or updates) the amount for PriceID.
type PriceLinkRequest struct {
	ID      *uuid.UUID       `json:"id"`
	PriceID uuid.UUID        `json:"price_id"`
	Amount  *decimal.Decimal `json:"amount"`
	Delete  bool             `json:"delete"`
}

// CreateProductRequest contains the input for product creation
type CreateProductRequest struct {
	Name        string             `json:"name" binding:"required"`
	Stock       decimal.Decimal    `json:"stock"`
	Cost        *decimal.Decimal   `json:"cost"`
	Description string             `json:"description"`
	Prices      []PriceLinkRequest `json:"prices"`
}

// UpdateProductRequest contains the input for a partial product update.
// Nil fields leave the stored value untouched.
type UpdateProductRequest struct {
	Name        *string            `json:"name"`
	Stock       *decimal.Decimal   `json:"stock"`
	Cost        *decimal.Decimal   `json:"cost"`
	Description *string            `json:"description"`
	Prices      []PriceLinkRequest `json:"prices"`
}

// ProductListFilter contains listing options for products
type ProductListFilter struct {
	Search  string `form:"search"`
	Limit   int    `form:"limit"`
	OrderBy string `form:"order_by"`
}

// PriceLinkResponse is one enriched price link of a product
type PriceLinkResponse struct {
	ID        uuid.UUID        `json:"id"`
	PriceID   uuid.UUID        `json:"price_id"`
	PriceName string           `json:"price_name"`
	Amount    *decimal.Decimal `json:"amount"`
}

// ProductResponse is a product with its enriched price links
type ProductResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Stock       decimal.Decimal     `json:"stock"`
	Cost        *decimal.Decimal    `json:"cost"`
	Description string              `json:"description"`
	Prices      []PriceLinkResponse `json:"prices"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreatePriceRequest contains the input for price tier creation
type CreatePriceRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdatePriceRequest contains the input for renaming a price tier
type UpdatePriceRequest struct {
	Name string `json:"name" binding:"required"`
}

// PriceResponse is a price tier
type PriceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPriceResponse converts a domain price tier to its response form
func ToPriceResponse(price *catalog.Price) PriceResponse {
	return PriceResponse{
		ID:        price.ID,
		Name:      price.Name,
		CreatedAt: price.CreatedAt,
		UpdatedAt: price.UpdatedAt,
	}
}

// ToPriceLinkResponse converts an enriched link to its response form
func ToPriceLinkResponse(link catalog.FullPriceProduct) PriceLinkResponse {
	return PriceLinkResponse{
		ID:        link.PriceProduct.ID,
		PriceID:   link.PriceProduct.PriceID,
		PriceName: link.Price.Name,
		Amount:    link.PriceProduct.Amount,
	}
}

// ToProductResponse converts an enriched product to its response form
func ToProductResponse(full *catalog.FullProduct) ProductResponse {
	links := make([]PriceLinkResponse, 0, len(full.PriceLinks))
	for _, link := range full.PriceLinks {
		links = append(links, ToPriceLinkResponse(link))
	}

	return ProductResponse{
		ID:          full.Product.ID,
		Name:        full.Product.Name,
		Stock:       full.Product.Stock,
		Cost:        full.Product.Cost,
		Description: full.Product.Description,
		Prices:      links,
		CreatedAt:   full.Product.CreatedAt,
		UpdatedAt:   full.Product.UpdatedAt,
	}
}

// toPriceLinkChanges converts client link requests into reconciliation
// change records. A delete without a link id is rejected.
func toPriceLinkChanges(requests []PriceLinkRequest) ([]catalog.PriceLinkChange, error) {
	changes := make([]catalog.PriceLinkChange, 0, len(requests))
	for _, req := range requests {
		if req.Delete {
			if req.ID == nil || *req.ID == uuid.Nil {
				return nil, shared.NewDomainError("INVALID_LINK", "A link id is required to delete a price link")
			}
			changes = append(changes, shared.Remove[catalog.PriceProduct](*req.ID))
			continue
		}

		row, err := catalog.NewPriceProduct(req.PriceID, req.Amount)
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
