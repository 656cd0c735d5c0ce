package catalog

import (
	"strings"

	"github.com/mystore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item owned by one caller.
// Its price links are reconciled as a child collection whenever the
// product is created or updated.
type Product struct {
	shared.OwnedAggregateRoot
	Name        string `gorm:"not null"`
	Stock       decimal.Decimal
	Cost        *decimal.Decimal
	Description string
}

// TableName overrides the GORM table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product for the given owner
func NewProduct(ownerID uuid.UUID, name string, stock decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if stock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Stock:              stock,
	}, nil
}

// SetCost sets the unit cost
func (p *Product) SetCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	p.Cost = &cost
	p.Touch()
	return nil
}

// SetDescription sets the product description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.Touch()
}

// ProductUpdate carries the mutable product fields for a partial update.
// Nil pointers leave the stored value untouched.
type ProductUpdate struct {
	Name        *string
	Stock       *decimal.Decimal
	Cost        *decimal.Decimal
	Description *string
}

// FullProduct is a product together with its enriched price links
type FullProduct struct {
	Product    Product
	PriceLinks []FullPriceProduct
}
