package catalog

import (
	"strings"

	"github.com/mystore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price is a named price tier (e.g. "Retail", "Wholesale") owned by one caller
type Price struct {
	shared.OwnedAggregateRoot
	Name string `gorm:"not null"`
}

// TableName overrides the GORM table name
func (Price) TableName() string {
	return "prices"
}

// NewPrice creates a new price tier for the given owner
func NewPrice(ownerID uuid.UUID, name string) (*Price, error) {
	name = strings.TrimSpace(name)
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Price name cannot be empty")
	}

	return &Price{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
	}, nil
}

// Rename changes the tier name
func (p *Price) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Price name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

// PriceProduct links a product to a price tier with the amount the product
// costs under that tier. Unique on (price_id, product_id); created, updated
// and deleted only through reconciliation, scoped to one product at a time.
type PriceProduct struct {
	shared.BaseEntity
	PriceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_price_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_price_product"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    *decimal.Decimal
}

// TableName overrides the GORM table name
func (PriceProduct) TableName() string {
	return "prices_products"
}

// NewPriceProduct creates a link row. Owner and product ids are force-set
// by the reconciler from context, so only the tier and amount come from
// client input.
func NewPriceProduct(priceID uuid.UUID, amount *decimal.Decimal) (*PriceProduct, error) {
	if priceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price ID cannot be empty")
	}
	if amount != nil && amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	return &PriceProduct{
		BaseEntity: shared.NewBaseEntity(),
		PriceID:    priceID,
		Amount:     amount,
	}, nil
}

// FullPriceProduct is a link row enriched with its price tier
type FullPriceProduct struct {
	PriceProduct PriceProduct
	Price        Price
}

// PriceLinkChange is one reconciliation record for a product's price links
type PriceLinkChange = shared.Change[PriceProduct]
