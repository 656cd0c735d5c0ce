package sales

import (
	"time"

	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale represents a sale bill aggregate root. A sale is created in Draft,
// moves through the lifecycle table in state.go, and is mutable (fields,
// line items, deletion) only while it remains in Draft.
type Sale struct {
	shared.OwnedAggregateRoot
	SaleDate   time.Time `gorm:"type:date;not null"`
	Total      decimal.Decimal
	BillNumber *string
	State      SaleState      `gorm:"not null"`
	Items      []SaleLineItem `gorm:"foreignKey:SaleID"`
}

// TableName overrides the GORM table name
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale for the given owner, always in Draft
func NewSale(ownerID uuid.UUID, saleDate time.Time, total decimal.Decimal, billNumber *string) (*Sale, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SALE_DATE", "Sale date cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Sale total cannot be negative")
	}

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SaleDate:           saleDate,
		Total:              total,
		BillNumber:         billNumber,
		State:              StateDraft,
		Items:              make([]SaleLineItem, 0),
	}, nil
}

// Apply transitions the sale through a lifecycle event.
// Returns IllegalTransitionError when the event is not legal in the
// current state; the sale is left unchanged in that case.
func (s *Sale) Apply(event SaleEvent) error {
	next, err := Next(s.State, event)
	if err != nil {
		return err
	}
	s.State = next
	s.Touch()
	return nil
}

// CanModify reports whether field updates, line-item reconciliation and
// deletion are still allowed
func (s *Sale) CanModify() bool {
	return s.State == StateDraft
}

// IsDraft reports whether the sale is still in Draft
func (s *Sale) IsDraft() bool {
	return s.State == StateDraft
}

// SaleLineItem is one line of a sale, referencing a product read-only.
// Line items belong to exactly one sale and are reconciled as a child
// collection; they are never deleted from outside a sale update.
type SaleLineItem struct {
	shared.BaseEntity
	SaleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product"`
	Amount    decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Price     decimal.Decimal
	Total     decimal.Decimal
}

// TableName overrides the GORM table name
func (SaleLineItem) TableName() string {
	return "sale_line_items"
}

// NewSaleLineItem creates a line item. The sale id is force-set by the
// repository from context, never taken from client input.
func NewSaleLineItem(productID uuid.UUID, amount, discount, tax, price, total decimal.Decimal) (*SaleLineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if discount.IsNegative() || tax.IsNegative() || price.IsNegative() || total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item figures cannot be negative")
	}

	return &SaleLineItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Amount:     amount,
		Discount:   discount,
		Tax:        tax,
		Price:      price,
		Total:      total,
	}, nil
}

// FullLineItem is a line item enriched with its product
type FullLineItem struct {
	LineItem SaleLineItem
	Product  catalog.Product
}

// FullSale is a sale together with its enriched line items
type FullSale struct {
	Sale  Sale
	Items []FullLineItem
}

// LineItemChange is one reconciliation record for a sale's line items
type LineItemChange = shared.Change[SaleLineItem]

// SaleUpdate carries the mutable sale fields for a partial update.
// Nil pointers leave the stored value untouched.
type SaleUpdate struct {
	SaleDate   *time.Time
	Total      *decimal.Decimal
	BillNumber *string
}
