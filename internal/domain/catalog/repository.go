package catalog

import (
	"context"

	"github.com/mystore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// Mutating methods that touch price links run as one transaction; a link
// reconciliation failure rolls back the product write with it.
type ProductRepository interface {
	// CreateWithLinks inserts the product and reconciles its price links atomically
	CreateWithLinks(ctx context.Context, product *Product, changes []PriceLinkChange) (*FullProduct, error)

	// UpdateWithLinks applies field changes and reconciles price links atomically.
	// Returns shared.ErrNotFound when the product is absent or not owned.
	UpdateWithLinks(ctx context.Context, ownerID, productID uuid.UUID, update ProductUpdate, changes []PriceLinkChange) (*FullProduct, error)

	// ReconcileLinks applies a change batch against one product's price links
	ReconcileLinks(ctx context.Context, ownerID, productID uuid.UUID, changes []PriceLinkChange) ([]FullPriceProduct, error)

	// FindByIDForOwner loads a product with its enriched price links
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*FullProduct, error)

	// FindAllForOwner lists an owner's products with their price links
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, search string, filter shared.Filter) ([]FullProduct, error)

	// DeleteForOwner removes a product; reports whether a row was deleted
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// PriceRepository defines the interface for price tier persistence
type PriceRepository interface {
	Create(ctx context.Context, price *Price) error
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Price, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Price, error)
	Update(ctx context.Context, price *Price) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
