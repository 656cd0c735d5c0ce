package sales

import (
	"context"

	"github.com/mystore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence. Every method
// is owner-scoped; an id that exists under a different owner behaves
// exactly like an absent one. Methods touching line items run the sale
// write and the item reconciliation as a single transaction.
type SaleRepository interface {
	// CreateWithItems inserts the sale and its line items atomically,
	// returning the sale with items enriched by their products
	CreateWithItems(ctx context.Context, sale *Sale, items []SaleLineItem) (*FullSale, error)

	// UpdateDraft applies field changes and reconciles line items, both
	// guarded on state = Draft inside the same transaction. Returns
	// shared.ErrMutationForbidden when the guard loses a concurrent race.
	UpdateDraft(ctx context.Context, ownerID, saleID uuid.UUID, update SaleUpdate, changes []LineItemChange) (*FullSale, error)

	// FindByIDForOwner loads a sale with its enriched line items
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*FullSale, error)

	// FindAllForOwner lists an owner's sales with enriched line items
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]FullSale, error)

	// UpdateState persists a lifecycle state computed by the caller as a
	// compare-and-set against the state the caller read. Returns
	// shared.ErrStateConflict when the row's state no longer matches from,
	// so a stale caller can never persist a transition the table forbids.
	UpdateState(ctx context.Context, ownerID, saleID uuid.UUID, from, to SaleState) error

	// DeleteDraft deletes the sale and its line items only while in Draft.
	// Reports whether exactly one sale row was deleted; false is a soft
	// signal, not an error.
	DeleteDraft(ctx context.Context, ownerID, saleID uuid.UUID) (bool, error)
}
