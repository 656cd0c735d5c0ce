package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/sales"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/mystore/backend/internal/infrastructure/logger"
	"github.com/mystore/backend/internal/infrastructure/persistence/owner"
	"github.com/mystore/backend/internal/infrastructure/persistence/reconcile"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sales.SaleRepository using GORM.
// Sale writes and line-item reconciliation always share one transaction,
// and every draft guard is re-checked inside that transaction so a
// concurrent approval cannot slip a mutation through.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// lineItemEngine builds the reconciler for one sale's line items. The sale
// is owner-checked before the engine runs, so deletes only need the sale
// scope. Kept rows resolve their product under the same owner; a product id
// from another owner fails the whole batch.
func (r *GormSaleRepository) lineItemEngine(ownerID, saleID uuid.UUID) *reconcile.Engine[sales.SaleLineItem, sales.FullLineItem] {
	return &reconcile.Engine[sales.SaleLineItem, sales.FullLineItem]{
		Conflict: []clause.Column{{Name: "sale_id"}, {Name: "product_id"}},
		Updates:  []string{"amount", "discount", "tax", "price", "total", "updated_at"},
		Scope: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("sale_id = ?", saleID)
		},
		Prepare: func(item *sales.SaleLineItem) {
			item.SaleID = saleID
			if item.ID == uuid.Nil {
				item.BaseEntity = shared.NewBaseEntity()
			}
		},
		Resolve: func(tx *gorm.DB, item *sales.SaleLineItem) (*sales.FullLineItem, error) {
			var product catalog.Product
			if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", item.ProductID).First(&product).Error; err != nil {
				return nil, err
			}
			return &sales.FullLineItem{LineItem: *item, Product: product}, nil
		},
	}
}

// CreateWithItems inserts the sale and its line items atomically
func (r *GormSaleRepository) CreateWithItems(ctx context.Context, sale *sales.Sale, items []sales.SaleLineItem) (*sales.FullSale, error) {
	var full *sales.FullSale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(sale).Error; err != nil {
			return mapWriteError(err)
		}

		changes := make([]sales.LineItemChange, 0, len(items))
		for _, item := range items {
			changes = append(changes, shared.Keep(item))
		}

		engine := r.lineItemEngine(sale.OwnerID, sale.ID)
		enriched, err := engine.Apply(tx, changes)
		if err != nil {
			return err
		}

		full = &sales.FullSale{Sale: *sale, Items: enriched}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

// UpdateDraft applies field changes and reconciles line items under a
// state = Draft guard held by the same transaction
func (r *GormSaleRepository) UpdateDraft(ctx context.Context, ownerID, saleID uuid.UUID, update sales.SaleUpdate, changes []sales.LineItemChange) (*sales.FullSale, error) {
	var full *sales.FullSale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale sales.Sale
		if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", saleID).First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if !sale.IsDraft() {
			return shared.ErrMutationForbidden
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if update.SaleDate != nil {
			updates["sale_date"] = *update.SaleDate
		}
		if update.Total != nil {
			updates["total"] = *update.Total
		}
		if update.BillNumber != nil {
			updates["bill_number"] = *update.BillNumber
		}

		// Guarded write; losing a race against a concurrent state change
		// affects zero rows and aborts the whole update
		result := tx.Model(&sales.Sale{}).
			Scopes(owner.Scope(ownerID)).
			Where("id = ? AND state = ?", saleID, sales.StateDraft).
			Updates(updates)
		if result.Error != nil {
			return mapWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrMutationForbidden
		}

		engine := r.lineItemEngine(ownerID, saleID)
		if _, err := engine.Apply(tx, changes); err != nil {
			return err
		}

		if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", saleID).First(&sale).Error; err != nil {
			return err
		}
		items, err := r.loadFullItems(tx, ownerID, saleID)
		if err != nil {
			return err
		}
		full = &sales.FullSale{Sale: sale, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

// FindByIDForOwner loads a sale with its enriched line items
func (r *GormSaleRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*sales.FullSale, error) {
	db := r.db.WithContext(ctx)

	var sale sales.Sale
	if err := db.Scopes(owner.Scope(ownerID)).Where("id = ?", id).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadFullItems(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &sales.FullSale{Sale: sale, Items: items}, nil
}

// FindAllForOwner lists an owner's sales with enriched line items.
// Filters supports sale_date, bill_number and state columns.
func (r *GormSaleRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]sales.FullSale, error) {
	db := r.db.WithContext(ctx)

	query := db.Model(&sales.Sale{}).Scopes(owner.Scope(ownerID))
	for key, value := range filter.Filters {
		switch key {
		case "sale_date":
			query = query.Where("sale_date = ?", value)
		case "bill_number":
			query = query.Where("bill_number = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		}
	}

	query = query.Order(ValidateOrderBy(filter.OrderBy, SaleSortFields, "created_at"))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var saleRows []sales.Sale
	if err := query.Find(&saleRows).Error; err != nil {
		return nil, err
	}

	results := make([]sales.FullSale, 0, len(saleRows))
	for _, sale := range saleRows {
		items, err := r.loadFullItems(db, ownerID, sale.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, sales.FullSale{Sale: sale, Items: items})
	}
	return results, nil
}

// UpdateState persists a lifecycle state via compare-and-set on the state
// the caller read. A write that matches zero rows either raced a concurrent
// transition (ErrStateConflict) or targets an absent sale (ErrNotFound).
func (r *GormSaleRepository) UpdateState(ctx context.Context, ownerID, saleID uuid.UUID, from, to sales.SaleState) error {
	result := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Scopes(owner.Scope(ownerID)).
		Where("id = ? AND state = ?", saleID, from).
		Updates(map[string]interface{}{
			"state":      to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&sales.Sale{}).
			Scopes(owner.Scope(ownerID)).
			Where("id = ?", saleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrStateConflict
	}
	return nil
}

// DeleteDraft deletes the sale and its line items only while in Draft
func (r *GormSaleRepository) DeleteDraft(ctx context.Context, ownerID, saleID uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(owner.Scope(ownerID)).
			Where("id = ? AND state = ?", saleID, sales.StateDraft).
			Delete(&sales.Sale{})
		if result.Error != nil {
			return mapWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Where("sale_id = ?", saleID).Delete(&sales.SaleLineItem{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// loadFullItems loads a sale's line items enriched with their products
func (r *GormSaleRepository) loadFullItems(db *gorm.DB, ownerID, saleID uuid.UUID) ([]sales.FullLineItem, error) {
	var items []sales.SaleLineItem
	if err := db.Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []sales.FullLineItem{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	var products []catalog.Product
	if err := db.Scopes(owner.Scope(ownerID)).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	results := make([]sales.FullLineItem, 0, len(items))
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			// Item outlived its product; skip rather than fail reads,
			// but leave a trace since the FK should make this impossible
			logger.FromContext(db.Statement.Context).Warn("sale line item references a missing product",
				zap.String("sale_id", saleID.String()),
				zap.String("product_id", item.ProductID.String()))
			continue
		}
		results = append(results, sales.FullLineItem{LineItem: item, Product: product})
	}
	return results, nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
