package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/mystore/backend/internal/infrastructure/logger"
	"github.com/mystore/backend/internal/infrastructure/persistence/owner"
	"github.com/mystore/backend/internal/infrastructure/persistence/reconcile"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM.
// Product writes and price-link reconciliation always share one transaction.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// priceLinkEngine builds the reconciler for one product's price links.
// Deletes are scoped to the owner and product so forged link ids are no-ops,
// and every kept row gets its product and owner ids forced from the call.
func (r *GormProductRepository) priceLinkEngine(ownerID, productID uuid.UUID) *reconcile.Engine[catalog.PriceProduct, catalog.FullPriceProduct] {
	return &reconcile.Engine[catalog.PriceProduct, catalog.FullPriceProduct]{
		Conflict: []clause.Column{{Name: "price_id"}, {Name: "product_id"}},
		Updates:  []string{"amount", "updated_at"},
		Scope: func(tx *gorm.DB) *gorm.DB {
			return tx.Scopes(owner.Scope(ownerID)).Where("product_id = ?", productID)
		},
		Prepare: func(link *catalog.PriceProduct) {
			link.ProductID = productID
			link.OwnerID = ownerID
			if link.ID == uuid.Nil {
				link.BaseEntity = shared.NewBaseEntity()
			}
		},
		Resolve: func(tx *gorm.DB, link *catalog.PriceProduct) (*catalog.FullPriceProduct, error) {
			var price catalog.Price
			if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", link.PriceID).First(&price).Error; err != nil {
				return nil, err
			}
			return &catalog.FullPriceProduct{PriceProduct: *link, Price: price}, nil
		},
	}
}

// CreateWithLinks inserts the product and reconciles its price links atomically
func (r *GormProductRepository) CreateWithLinks(ctx context.Context, product *catalog.Product, changes []catalog.PriceLinkChange) (*catalog.FullProduct, error) {
	var full *catalog.FullProduct
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return mapWriteError(err)
		}

		engine := r.priceLinkEngine(product.OwnerID, product.ID)
		if _, err := engine.Apply(tx, changes); err != nil {
			return err
		}

		links, err := r.loadPriceLinks(tx, product.OwnerID, product.ID)
		if err != nil {
			return err
		}
		full = &catalog.FullProduct{Product: *product, PriceLinks: links}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

// UpdateWithLinks applies field changes and reconciles price links atomically
func (r *GormProductRepository) UpdateWithLinks(ctx context.Context, ownerID, productID uuid.UUID, update catalog.ProductUpdate, changes []catalog.PriceLinkChange) (*catalog.FullProduct, error) {
	var full *catalog.FullProduct
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product catalog.Product
		if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", productID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Stock != nil {
			updates["stock"] = *update.Stock
		}
		if update.Cost != nil {
			updates["cost"] = *update.Cost
		}
		if update.Description != nil {
			updates["description"] = *update.Description
		}

		if err := tx.Model(&catalog.Product{}).
			Scopes(owner.Scope(ownerID)).
			Where("id = ?", productID).
			Updates(updates).Error; err != nil {
			return mapWriteError(err)
		}

		engine := r.priceLinkEngine(ownerID, productID)
		if _, err := engine.Apply(tx, changes); err != nil {
			return err
		}

		if err := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", productID).First(&product).Error; err != nil {
			return err
		}
		links, err := r.loadPriceLinks(tx, ownerID, productID)
		if err != nil {
			return err
		}
		full = &catalog.FullProduct{Product: product, PriceLinks: links}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

// ReconcileLinks applies a change batch against one product's price links and
// returns the product's full link set afterwards
func (r *GormProductRepository) ReconcileLinks(ctx context.Context, ownerID, productID uuid.UUID, changes []catalog.PriceLinkChange) ([]catalog.FullPriceProduct, error) {
	var links []catalog.FullPriceProduct
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalog.Product{}).
			Scopes(owner.Scope(ownerID)).
			Where("id = ?", productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		engine := r.priceLinkEngine(ownerID, productID)
		if _, err := engine.Apply(tx, changes); err != nil {
			return err
		}

		var err error
		links, err = r.loadPriceLinks(tx, ownerID, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// FindByIDForOwner loads a product with its enriched price links
func (r *GormProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.FullProduct, error) {
	db := r.db.WithContext(ctx)

	var product catalog.Product
	if err := db.Scopes(owner.Scope(ownerID)).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	links, err := r.loadPriceLinks(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &catalog.FullProduct{Product: product, PriceLinks: links}, nil
}

// FindAllForOwner lists an owner's products with their price links.
// Search matches name and description case-insensitively.
func (r *GormProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, search string, filter shared.Filter) ([]catalog.FullProduct, error) {
	db := r.db.WithContext(ctx)

	query := db.Model(&catalog.Product{}).Scopes(owner.Scope(ownerID))
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	query = query.Order(ValidateOrderBy(filter.OrderBy, ProductSortFields, "created_at"))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []catalog.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	linksByProduct, err := r.loadPriceLinksBatch(db, ownerID, productIDs(products))
	if err != nil {
		return nil, err
	}

	results := make([]catalog.FullProduct, 0, len(products))
	for _, product := range products {
		results = append(results, catalog.FullProduct{
			Product:    product,
			PriceLinks: linksByProduct[product.ID],
		})
	}
	return results, nil
}

// DeleteForOwner removes a product and its price links
func (r *GormProductRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(owner.Scope(ownerID)).Where("product_id = ?", id).
			Delete(&catalog.PriceProduct{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", id).Delete(&catalog.Product{})
		if result.Error != nil {
			return mapWriteError(result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// loadPriceLinks loads one product's links enriched with their price tiers
func (r *GormProductRepository) loadPriceLinks(db *gorm.DB, ownerID, productID uuid.UUID) ([]catalog.FullPriceProduct, error) {
	byProduct, err := r.loadPriceLinksBatch(db, ownerID, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	links := byProduct[productID]
	if links == nil {
		links = []catalog.FullPriceProduct{}
	}
	return links, nil
}

// loadPriceLinksBatch loads enriched links for many products in two queries
func (r *GormProductRepository) loadPriceLinksBatch(db *gorm.DB, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID][]catalog.FullPriceProduct, error) {
	results := make(map[uuid.UUID][]catalog.FullPriceProduct, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	var links []catalog.PriceProduct
	if err := db.Scopes(owner.Scope(ownerID)).
		Where("product_id IN ?", ids).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return results, nil
	}

	priceIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		priceIDs = append(priceIDs, link.PriceID)
	}

	var prices []catalog.Price
	if err := db.Scopes(owner.Scope(ownerID)).Where("id IN ?", priceIDs).Find(&prices).Error; err != nil {
		return nil, err
	}
	pricesByID := make(map[uuid.UUID]catalog.Price, len(prices))
	for _, price := range prices {
		pricesByID[price.ID] = price
	}

	for _, link := range links {
		price, ok := pricesByID[link.PriceID]
		if !ok {
			// Link outlived its price tier; skip rather than fail reads,
			// but leave a trace since the FK should make this impossible
			logger.FromContext(db.Statement.Context).Warn("price link references a missing price",
				zap.String("product_id", link.ProductID.String()),
				zap.String("price_id", link.PriceID.String()))
			continue
		}
		results[link.ProductID] = append(results[link.ProductID], catalog.FullPriceProduct{
			PriceProduct: link,
			Price:        price,
		})
	}
	return results, nil
}

func productIDs(products []catalog.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

// mapWriteError translates constraint failures into domain errors
func mapWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrConstraintViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrConstraintViolation
	default:
		return err
	}
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
