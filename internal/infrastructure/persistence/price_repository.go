package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/mystore/backend/internal/infrastructure/persistence/owner"
	"gorm.io/gorm"
)

// GormPriceRepository implements catalog.PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// Create inserts a new price tier
func (r *GormPriceRepository) Create(ctx context.Context, price *catalog.Price) error {
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// FindByIDForOwner finds a price tier by ID within an owner's data
func (r *GormPriceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Price, error) {
	var price catalog.Price
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("id = ?", id).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindAllForOwner lists all of an owner's price tiers
func (r *GormPriceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]catalog.Price, error) {
	var prices []catalog.Price
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Order("created_at ASC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Update persists changes to a price tier, keyed by id and owner
func (r *GormPriceRepository) Update(ctx context.Context, price *catalog.Price) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Price{}).
		Scopes(owner.Scope(price.OwnerID)).
		Where("id = ?", price.ID).
		Updates(map[string]interface{}{
			"name":       price.Name,
			"updated_at": price.UpdatedAt,
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForOwner removes a price tier and any links that reference it
func (r *GormPriceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(owner.Scope(ownerID)).Where("price_id = ?", id).
			Delete(&catalog.PriceProduct{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(owner.Scope(ownerID)).Where("id = ?", id).Delete(&catalog.Price{})
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

// Ensure GormPriceRepository implements PriceRepository
var _ catalog.PriceRepository = (*GormPriceRepository)(nil)
