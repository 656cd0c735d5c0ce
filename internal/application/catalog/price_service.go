package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
)

// PriceService handles price tier operations
type PriceService struct {
	priceRepo catalog.PriceRepository
}

// NewPriceService creates a new PriceService
func NewPriceService(priceRepo catalog.PriceRepository) *PriceService {
	return &PriceService{priceRepo: priceRepo}
}

// Create creates a new price tier
func (s *PriceService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePriceRequest) (*PriceResponse, error) {
	price, err := catalog.NewPrice(ownerID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}

	response := ToPriceResponse(price)
	return &response, nil
}

// GetByID retrieves a price tier
func (s *PriceService) GetByID(ctx context.Context, ownerID, priceID uuid.UUID) (*PriceResponse, error) {
	price, err := s.priceRepo.FindByIDForOwner(ctx, ownerID, priceID)
	if err != nil {
		return nil, err
	}

	response := ToPriceResponse(price)
	return &response, nil
}

// List retrieves all of the owner's price tiers
func (s *PriceService) List(ctx context.Context, ownerID uuid.UUID) ([]PriceResponse, error) {
	prices, err := s.priceRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]PriceResponse, 0, len(prices))
	for i := range prices {
		responses = append(responses, ToPriceResponse(&prices[i]))
	}
	return responses, nil
}

// Update renames a price tier
func (s *PriceService) Update(ctx context.Context, ownerID, priceID uuid.UUID, req UpdatePriceRequest) (*PriceResponse, error) {
	price, err := s.priceRepo.FindByIDForOwner(ctx, ownerID, priceID)
	if err != nil {
		return nil, err
	}

	if err := price.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.priceRepo.Update(ctx, price); err != nil {
		return nil, err
	}

	response := ToPriceResponse(price)
	return &response, nil
}

// Delete removes a price tier and every product link referencing it
func (s *PriceService) Delete(ctx context.Context, ownerID, priceID uuid.UUID) error {
	deleted, err := s.priceRepo.DeleteForOwner(ctx, ownerID, priceID)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrNotFound
	}
	return nil
}
