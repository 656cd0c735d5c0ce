package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
)

// ProductService handles product operations. Price-link reconciliation is
// delegated to the repository, which runs it in the same transaction as
// the product write.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a product together with its initial price links
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(ownerID, req.Name, req.Stock)
	if err != nil {
		return nil, err
	}
	if req.Cost != nil {
		if err := product.SetCost(*req.Cost); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		product.SetDescription(req.Description)
	}

	changes, err := toPriceLinkChanges(req.Prices)
	if err != nil {
		return nil, err
	}

	full, err := s.productRepo.CreateWithLinks(ctx, product, changes)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(full)
	return &response, nil
}

// Update applies field changes and reconciles price links in one transaction
func (s *ProductService) Update(ctx context.Context, ownerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	update := catalog.ProductUpdate{
		Name:        req.Name,
		Stock:       req.Stock,
		Cost:        req.Cost,
		Description: req.Description,
	}
	if req.Name != nil && *req.Name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if req.Stock != nil && req.Stock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if req.Cost != nil && req.Cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	changes, err := toPriceLinkChanges(req.Prices)
	if err != nil {
		return nil, err
	}

	full, err := s.productRepo.UpdateWithLinks(ctx, ownerID, productID, update, changes)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(full)
	return &response, nil
}

// ReconcileLinks applies a change batch against one product's price links
// without touching the product's own fields
func (s *ProductService) ReconcileLinks(ctx context.Context, ownerID, productID uuid.UUID, requests []PriceLinkRequest) ([]PriceLinkResponse, error) {
	changes, err := toPriceLinkChanges(requests)
	if err != nil {
		return nil, err
	}

	links, err := s.productRepo.ReconcileLinks(ctx, ownerID, productID, changes)
	if err != nil {
		return nil, err
	}

	responses := make([]PriceLinkResponse, 0, len(links))
	for _, link := range links {
		responses = append(responses, ToPriceLinkResponse(link))
	}
	return responses, nil
}

// GetByID retrieves a product with its price links
func (s *ProductService) GetByID(ctx context.Context, ownerID, productID uuid.UUID) (*ProductResponse, error) {
	full, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(full)
	return &response, nil
}

// List retrieves the owner's products, optionally filtered by a name or
// description search
func (s *ProductService) List(ctx context.Context, ownerID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Limit > 0 {
		domainFilter.Limit = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}

	products, err := s.productRepo.FindAllForOwner(ctx, ownerID, filter.Search, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Delete removes a product and its price links
func (s *ProductService) Delete(ctx context.Context, ownerID, productID uuid.UUID) error {
	deleted, err := s.productRepo.DeleteForOwner(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrNotFound
	}
	return nil
}
