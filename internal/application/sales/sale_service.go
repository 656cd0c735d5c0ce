package sales

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mystore/backend/internal/domain/sales"
	"github.com/mystore/backend/internal/domain/shared"
)

// SaleService handles the sale lifecycle. Writes that touch line items are
// delegated to the repository, which runs the sale write and the item
// reconciliation in one transaction.
type SaleService struct {
	saleRepo sales.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Create creates a sale in Draft together with its line items
func (s *SaleService) Create(ctx context.Context, ownerID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := sales.NewSale(ownerID, req.SaleDate, req.Total, req.BillNumber)
	if err != nil {
		return nil, err
	}

	items := make([]sales.SaleLineItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if itemReq.Delete {
			return nil, shared.NewDomainError("INVALID_LINE_ITEM", "A new sale cannot delete line items")
		}
		item, err := sales.NewSaleLineItem(itemReq.ProductID, itemReq.Amount, itemReq.Discount, itemReq.Tax, itemReq.Price, itemReq.Total)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	full, err := s.saleRepo.CreateWithItems(ctx, sale, items)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(full)
	return &response, nil
}

// Update applies field changes and reconciles line items while the sale is
// still in Draft
func (s *SaleService) Update(ctx context.Context, ownerID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	if req.SaleDate != nil && req.SaleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SALE_DATE", "Sale date cannot be empty")
	}
	if req.Total != nil && req.Total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Sale total cannot be negative")
	}

	changes, err := toLineItemChanges(req.Items)
	if err != nil {
		return nil, err
	}

	update := sales.SaleUpdate{
		SaleDate:   req.SaleDate,
		Total:      req.Total,
		BillNumber: req.BillNumber,
	}

	full, err := s.saleRepo.UpdateDraft(ctx, ownerID, saleID, update, changes)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(full)
	return &response, nil
}

// setStateAttempts bounds how often a lost compare-and-set is replayed
const setStateAttempts = 3

// SetState applies a lifecycle event to a sale. Illegal events surface as
// IllegalTransitionError and leave the sale unchanged. The transition is
// written compare-and-set against the state that was read; losing a race
// re-reads the sale and re-validates the event against its new state.
func (s *SaleService) SetState(ctx context.Context, ownerID, saleID uuid.UUID, req SetStateRequest) (*SaleResponse, error) {
	event := sales.SaleEvent(strings.ToUpper(strings.TrimSpace(req.Event)))
	if !event.IsValid() {
		return nil, shared.NewDomainError("INVALID_EVENT", "Unknown lifecycle event")
	}

	for attempt := 0; attempt < setStateAttempts; attempt++ {
		full, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID)
		if err != nil {
			return nil, err
		}

		from := full.Sale.State
		if err := full.Sale.Apply(event); err != nil {
			return nil, err
		}

		err = s.saleRepo.UpdateState(ctx, ownerID, saleID, from, full.Sale.State)
		if err == nil {
			response := ToSaleResponse(full)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrStateConflict) {
			return nil, err
		}
	}
	return nil, shared.ErrStateConflict
}

// Destroy deletes a sale while it is still in Draft
func (s *SaleService) Destroy(ctx context.Context, ownerID, saleID uuid.UUID) error {
	full, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID)
	if err != nil {
		return err
	}
	if !full.Sale.IsDraft() {
		return shared.ErrMutationForbidden
	}

	deleted, err := s.saleRepo.DeleteDraft(ctx, ownerID, saleID)
	if err != nil {
		return err
	}
	if !deleted {
		// The sale left Draft between the load and the guarded delete
		return shared.ErrMutationForbidden
	}
	return nil
}

// GetByID retrieves a sale with its line items
func (s *SaleService) GetByID(ctx context.Context, ownerID, saleID uuid.UUID) (*SaleResponse, error) {
	full, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(full)
	return &response, nil
}

// List retrieves the owner's sales, optionally filtered by date, bill
// number and state
func (s *SaleService) List(ctx context.Context, ownerID uuid.UUID, filter SaleListFilter) ([]SaleResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Limit > 0 {
		domainFilter.Limit = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.SaleDate != nil {
		domainFilter = domainFilter.WithFilter("sale_date", *filter.SaleDate)
	}
	if filter.BillNumber != nil {
		domainFilter = domainFilter.WithFilter("bill_number", *filter.BillNumber)
	}
	if filter.State != nil {
		state := sales.SaleState(strings.ToUpper(strings.TrimSpace(*filter.State)))
		if !state.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATE", "Unknown sale state")
		}
		domainFilter = domainFilter.WithFilter("state", state)
	}

	fullSales, err := s.saleRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, 0, len(fullSales))
	for i := range fullSales {
		responses = append(responses, ToSaleResponse(&fullSales[i]))
	}
	return responses, nil
}
