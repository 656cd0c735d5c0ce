package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mystore/backend/internal/domain/sales"
	"github.com/mystore/backend/internal/domain/shared"
)

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateWithItems(ctx context.Context, sale *sales.Sale, items []sales.SaleLineItem) (*sales.FullSale, error) {
	args := m.Called(ctx, sale, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.FullSale), args.Error(1)
}

func (m *MockSaleRepository) UpdateDraft(ctx context.Context, ownerID, saleID uuid.UUID, update sales.SaleUpdate, changes []sales.LineItemChange) (*sales.FullSale, error) {
	args := m.Called(ctx, ownerID, saleID, update, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.FullSale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*sales.FullSale, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.FullSale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]sales.FullSale, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.FullSale), args.Error(1)
}

func (m *MockSaleRepository) UpdateState(ctx context.Context, ownerID, saleID uuid.UUID, from, to sales.SaleState) error {
	args := m.Called(ctx, ownerID, saleID, from, to)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteDraft(ctx context.Context, ownerID, saleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, saleID)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ sales.SaleRepository = (*MockSaleRepository)(nil)

func newTestOwnerID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func testSaleDate() time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func createFullSale(t *testing.T, ownerID uuid.UUID) *sales.FullSale {
	t.Helper()
	sale, err := sales.NewSale(ownerID, testSaleDate(), decimal.NewFromInt(28), nil)
	require.NoError(t, err)
	return &sales.FullSale{Sale: *sale, Items: []sales.FullLineItem{}}
}

func TestSaleService_Create_Success(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()
	productID := uuid.New()

	full := createFullSale(t, ownerID)
	mockRepo.On("CreateWithItems", ctx, mock.AnythingOfType("*sales.Sale"), mock.MatchedBy(func(items []sales.SaleLineItem) bool {
		return len(items) == 1 && items[0].ProductID == productID
	})).Return(full, nil)

	resp, err := service.Create(ctx, ownerID, CreateSaleRequest{
		SaleDate: testSaleDate(),
		Total:    decimal.NewFromInt(28),
		Items: []LineItemRequest{
			{
				ProductID: productID,
				Amount:    decimal.NewFromInt(1),
				Price:     decimal.NewFromInt(28),
				Total:     decimal.NewFromInt(28),
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, sales.StateDraft.String(), resp.State)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_Create_RejectsDeleteRecords(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	lineID := uuid.New()

	_, err := service.Create(context.Background(), newTestOwnerID(), CreateSaleRequest{
		SaleDate: testSaleDate(),
		Total:    decimal.NewFromInt(28),
		Items: []LineItemRequest{
			{ID: &lineID, Delete: true},
		},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_LINE_ITEM", domainErr.Code)
	mockRepo.AssertNotCalled(t, "CreateWithItems")
}

func TestSaleService_Create_InvalidAmount(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)

	_, err := service.Create(context.Background(), newTestOwnerID(), CreateSaleRequest{
		SaleDate: testSaleDate(),
		Items: []LineItemRequest{
			{ProductID: uuid.New(), Amount: decimal.Zero},
		},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestSaleService_Update_MixedChangeBatch(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()
	saleID := uuid.New()
	keepID := uuid.New()
	dropID := uuid.New()
	total := decimal.NewFromInt(56)

	full := createFullSale(t, ownerID)
	mockRepo.On("UpdateDraft", ctx, ownerID, saleID,
		mock.MatchedBy(func(u sales.SaleUpdate) bool {
			return u.Total != nil && u.Total.Equal(total) && u.SaleDate == nil
		}),
		mock.MatchedBy(func(changes []sales.LineItemChange) bool {
			return len(changes) == 2 &&
				changes[0].Op == shared.ChangeKeep &&
				changes[0].LinkID == keepID &&
				changes[1].Op == shared.ChangeDelete &&
				changes[1].LinkID == dropID
		})).Return(full, nil)

	_, err := service.Update(ctx, ownerID, saleID, UpdateSaleRequest{
		Total: &total,
		Items: []LineItemRequest{
			{
				ID:        &keepID,
				ProductID: uuid.New(),
				Amount:    decimal.NewFromInt(2),
				Price:     decimal.NewFromInt(28),
				Total:     decimal.NewFromInt(56),
			},
			{ID: &dropID, Delete: true},
		},
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_Update_NotDraft(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()
	saleID := uuid.New()

	mockRepo.On("UpdateDraft", ctx, ownerID, saleID, sales.SaleUpdate{}, mock.Anything).
		Return(nil, shared.ErrMutationForbidden)

	_, err := service.Update(ctx, ownerID, saleID, UpdateSaleRequest{})

	assert.ErrorIs(t, err, shared.ErrMutationForbidden)
}

func TestSaleService_SetState_Approve(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	saleID := full.Sale.ID

	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(full, nil)
	mockRepo.On("UpdateState", ctx, ownerID, saleID, sales.StateDraft, sales.StateApproved).Return(nil)

	resp, err := service.SetState(ctx, ownerID, saleID, SetStateRequest{Event: "approve"})

	require.NoError(t, err)
	assert.Equal(t, sales.StateApproved.String(), resp.State)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_SetState_LostRaceRevalidates(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	draft := createFullSale(t, ownerID)
	saleID := draft.Sale.ID

	cancelled := createFullSale(t, ownerID)
	cancelled.Sale.ID = saleID
	require.NoError(t, cancelled.Sale.Apply(sales.EventCancel))

	// First read sees Draft, but the guarded write loses to a concurrent
	// cancel. The second read sees Cancelled, where APPROVE is illegal.
	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(draft, nil).Once()
	mockRepo.On("UpdateState", ctx, ownerID, saleID, sales.StateDraft, sales.StateApproved).
		Return(shared.ErrStateConflict).Once()
	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(cancelled, nil).Once()

	_, err := service.SetState(ctx, ownerID, saleID, SetStateRequest{Event: "APPROVE"})

	var transitionErr *sales.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, sales.StateCancelled, transitionErr.From)
	assert.Equal(t, sales.EventApprove, transitionErr.Event)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_SetState_PersistentConflict(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	saleID := full.Sale.ID

	// A fresh draft per attempt; the mock would otherwise hand back the
	// value mutated by the previous attempt's Apply
	for i := 0; i < 3; i++ {
		mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).
			Return(createFullSale(t, ownerID), nil).Once()
	}
	mockRepo.On("UpdateState", ctx, ownerID, saleID, sales.StateDraft, sales.StateApproved).
		Return(shared.ErrStateConflict).Times(3)

	_, err := service.SetState(ctx, ownerID, saleID, SetStateRequest{Event: "APPROVE"})

	assert.ErrorIs(t, err, shared.ErrStateConflict)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_SetState_IllegalTransition(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	saleID := full.Sale.ID

	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(full, nil)

	_, err := service.SetState(ctx, ownerID, saleID, SetStateRequest{Event: "PAY"})

	var transitionErr *sales.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, sales.StateDraft, transitionErr.From)
	assert.Equal(t, sales.EventPay, transitionErr.Event)
	mockRepo.AssertNotCalled(t, "UpdateState")
}

func TestSaleService_SetState_UnknownEvent(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)

	_, err := service.SetState(context.Background(), newTestOwnerID(), uuid.New(), SetStateRequest{Event: "SHRED"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_EVENT", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByIDForOwner")
}

func TestSaleService_Destroy_Draft(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	saleID := full.Sale.ID

	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(full, nil)
	mockRepo.On("DeleteDraft", ctx, ownerID, saleID).Return(true, nil)

	assert.NoError(t, service.Destroy(ctx, ownerID, saleID))
	mockRepo.AssertExpectations(t)
}

func TestSaleService_Destroy_NotDraft(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	require.NoError(t, full.Sale.Apply(sales.EventApprove))
	saleID := full.Sale.ID

	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(full, nil)

	err := service.Destroy(ctx, ownerID, saleID)

	assert.ErrorIs(t, err, shared.ErrMutationForbidden)
	mockRepo.AssertNotCalled(t, "DeleteDraft")
}

func TestSaleService_Destroy_LostRace(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()

	full := createFullSale(t, ownerID)
	saleID := full.Sale.ID

	mockRepo.On("FindByIDForOwner", ctx, ownerID, saleID).Return(full, nil)
	mockRepo.On("DeleteDraft", ctx, ownerID, saleID).Return(false, nil)

	err := service.Destroy(ctx, ownerID, saleID)

	assert.ErrorIs(t, err, shared.ErrMutationForbidden)
}

func TestSaleService_List_Filters(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	ctx := context.Background()
	ownerID := newTestOwnerID()
	bill := "INV-100"
	state := "approved"

	mockRepo.On("FindAllForOwner", ctx, ownerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Limit == 5 &&
			f.Filters["bill_number"] == bill &&
			f.Filters["state"] == sales.StateApproved
	})).Return([]sales.FullSale{}, nil)

	resp, err := service.List(ctx, ownerID, SaleListFilter{
		BillNumber: &bill,
		State:      &state,
		Limit:      5,
	})

	require.NoError(t, err)
	assert.Empty(t, resp)
	mockRepo.AssertExpectations(t)
}

func TestSaleService_List_UnknownState(t *testing.T) {
	mockRepo := new(MockSaleRepository)
	service := NewSaleService(mockRepo)
	state := "SHIPPED"

	_, err := service.List(context.Background(), newTestOwnerID(), SaleListFilter{State: &state})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindAllForOwner")
}
