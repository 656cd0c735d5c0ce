package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	catalogapp "github.com/mystore/backend/internal/application/catalog"
	"github.com/mystore/backend/internal/domain/catalog"
	"github.com/mystore/backend/internal/domain/shared"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) CreateWithLinks(ctx context.Context, product *catalog.Product, changes []catalog.PriceLinkChange) (*catalog.FullProduct, error) {
	args := m.Called(ctx, product, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FullProduct), args.Error(1)
}

func (m *MockProductRepository) UpdateWithLinks(ctx context.Context, ownerID, productID uuid.UUID, update catalog.ProductUpdate, changes []catalog.PriceLinkChange) (*catalog.FullProduct, error) {
	args := m.Called(ctx, ownerID, productID, update, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FullProduct), args.Error(1)
}

func (m *MockProductRepository) ReconcileLinks(ctx context.Context, ownerID, productID uuid.UUID, changes []catalog.PriceLinkChange) ([]catalog.FullPriceProduct, error) {
	args := m.Called(ctx, ownerID, productID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.FullPriceProduct), args.Error(1)
}

func (m *MockProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.FullProduct, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FullProduct), args.Error(1)
}

func (m *MockProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, search string, filter shared.Filter) ([]catalog.FullProduct, error) {
	args := m.Called(ctx, ownerID, search, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.FullProduct), args.Error(1)
}

func (m *MockProductRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

func setupProductHandler(repo *MockProductRepository) *ProductHandler {
	return NewProductHandler(catalogapp.NewProductService(repo))
}

func registerProductRoutes(router *gin.Engine, h *ProductHandler) {
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
}

func createHandlerTestProduct(ownerID uuid.UUID, name string) *catalog.FullProduct {
	product, _ := catalog.NewProduct(ownerID, name, decimal.NewFromInt(10))
	return &catalog.FullProduct{Product: *product, PriceLinks: []catalog.FullPriceProduct{}}
}

func TestProductHandler_Create_Success(t *testing.T) {
	ownerID := uuid.New()
	repo := new(MockProductRepository)
	repo.On("CreateWithLinks", mock.Anything, mock.AnythingOfType("*catalog.Product"), mock.Anything).
		Return(createHandlerTestProduct(ownerID, "Widget"), nil)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	body, _ := json.Marshal(catalogapp.CreateProductRequest{
		Name:  "Widget",
		Stock: decimal.NewFromInt(10),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
	repo.AssertExpectations(t)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	ownerID := uuid.New()
	repo := new(MockProductRepository)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(`{"stock":"5"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateWithLinks")
}

func TestProductHandler_Create_Unauthenticated(t *testing.T) {
	repo := new(MockProductRepository)

	router := setupAnonymousRouter()
	registerProductRoutes(router, setupProductHandler(repo))

	body, _ := json.Marshal(catalogapp.CreateProductRequest{Name: "Widget"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	repo := new(MockProductRepository)
	repo.On("FindByIDForOwner", mock.Anything, ownerID, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	ownerID := uuid.New()
	repo := new(MockProductRepository)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_Success(t *testing.T) {
	ownerID := uuid.New()
	repo := new(MockProductRepository)
	products := []catalog.FullProduct{
		*createHandlerTestProduct(ownerID, "Widget"),
		*createHandlerTestProduct(ownerID, "Gadget"),
	}
	repo.On("FindAllForOwner", mock.Anything, ownerID, "wid", mock.Anything).Return(products, nil)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=wid&limit=50", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
	assert.Contains(t, w.Body.String(), "Gadget")
	assert.Contains(t, w.Body.String(), `"meta"`)
}

func TestProductHandler_ReconcilePrices_Success(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	priceID := uuid.New()
	amount := decimal.NewFromFloat(19.99)

	link, _ := catalog.NewPriceProduct(priceID, &amount)
	price, _ := catalog.NewPrice(ownerID, "Retail")
	enriched := []catalog.FullPriceProduct{{PriceProduct: *link, Price: *price}}

	repo := new(MockProductRepository)
	repo.On("ReconcileLinks", mock.Anything, ownerID, productID, mock.Anything).Return(enriched, nil)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	body, _ := json.Marshal([]catalogapp.PriceLinkRequest{
		{PriceID: priceID, Amount: &amount},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+productID.String()+"/prices", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Retail")
	repo.AssertExpectations(t)
}

func TestProductHandler_Delete_Success(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	repo := new(MockProductRepository)
	repo.On("DeleteForOwner", mock.Anything, ownerID, productID).Return(true, nil)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProductHandler_Delete_Absent(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	repo := new(MockProductRepository)
	repo.On("DeleteForOwner", mock.Anything, ownerID, productID).Return(false, nil)

	router := setupTestRouter(ownerID)
	registerProductRoutes(router, setupProductHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
