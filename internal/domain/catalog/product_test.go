package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates product", func(t *testing.T) {
		product, err := NewProduct(ownerID, "Shoe", decimal.NewFromFloat(10.4))
		require.NoError(t, err)

		assert.Equal(t, ownerID, product.OwnerID)
		assert.Equal(t, "Shoe", product.Name)
		assert.Nil(t, product.Cost)
		assert.NotEmpty(t, product.ID)
	})

	t.Run("trims the name", func(t *testing.T) {
		product, err := NewProduct(ownerID, "  Hat  ", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "Hat", product.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(ownerID, "   ", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct(ownerID, "Pants", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProduct_SetCost(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Shoe", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.SetCost(decimal.NewFromInt(1892)))
	require.NotNil(t, product.Cost)
	assert.True(t, decimal.NewFromInt(1892).Equal(*product.Cost))

	assert.Error(t, product.SetCost(decimal.NewFromInt(-5)))
}

func TestNewPrice(t *testing.T) {
	t.Run("creates price tier", func(t *testing.T) {
		price, err := NewPrice(uuid.New(), "Wholesale")
		require.NoError(t, err)
		assert.Equal(t, "Wholesale", price.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewPrice(uuid.New(), "")
		require.Error(t, err)
	})
}

func TestNewPriceProduct(t *testing.T) {
	t.Run("creates link without product or owner", func(t *testing.T) {
		amount := decimal.NewFromInt(15)
		link, err := NewPriceProduct(uuid.New(), &amount)
		require.NoError(t, err)

		// product and owner are force-set from context during reconciliation
		assert.Equal(t, uuid.Nil, link.ProductID)
		assert.Equal(t, uuid.Nil, link.OwnerID)
	})

	t.Run("fails with empty price id", func(t *testing.T) {
		_, err := NewPriceProduct(uuid.Nil, nil)
		require.Error(t, err)
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		amount := decimal.NewFromInt(-10)
		_, err := NewPriceProduct(uuid.New(), &amount)
		require.Error(t, err)
	})
}
