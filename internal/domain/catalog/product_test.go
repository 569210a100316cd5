package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(tenantID, "sku-001", " Test Product ", "pcs")
		require.NoError(t, err)

		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Test Product", product.Name)
		assert.True(t, product.PurchasePrice.IsZero())
		assert.True(t, product.IsActive)
		assert.Nil(t, product.TaxID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct(tenantID, "  ", "Test Product", "pcs")
		assert.Error(t, err)
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU-1", "Test Product", "")
		assert.Error(t, err)
	})
}

func TestProduct_SetPrices(t *testing.T) {
	product, err := NewProduct(uuid.New(), "SKU-001", "Widget", "pcs")
	require.NoError(t, err)

	require.NoError(t, product.SetPrices(decimal.NewFromInt(80), decimal.NewFromInt(100)))
	assert.True(t, product.Margin().Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, product.GetVersion())

	err = product.SetPrices(decimal.NewFromInt(-1), decimal.NewFromInt(100))
	assert.Error(t, err)
	assert.True(t, product.PurchasePrice.Equal(decimal.NewFromInt(80)))
}

func TestProduct_SetTax(t *testing.T) {
	product, err := NewProduct(uuid.New(), "SKU-001", "Widget", "pcs")
	require.NoError(t, err)

	taxID := uuid.New()
	product.SetTax(&taxID)
	require.NotNil(t, product.TaxID)
	assert.Equal(t, taxID, *product.TaxID)

	nilID := uuid.Nil
	product.SetTax(&nilID)
	assert.Nil(t, product.TaxID)
}

func TestTax(t *testing.T) {
	tenantID := uuid.New()

	t.Run("applies percentage", func(t *testing.T) {
		tax, err := NewTax(tenantID, "vat11", "VAT 11%", decimal.NewFromInt(11), TaxTypeBoth)
		require.NoError(t, err)
		assert.Equal(t, "VAT11", tax.Code)
		assert.Equal(t, "11", tax.Apply(decimal.NewFromInt(100)).String())
		assert.Equal(t, "1.38", tax.Apply(decimal.RequireFromString("12.5")).String())
		assert.True(t, tax.AppliesToSales())
		assert.True(t, tax.AppliesToPurchases())
	})

	t.Run("rejects rate out of range", func(t *testing.T) {
		_, err := NewTax(tenantID, "BAD", "Bad", decimal.NewFromInt(101), TaxTypeSales)
		assert.Error(t, err)
		_, err = NewTax(tenantID, "BAD", "Bad", decimal.NewFromInt(-1), TaxTypeSales)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewTax(tenantID, "BAD", "Bad", decimal.NewFromInt(10), TaxType("OTHER"))
		assert.Error(t, err)
	})

	t.Run("sales tax does not apply to purchases", func(t *testing.T) {
		tax, err := NewTax(tenantID, "ST", "Sales tax", decimal.NewFromInt(5), TaxTypeSales)
		require.NoError(t, err)
		assert.False(t, tax.AppliesToPurchases())
	})
}
