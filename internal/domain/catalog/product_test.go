package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockOperation_Delta(t *testing.T) {
	tests := []struct {
		op       StockOperation
		quantity int
		want     int
	}{
		{StockOperationSale, 5, -5},
		{StockOperationPurchase, 5, 5},
		{StockOperationSale, 0, 0},
		{StockOperationPurchase, 12, 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Delta(tt.quantity))
		})
	}
}

func TestStockOperation_IsValid(t *testing.T) {
	assert.True(t, StockOperationSale.IsValid())
	assert.True(t, StockOperationPurchase.IsValid())
	assert.False(t, StockOperation("return").IsValid())
}

func TestNewProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := NewProduct("Cement Bag", "PCs", 100, decimal.NewFromInt(350))
		require.NoError(t, err)
		assert.Equal(t, "Cement Bag", p.Name)
		assert.Equal(t, 100, p.Quantity)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewProduct("", "PCs", 0, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewProduct("Cement Bag", "PCs", 0, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProduct_SetPrice(t *testing.T) {
	p, err := NewProduct("Cement Bag", "PCs", 10, decimal.NewFromInt(350))
	require.NoError(t, err)

	require.NoError(t, p.SetPrice(decimal.NewFromInt(380)))
	assert.True(t, p.Price.Equal(decimal.NewFromInt(380)))

	require.Error(t, p.SetPrice(decimal.NewFromInt(-5)))
}
