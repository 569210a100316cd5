package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStock(t *testing.T) *Stock {
	t.Helper()
	stock, err := NewStock(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return stock
}

func TestNewStock(t *testing.T) {
	_, err := NewStock(uuid.New(), uuid.Nil, uuid.New())
	assert.Error(t, err)
	_, err = NewStock(uuid.New(), uuid.New(), uuid.Nil)
	assert.Error(t, err)

	stock := newTestStock(t)
	assert.True(t, stock.Quantity.IsZero())
	assert.Equal(t, 1, stock.GetVersion())
}

func TestStock_Increase(t *testing.T) {
	t.Run("uses weighted average cost", func(t *testing.T) {
		stock := newTestStock(t)
		require.NoError(t, stock.Increase(decimal.NewFromInt(10), decimal.NewFromInt(100)))
		require.NoError(t, stock.Increase(decimal.NewFromInt(30), decimal.NewFromInt(120)))

		assert.Equal(t, "40", stock.Quantity.String())
		assert.Equal(t, "115", stock.UnitCost.String())
		assert.Equal(t, 3, stock.GetVersion())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		stock := newTestStock(t)
		assert.Error(t, stock.Increase(decimal.Zero, decimal.NewFromInt(1)))
		assert.Error(t, stock.Increase(decimal.NewFromInt(1), decimal.NewFromInt(-1)))
	})
}

func TestStock_Decrease(t *testing.T) {
	stock := newTestStock(t)
	require.NoError(t, stock.Increase(decimal.NewFromInt(5), decimal.NewFromInt(10)))

	require.NoError(t, stock.Decrease(decimal.NewFromInt(2)))
	assert.Equal(t, "3", stock.Quantity.String())
	assert.Equal(t, "10", stock.UnitCost.String())

	err := stock.Decrease(decimal.NewFromInt(4))
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, "3", stock.Quantity.String())
}

func TestStock_Apply(t *testing.T) {
	stock := newTestStock(t)
	require.NoError(t, stock.Apply(decimal.NewFromInt(4), decimal.NewFromInt(25)))
	require.NoError(t, stock.Apply(decimal.NewFromInt(4), decimal.Zero))
	assert.Equal(t, "25", stock.UnitCost.String())

	require.NoError(t, stock.Apply(decimal.NewFromInt(-8), decimal.Zero))
	assert.True(t, stock.Quantity.IsZero())

	assert.Error(t, stock.Apply(decimal.Zero, decimal.Zero))
}

func TestPosting(t *testing.T) {
	stock := newTestStock(t)
	ref := Reference{Type: ReferencePurchaseOrder, ID: uuid.New()}
	p := Posting{
		Type:      MovementTypeIn,
		Reference: ref,
		Lines: []StockLine{{
			WarehouseID: stock.WarehouseID,
			ProductID:   stock.ProductID,
			Delta:       decimal.NewFromInt(3),
			UnitCost:    decimal.NewFromInt(7),
		}},
	}
	require.NoError(t, p.Validate())

	m, err := p.ApplyLine(stock, p.Lines[0])
	require.NoError(t, err)
	assert.Equal(t, MovementTypeIn, m.Type)
	assert.Equal(t, "3", m.BalanceAfter.String())
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, ref.ID, *m.ReferenceID)

	t.Run("rejects negative inbound lines", func(t *testing.T) {
		bad := p
		bad.Lines = []StockLine{{WarehouseID: uuid.New(), ProductID: uuid.New(), Delta: decimal.NewFromInt(-1)}}
		assert.Error(t, bad.Validate())
	})

	t.Run("rejects empty postings", func(t *testing.T) {
		assert.Error(t, Posting{Type: MovementTypeOut}.Validate())
	})
}
