package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAdjustment_Lifecycle(t *testing.T) {
	warehouseID := uuid.New()
	adj, err := NewStockAdjustment(uuid.New(), "ADJ-001", warehouseID, "cycle count")
	require.NoError(t, err)
	assert.True(t, adj.IsDraft())

	productA, productB := uuid.New(), uuid.New()
	require.NoError(t, adj.AddItem(productA, decimal.NewFromInt(5), decimal.NewFromInt(10)))
	require.NoError(t, adj.AddItem(productB, decimal.NewFromInt(-2), decimal.Zero))
	assert.Error(t, adj.AddItem(productA, decimal.NewFromInt(1), decimal.Zero), "duplicate product")
	assert.Error(t, adj.AddItem(uuid.New(), decimal.Zero, decimal.Zero), "zero quantity")

	now := time.Now()
	posting, err := adj.Post(now)
	require.NoError(t, err)
	assert.Equal(t, AdjustmentStatusPosted, adj.Status)
	assert.Equal(t, &now, adj.PostedAt)
	assert.Equal(t, MovementTypeAdjust, posting.Type)
	assert.Equal(t, adj.ID, posting.Reference.ID)
	require.Len(t, posting.Lines, 2)
	assert.Equal(t, warehouseID, posting.Lines[1].WarehouseID)
	assert.Equal(t, "-2", posting.Lines[1].Delta.String())

	_, err = adj.Post(now)
	assert.Error(t, err, "cannot post twice")
	assert.Error(t, adj.AddItem(uuid.New(), decimal.NewFromInt(1), decimal.Zero))
	assert.Error(t, adj.Cancel())
}

func TestStockAdjustment_PostEmpty(t *testing.T) {
	adj, err := NewStockAdjustment(uuid.New(), "ADJ-002", uuid.New(), "")
	require.NoError(t, err)
	_, err = adj.Post(time.Now())
	assert.Error(t, err)
	assert.True(t, adj.IsDraft())
}

func TestStockAdjustment_Cancel(t *testing.T) {
	adj, err := NewStockAdjustment(uuid.New(), "ADJ-003", uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, adj.Cancel())
	assert.Equal(t, AdjustmentStatusCancelled, adj.Status)
	_, err = adj.Post(time.Now())
	assert.Error(t, err)
}
