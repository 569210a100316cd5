package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAsset(t *testing.T) *Asset {
	t.Helper()
	a, err := NewAsset(uuid.New(), "FA-001", "Delivery van", "Vehicle", day(2026, 1, 15),
		decimal.NewFromInt(1300), decimal.NewFromInt(100), 12)
	require.NoError(t, err)
	return a
}

func TestAsset_Depreciation(t *testing.T) {
	a := newTestAsset(t)
	assert.Equal(t, "100", a.MonthlyDepreciation().String())

	assert.True(t, a.AccumulatedDepreciation(day(2026, 2, 14)).IsZero())
	assert.Equal(t, "100", a.AccumulatedDepreciation(day(2026, 2, 15)).String())
	assert.Equal(t, "600", a.AccumulatedDepreciation(day(2026, 7, 20)).String())
	assert.Equal(t, "1200", a.AccumulatedDepreciation(day(2030, 1, 1)).String())
	assert.Equal(t, "100", a.BookValue(day(2030, 1, 1)).String())
}

func TestAsset_ScheduleAbsorbsRounding(t *testing.T) {
	a, err := NewAsset(uuid.New(), "FA-002", "Laptop", "IT", day(2026, 1, 1),
		decimal.NewFromInt(1000), decimal.Zero, 3)
	require.NoError(t, err)

	schedule := a.Schedule()
	require.Len(t, schedule, 3)
	assert.Equal(t, "333.33", schedule[0].Depreciation.String())
	assert.Equal(t, "333.34", schedule[2].Depreciation.String())
	assert.True(t, schedule[2].BookValue.IsZero())
	assert.Equal(t, day(2026, 4, 1), schedule[2].Date)
}

func TestAsset_Dispose(t *testing.T) {
	a := newTestAsset(t)
	gain, err := a.Dispose(day(2026, 7, 15), decimal.NewFromInt(800))
	require.NoError(t, err)
	// book value after six months is 700
	assert.Equal(t, "100", gain.String())
	assert.Equal(t, AssetStatusDisposed, a.Status)
	assert.Equal(t, "600", a.AccumulatedDepreciation(day(2027, 1, 1)).String())

	_, err = a.Dispose(day(2026, 8, 1), decimal.Zero)
	assert.Error(t, err)
}

func TestNewAsset_Validation(t *testing.T) {
	_, err := NewAsset(uuid.New(), "FA", "X", "", day(2026, 1, 1), decimal.NewFromInt(10), decimal.NewFromInt(11), 12)
	assert.Error(t, err)
	_, err = NewAsset(uuid.New(), "FA", "X", "", day(2026, 1, 1), decimal.NewFromInt(10), decimal.Zero, 0)
	assert.Error(t, err)
}
