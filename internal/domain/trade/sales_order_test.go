package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmedSO(t *testing.T) (*SalesOrder, uuid.UUID, uuid.UUID) {
	t.Helper()
	so, err := NewSalesOrder(uuid.New(), "SO-001", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, so.AddItem(a, dec("2"), dec("100"), dec("11")))
	require.NoError(t, so.AddItem(b, dec("1"), dec("50"), dec("0")))
	require.NoError(t, so.Confirm(time.Now()))
	return so, a, b
}

func TestSalesOrder_Deliver(t *testing.T) {
	so, a, b := newConfirmedSO(t)
	assert.Equal(t, "272", so.Total.String())

	posting, err := so.Deliver([]FulfilLine{{ProductID: a, Quantity: dec("1")}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusPartialDelivered, so.Status)
	assert.Equal(t, inventory.MovementTypeOut, posting.Type)
	assert.Equal(t, "-1", posting.Lines[0].Delta.String())
	assert.Equal(t, inventory.ReferenceSalesOrder, posting.Reference.Type)

	_, err = so.Deliver([]FulfilLine{{ProductID: b, Quantity: dec("2")}}, time.Now())
	assert.Error(t, err)
	assert.Equal(t, SalesOrderStatusPartialDelivered, so.Status)

	_, err = so.Deliver([]FulfilLine{{ProductID: a, Quantity: dec("1")}, {ProductID: b, Quantity: dec("1")}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusDelivered, so.Status)
	assert.NotNil(t, so.DeliveredAt)

	_, err = so.Deliver([]FulfilLine{{ProductID: a, Quantity: dec("1")}}, time.Now())
	assert.Error(t, err)
}

func TestSalesOrder_Cancel(t *testing.T) {
	so, a, _ := newConfirmedSO(t)
	_, err := so.Deliver([]FulfilLine{{ProductID: a, Quantity: dec("1")}}, time.Now())
	require.NoError(t, err)
	assert.Error(t, so.Cancel("", time.Now()))

	draft, err := NewSalesOrder(uuid.New(), "SO-002", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	require.NoError(t, draft.Cancel("duplicate", time.Now()))
	assert.Equal(t, SalesOrderStatusCancelled, draft.Status)
	assert.Error(t, draft.Confirm(time.Now()))
}

func TestSalesOrder_ProductIDs(t *testing.T) {
	so, a, b := newConfirmedSO(t)
	assert.Equal(t, []uuid.UUID{a, b}, so.ProductIDs())
}
