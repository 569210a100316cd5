package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newAP(t *testing.T) *Transaction {
	t.Helper()
	tx, err := NewTransaction(uuid.New(), TransactionKindAP, "AP-001", uuid.New(), "Acme",
		decimal.NewFromInt(1000), day(2026, 1, 1), day(2026, 1, 31))
	require.NoError(t, err)
	return tx
}

func TestNewTransaction(t *testing.T) {
	_, err := NewTransaction(uuid.New(), "XX", "N", uuid.New(), "", decimal.NewFromInt(1), day(2026, 1, 1), day(2026, 1, 2))
	assert.Error(t, err)
	_, err = NewTransaction(uuid.New(), TransactionKindAR, "N", uuid.New(), "", decimal.Zero, day(2026, 1, 1), day(2026, 1, 2))
	assert.Error(t, err)
	_, err = NewTransaction(uuid.New(), TransactionKindAR, "N", uuid.New(), "", decimal.NewFromInt(1), day(2026, 1, 2), day(2026, 1, 1))
	assert.Error(t, err)

	tx := newAP(t)
	assert.Equal(t, TransactionStatusOpen, tx.Status)
	assert.Equal(t, "1000", tx.Outstanding().String())
}

func TestTransaction_ApplyPayment(t *testing.T) {
	tx := newAP(t)

	_, err := tx.ApplyPayment(decimal.NewFromInt(400), day(2026, 1, 5), nil, "first")
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusPartial, tx.Status)
	assert.Equal(t, "600", tx.Outstanding().String())

	_, err = tx.ApplyPayment(decimal.NewFromInt(601), day(2026, 1, 6), nil, "")
	assert.Error(t, err)

	payment, err := tx.ApplyPayment(decimal.NewFromInt(600), day(2026, 1, 7), nil, "")
	require.NoError(t, err)
	assert.Equal(t, tx.ID, payment.TransactionID)
	assert.Equal(t, TransactionStatusPaid, tx.Status)
	assert.Len(t, tx.Payments, 2)

	_, err = tx.ApplyPayment(decimal.NewFromInt(1), day(2026, 1, 8), nil, "")
	assert.Error(t, err)
	assert.Error(t, tx.Cancel())
}

func TestTransaction_Due(t *testing.T) {
	tx := newAP(t)

	assert.False(t, tx.IsOverdue(day(2026, 1, 31)))
	assert.True(t, tx.IsOverdue(day(2026, 2, 1)))
	assert.Equal(t, 10, tx.DaysUntilDue(day(2026, 1, 21)))
	assert.Equal(t, -3, tx.DaysUntilDue(time.Date(2026, 2, 3, 18, 30, 0, 0, time.UTC)))

	require.NoError(t, tx.Cancel())
	assert.False(t, tx.IsOverdue(day(2026, 3, 1)))
}

func TestBankAccount(t *testing.T) {
	b, err := NewBankAccount(uuid.New(), "bca-01", "BCA", "1234567890", "PT Maju", "")
	require.NoError(t, err)
	assert.Equal(t, "IDR", b.Currency)
	assert.Equal(t, "BCA-01", b.Code)

	require.NoError(t, b.Deposit(decimal.NewFromInt(500)))
	require.NoError(t, b.Withdraw(decimal.NewFromInt(200)))
	assert.Equal(t, "300", b.Balance.String())

	assert.Error(t, b.Withdraw(decimal.NewFromInt(301)))
	assert.Error(t, b.Deposit(decimal.NewFromInt(-1)))

	b.SetActive(false)
	assert.Error(t, b.Deposit(decimal.NewFromInt(1)))

	_, err = NewBankAccount(uuid.New(), "X", "BCA", "1", "Holder", "RUPIAH")
	assert.Error(t, err)
}
