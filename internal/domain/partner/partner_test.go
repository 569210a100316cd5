package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendor(t *testing.T) {
	v, err := NewVendor(uuid.New(), "sup-01", "PT Sumber Makmur")
	require.NoError(t, err)
	assert.Equal(t, "SUP-01", v.Code)
	assert.True(t, v.IsActive)

	require.NoError(t, v.Update("PT Sumber Makmur", "01.234.567.8", 30, ""))
	assert.Equal(t, 30, v.PaymentTermDays)
	assert.Error(t, v.Update("PT Sumber Makmur", "", 400, ""))
	assert.Error(t, v.Update("", "", 30, ""))
}

func TestContact(t *testing.T) {
	c, err := NewContact("Budi", "0812", "budi@example.com", "Jl. Merdeka 1", "Jakarta", "ID")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", c.Email)

	_, err = NewContact("Budi", "", "not-an-email", "", "", "")
	assert.Error(t, err)
}

func TestCustomer_CreditLimit(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "cus-01", "Toko Abadi")
	require.NoError(t, err)
	assert.True(t, c.WithinCreditLimit(decimal.NewFromInt(1_000_000)), "zero limit is unlimited")

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(500)))
	assert.True(t, c.WithinCreditLimit(decimal.NewFromInt(500)))
	assert.False(t, c.WithinCreditLimit(decimal.NewFromInt(501)))
	assert.Error(t, c.SetCreditLimit(decimal.NewFromInt(-1)))
}

func TestWarehouse(t *testing.T) {
	w, err := NewWarehouse(uuid.New(), "wh-main", "Main warehouse")
	require.NoError(t, err)
	assert.Equal(t, "WH-MAIN", w.Code)
	assert.True(t, w.CanStore())

	w.SetDefault(true)
	assert.Error(t, w.SetActive(false))

	w.SetDefault(false)
	require.NoError(t, w.SetActive(false))
	assert.False(t, w.CanStore())
}
