package hr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee(t *testing.T) {
	hired := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	e, err := NewEmployee(uuid.New(), "emp-01", "Siti Rahma", hired)
	require.NoError(t, err)
	assert.Equal(t, "EMP-01", e.Code)
	assert.Equal(t, EmployeeStatusActive, e.Status)

	require.NoError(t, e.UpdateProfile("Siti Rahma", "Siti@Example.com", "0812", "Accountant", "Finance"))
	assert.Equal(t, "siti@example.com", e.Email)
	assert.Error(t, e.UpdateProfile("Siti Rahma", "not-an-email", "", "", ""))

	assert.Error(t, e.SetSalary(decimal.NewFromInt(-1)))
	require.NoError(t, e.SetStatus(EmployeeStatusOnLeave))
	assert.Error(t, e.SetStatus(EmployeeStatusTerminated))

	assert.Equal(t, 5, e.YearsOfService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	assert.Error(t, e.Terminate(hired.AddDate(0, 0, -1), ""))
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.Terminate(end, "resigned"))
	assert.Equal(t, EmployeeStatusTerminated, e.Status)
	assert.Equal(t, 4, e.YearsOfService(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Error(t, e.Terminate(end, ""))
	assert.Error(t, e.SetStatus(EmployeeStatusActive))
}
