package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of a fixed asset
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "ACTIVE"
	AssetStatusDisposed AssetStatus = "DISPOSED"
)

// Asset is a fixed asset depreciated on a straight line
type Asset struct {
	shared.TenantAggregateRoot
	Code             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_asset_tenant_code,priority:2"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Category         string          `gorm:"type:varchar(100)"`
	AcquisitionDate  time.Time       `gorm:"type:date;not null"`
	Cost             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SalvageValue     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UsefulLifeMonths int             `gorm:"not null"`
	Status           AssetStatus     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	DisposedAt       *time.Time      `gorm:"type:date"`
	DisposalValue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// DepreciationEntry is one month of a depreciation schedule
type DepreciationEntry struct {
	Period       int
	Date         time.Time
	Depreciation decimal.Decimal
	Accumulated  decimal.Decimal
	BookValue    decimal.Decimal
}

// NewAsset registers an active asset
func NewAsset(tenantID uuid.UUID, code, name, category string, acquired time.Time, cost, salvage decimal.Decimal, usefulLifeMonths int) (*Asset, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	a := &Asset{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Status:              AssetStatusActive,
		DisposalValue:       decimal.Zero,
	}
	if err := a.set(name, category, acquired, cost, salvage, usefulLifeMonths); err != nil {
		return nil, err
	}
	return a, nil
}

// Update changes the asset while it is active
func (a *Asset) Update(name, category string, acquired time.Time, cost, salvage decimal.Decimal, usefulLifeMonths int) error {
	if a.Status != AssetStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Disposed assets cannot be modified")
	}
	if err := a.set(name, category, acquired, cost, salvage, usefulLifeMonths); err != nil {
		return err
	}
	a.IncrementVersion()
	return nil
}

func (a *Asset) set(name, category string, acquired time.Time, cost, salvage decimal.Decimal, usefulLifeMonths int) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	if acquired.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Acquisition date is required")
	}
	if !cost.IsPositive() {
		return shared.NewDomainError("INVALID_COST", "Cost must be positive")
	}
	if salvage.IsNegative() || salvage.GreaterThan(cost) {
		return shared.NewDomainError("INVALID_SALVAGE_VALUE", "Salvage value must be between 0 and cost")
	}
	if usefulLifeMonths <= 0 {
		return shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be at least one month")
	}
	a.Name = name
	a.Category = strings.TrimSpace(category)
	a.AcquisitionDate = acquired
	a.Cost = cost
	a.SalvageValue = salvage
	a.UsefulLifeMonths = usefulLifeMonths
	return nil
}

// DepreciableAmount is cost minus salvage value
func (a *Asset) DepreciableAmount() decimal.Decimal {
	return a.Cost.Sub(a.SalvageValue)
}

// MonthlyDepreciation is the straight-line charge per month
func (a *Asset) MonthlyDepreciation() decimal.Decimal {
	return a.DepreciableAmount().Div(decimal.NewFromInt(int64(a.UsefulLifeMonths))).Round(2)
}

// AccumulatedDepreciation returns the depreciation charged up to at.
// Only whole months count and charging stops at disposal.
func (a *Asset) AccumulatedDepreciation(at time.Time) decimal.Decimal {
	if a.DisposedAt != nil && at.After(*a.DisposedAt) {
		at = *a.DisposedAt
	}
	months := monthsBetween(a.AcquisitionDate, at)
	if months <= 0 {
		return decimal.Zero
	}
	if months >= a.UsefulLifeMonths {
		return a.DepreciableAmount()
	}
	return a.MonthlyDepreciation().Mul(decimal.NewFromInt(int64(months)))
}

// BookValue returns cost less accumulated depreciation at the given date
func (a *Asset) BookValue(at time.Time) decimal.Decimal {
	return a.Cost.Sub(a.AccumulatedDepreciation(at))
}

// Schedule lists every month of the useful life. The last month absorbs rounding.
func (a *Asset) Schedule() []DepreciationEntry {
	entries := make([]DepreciationEntry, 0, a.UsefulLifeMonths)
	monthly := a.MonthlyDepreciation()
	accumulated := decimal.Zero
	for period := 1; period <= a.UsefulLifeMonths; period++ {
		charge := monthly
		if period == a.UsefulLifeMonths {
			charge = a.DepreciableAmount().Sub(accumulated)
		}
		accumulated = accumulated.Add(charge)
		entries = append(entries, DepreciationEntry{
			Period:       period,
			Date:         a.AcquisitionDate.AddDate(0, period, 0),
			Depreciation: charge,
			Accumulated:  accumulated,
			BookValue:    a.Cost.Sub(accumulated),
		})
	}
	return entries
}

// Dispose retires the asset and returns the gain (or loss when negative) on disposal
func (a *Asset) Dispose(at time.Time, proceeds decimal.Decimal) (decimal.Decimal, error) {
	if a.Status != AssetStatusActive {
		return decimal.Zero, shared.NewDomainError("INVALID_STATE", "Asset is already disposed")
	}
	if at.Before(a.AcquisitionDate) {
		return decimal.Zero, shared.NewDomainError("INVALID_DATE", "Disposal date cannot be before acquisition")
	}
	if proceeds.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Disposal value cannot be negative")
	}
	bookValue := a.BookValue(at)
	a.Status = AssetStatusDisposed
	a.DisposedAt = &at
	a.DisposalValue = proceeds
	a.IncrementVersion()
	return proceeds.Sub(bookValue), nil
}

// monthsBetween counts whole calendar months from start to end
func monthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}
