package hr

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EmployeeStatus represents employment state
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "ACTIVE"
	EmployeeStatusOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeStatusTerminated EmployeeStatus = "TERMINATED"
)

// IsValid checks the status
func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusTerminated:
		return true
	}
	return false
}

// Employee is a person on the payroll
type Employee struct {
	shared.TenantAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_employee_tenant_code,priority:2"`
	FullName        string          `gorm:"type:varchar(200);not null"`
	Email           string          `gorm:"type:varchar(200)"`
	Phone           string          `gorm:"type:varchar(50)"`
	Position        string          `gorm:"type:varchar(100)"`
	Department      string          `gorm:"type:varchar(100);index"`
	HireDate        time.Time       `gorm:"type:date;not null"`
	Salary          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status          EmployeeStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	TerminatedAt    *time.Time      `gorm:"type:date"`
	TerminationNote string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee hires an active employee
func NewEmployee(tenantID uuid.UUID, code, fullName string, hireDate time.Time) (*Employee, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	fullName, err = shared.RequireName(fullName, 200)
	if err != nil {
		return nil, err
	}
	if hireDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Hire date is required")
	}
	return &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		FullName:            fullName,
		HireDate:            hireDate,
		Salary:              decimal.Zero,
		Status:              EmployeeStatusActive,
	}, nil
}

// UpdateProfile changes personal and job details
func (e *Employee) UpdateProfile(fullName, email, phone, position, department string) error {
	fullName, err := shared.RequireName(fullName, 200)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
		}
		email = strings.ToLower(addr.Address)
	}
	e.FullName = fullName
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	e.Position = strings.TrimSpace(position)
	e.Department = strings.TrimSpace(department)
	e.IncrementVersion()
	return nil
}

// SetSalary sets the monthly salary
func (e *Employee) SetSalary(salary decimal.Decimal) error {
	if salary.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}
	e.Salary = salary
	e.IncrementVersion()
	return nil
}

// SetStatus moves between ACTIVE and ON_LEAVE; use Terminate to end employment
func (e *Employee) SetStatus(status EmployeeStatus) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Employee is terminated")
	}
	if status != EmployeeStatusActive && status != EmployeeStatusOnLeave {
		return shared.NewDomainError("INVALID_STATUS", "Status must be ACTIVE or ON_LEAVE")
	}
	e.Status = status
	e.IncrementVersion()
	return nil
}

// Terminate ends employment on the given date
func (e *Employee) Terminate(at time.Time, note string) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Employee is already terminated")
	}
	if at.Before(e.HireDate) {
		return shared.NewDomainError("INVALID_DATE", "Termination date cannot be before hire date")
	}
	e.Status = EmployeeStatusTerminated
	e.TerminatedAt = &at
	e.TerminationNote = strings.TrimSpace(note)
	e.IncrementVersion()
	return nil
}

// YearsOfService returns completed years between hire date and at
func (e *Employee) YearsOfService(at time.Time) int {
	if e.TerminatedAt != nil && at.After(*e.TerminatedAt) {
		at = *e.TerminatedAt
	}
	years := at.Year() - e.HireDate.Year()
	if at.YearDay() < e.HireDate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
