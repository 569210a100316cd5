package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/hr"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to hire an employee
type CreateEmployeeRequest struct {
	Code       string           `json:"code" binding:"required,min=1,max=50" example:"EMP-001"`
	FullName   string           `json:"full_name" binding:"required,min=1,max=200" example:"Siti Rahma"`
	Email      string           `json:"email" binding:"omitempty,email,max=200" example:"siti@example.com"`
	Phone      string           `json:"phone" binding:"max=50"`
	Position   string           `json:"position" binding:"max=100" example:"Warehouse Staff"`
	Department string           `json:"department" binding:"max=100" example:"Logistics"`
	HireDate   time.Time        `json:"hire_date" binding:"required"`
	Salary     *decimal.Decimal `json:"salary" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"5500000"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	FullName   string           `json:"full_name" binding:"required,min=1,max=200"`
	Email      string           `json:"email" binding:"omitempty,email,max=200"`
	Phone      string           `json:"phone" binding:"max=50"`
	Position   string           `json:"position" binding:"max=100"`
	Department string           `json:"department" binding:"max=100"`
	Salary     *decimal.Decimal `json:"salary" binding:"omitempty,decimal_gte0" swaggertype:"string"`
	Status     string           `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE"`
}

// TerminateEmployeeRequest represents a request to end employment
type TerminateEmployeeRequest struct {
	Date *time.Time `json:"date"`
	Note string     `json:"note" binding:"max=500"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Position        string          `json:"position,omitempty"`
	Department      string          `json:"department,omitempty"`
	HireDate        time.Time       `json:"hire_date"`
	YearsOfService  int             `json:"years_of_service"`
	Salary          decimal.Decimal `json:"salary" swaggertype:"string"`
	Status          string          `json:"status"`
	TerminatedAt    *time.Time      `json:"terminated_at,omitempty"`
	TerminationNote string          `json:"termination_note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// EmployeeListFilter represents filter options for the employee list
type EmployeeListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
	Department string `form:"department"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f EmployeeListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("department", f.Department)
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse as of at
func ToEmployeeResponse(e *hr.Employee, at time.Time) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		Code:            e.Code,
		FullName:        e.FullName,
		Email:           e.Email,
		Phone:           e.Phone,
		Position:        e.Position,
		Department:      e.Department,
		HireDate:        e.HireDate,
		YearsOfService:  e.YearsOfService(at),
		Salary:          e.Salary,
		Status:          string(e.Status),
		TerminatedAt:    e.TerminatedAt,
		TerminationNote: e.TerminationNote,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
