// Package hr implements employee administration.
package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/hr"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// EmployeeService handles employee business operations
type EmployeeService struct {
	repo   hr.EmployeeRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo hr.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger, now: time.Now}
}

// Create hires a new employee
func (s *EmployeeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(tenantID, req.Code, req.FullName, req.HireDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(ctx, tenantID, employee.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this code already exists")
	}

	if err := employee.UpdateProfile(employee.FullName, req.Email, req.Phone, req.Position, req.Department); err != nil {
		return nil, err
	}
	if req.Salary != nil {
		if err := employee.SetSalary(*req.Salary); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("Employee created", zap.String("employee_id", employee.ID.String()), zap.String("code", employee.Code))

	response := ToEmployeeResponse(employee, s.now())
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee, s.now())
	return &response, nil
}

// List retrieves a page of employees
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := filter.toFilter()

	employees, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i], now)
	}
	return responses, total, nil
}

// Update updates an employee's profile, salary and leave status
func (s *EmployeeService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := employee.UpdateProfile(req.FullName, req.Email, req.Phone, req.Position, req.Department); err != nil {
		return nil, err
	}
	if req.Salary != nil {
		if err := employee.SetSalary(*req.Salary); err != nil {
			return nil, err
		}
	}
	if req.Status != "" && req.Status != string(employee.Status) {
		if err := employee.SetStatus(hr.EmployeeStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee, s.now())
	return &response, nil
}

// Terminate ends employment, today unless a date is given
func (s *EmployeeService) Terminate(ctx context.Context, tenantID, id uuid.UUID, req TerminateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	at := now
	if req.Date != nil && !req.Date.IsZero() {
		at = *req.Date
	}
	if err := employee.Terminate(at, req.Note); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("Employee terminated", zap.String("employee_id", employee.ID.String()), zap.Time("at", at))

	response := ToEmployeeResponse(employee, now)
	return &response, nil
}

// Delete deletes an employee
func (s *EmployeeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}
