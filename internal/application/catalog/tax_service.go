package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// TaxService handles tax business operations
type TaxService struct {
	taxRepo catalog.TaxRepository
}

// NewTaxService creates a new TaxService
func NewTaxService(taxRepo catalog.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// Create creates a new tax
func (s *TaxService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTaxRequest) (*TaxResponse, error) {
	tax, err := catalog.NewTax(tenantID, req.Code, req.Name, req.Rate, catalog.TaxType(req.Type))
	if err != nil {
		return nil, err
	}

	exists, err := s.taxRepo.ExistsByCode(ctx, tenantID, tax.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tax with this code already exists")
	}

	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}
	response := ToTaxResponse(tax)
	return &response, nil
}

// GetByID retrieves a tax by ID
func (s *TaxService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToTaxResponse(tax)
	return &response, nil
}

// List retrieves a page of taxes
func (s *TaxService) List(ctx context.Context, tenantID uuid.UUID, filter TaxListFilter) ([]TaxResponse, int64, error) {
	domainFilter := filter.toFilter()

	taxes, err := s.taxRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taxRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaxResponse, len(taxes))
	for i := range taxes {
		responses[i] = ToTaxResponse(&taxes[i])
	}
	return responses, total, nil
}

// Update updates a tax
func (s *TaxService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTaxRequest) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := tax.Update(req.Name, req.Rate, catalog.TaxType(req.Type)); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		tax.SetActive(*req.IsActive)
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}
	response := ToTaxResponse(tax)
	return &response, nil
}

// Delete deletes a tax; taxes referenced by products cannot be deleted
func (s *TaxService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.taxRepo.DeleteForTenant(ctx, tenantID, id)
}
