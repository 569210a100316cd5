package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// VendorService handles vendor business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.vendorRepo.ExistsByCode(ctx, tenantID, vendor.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this code already exists")
	}

	if err := vendor.Update(vendor.Name, req.TaxNumber, req.PaymentTermDays, req.Notes); err != nil {
		return nil, err
	}
	contact, err := req.toContact()
	if err != nil {
		return nil, err
	}
	vendor.SetContact(contact)

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves a page of vendors
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]VendorResponse, int64, error) {
	domainFilter := filter.toFilter()

	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses, total, nil
}

// Update updates a vendor
func (s *VendorService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := vendor.Update(req.Name, req.TaxNumber, req.PaymentTermDays, req.Notes); err != nil {
		return nil, err
	}
	contact, err := req.toContact()
	if err != nil {
		return nil, err
	}
	vendor.SetContact(contact)
	if req.IsActive != nil {
		vendor.SetActive(*req.IsActive)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete deletes a vendor; vendors referenced by purchase orders cannot be deleted
func (s *VendorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.vendorRepo.DeleteForTenant(ctx, tenantID, id)
}
