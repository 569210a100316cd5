package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContactRequest is the contact block shared by vendors and customers
type ContactRequest struct {
	ContactName string `json:"contact_name" binding:"max=100" example:"Budi"`
	Phone       string `json:"phone" binding:"max=50" example:"0812-555-0101"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"budi@example.com"`
	Address     string `json:"address" binding:"max=500" example:"Jl. Merdeka 1"`
	City        string `json:"city" binding:"max=100" example:"Jakarta"`
	Country     string `json:"country" binding:"max=100" example:"ID"`
}

func (r ContactRequest) toContact() (partner.Contact, error) {
	return partner.NewContact(r.ContactName, r.Phone, r.Email, r.Address, r.City, r.Country)
}

// ContactResponse is the contact block in API responses
type ContactResponse struct {
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

func toContactResponse(c partner.Contact) ContactResponse {
	return ContactResponse(c)
}

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Code            string `json:"code" binding:"required,min=1,max=50" example:"SUP-001"`
	Name            string `json:"name" binding:"required,min=1,max=200" example:"PT Sumber Makmur"`
	TaxNumber       string `json:"tax_number" binding:"max=50"`
	PaymentTermDays int    `json:"payment_term_days" binding:"min=0,max=365" example:"30"`
	Notes           string `json:"notes"`
	ContactRequest
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	TaxNumber       string `json:"tax_number" binding:"max=50"`
	PaymentTermDays int    `json:"payment_term_days" binding:"min=0,max=365"`
	Notes           string `json:"notes"`
	IsActive        *bool  `json:"is_active"`
	ContactRequest
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	TaxNumber       string    `json:"tax_number"`
	PaymentTermDays int       `json:"payment_term_days"`
	IsActive        bool      `json:"is_active"`
	Notes           string    `json:"notes"`
	ContactResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToVendorResponse converts a domain Vendor to VendorResponse
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:              v.ID,
		Code:            v.Code,
		Name:            v.Name,
		TaxNumber:       v.TaxNumber,
		PaymentTermDays: v.PaymentTermDays,
		IsActive:        v.IsActive,
		Notes:           v.Notes,
		ContactResponse: toContactResponse(v.Contact),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Version:         v.Version,
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Code            string           `json:"code" binding:"required,min=1,max=50" example:"CUS-001"`
	Name            string           `json:"name" binding:"required,min=1,max=200" example:"Toko Abadi"`
	TaxNumber       string           `json:"tax_number" binding:"max=50"`
	PaymentTermDays int              `json:"payment_term_days" binding:"min=0,max=365" example:"14"`
	CreditLimit     *decimal.Decimal `json:"credit_limit" swaggertype:"string" example:"5000000"`
	Notes           string           `json:"notes"`
	ContactRequest
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	TaxNumber       string           `json:"tax_number" binding:"max=50"`
	PaymentTermDays int              `json:"payment_term_days" binding:"min=0,max=365"`
	CreditLimit     *decimal.Decimal `json:"credit_limit" swaggertype:"string"`
	Notes           string           `json:"notes"`
	IsActive        *bool            `json:"is_active"`
	ContactRequest
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	TaxNumber       string          `json:"tax_number"`
	PaymentTermDays int             `json:"payment_term_days"`
	CreditLimit     decimal.Decimal `json:"credit_limit" swaggertype:"string"`
	IsActive        bool            `json:"is_active"`
	Notes           string          `json:"notes"`
	ContactResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		TaxNumber:       c.TaxNumber,
		PaymentTermDays: c.PaymentTermDays,
		CreditLimit:     c.CreditLimit,
		IsActive:        c.IsActive,
		Notes:           c.Notes,
		ContactResponse: toContactResponse(c.Contact),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// PartnerListFilter represents filter options for vendor and customer lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f PartnerListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("city", f.City).
		With("is_active", f.IsActive)
}

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=50" example:"WH-001"`
	Name      string `json:"name" binding:"required,min=1,max=200" example:"Main Warehouse"`
	Address   string `json:"address" binding:"max=500"`
	City      string `json:"city" binding:"max=100"`
	IsDefault bool   `json:"is_default"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Address   string `json:"address" binding:"max=500"`
	City      string `json:"city" binding:"max=100"`
	IsDefault *bool  `json:"is_default"`
	IsActive  *bool  `json:"is_active"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// WarehouseListFilter represents filter options for the warehouse list
type WarehouseListFilter struct {
	Search    string `form:"search"`
	IsActive  *bool  `form:"is_active"`
	IsDefault *bool  `form:"is_default"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f WarehouseListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("is_active", f.IsActive).
		With("is_default", f.IsDefault)
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		City:      w.City,
		IsDefault: w.IsDefault,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Version:   w.Version,
	}
}
