package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/partner"
)

// PartnerHandler serves vendors, customers and warehouses
type PartnerHandler struct {
	BaseHandler
	vendors    *partnerapp.VendorService
	customers  *partnerapp.CustomerService
	warehouses *partnerapp.WarehouseService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(vendors *partnerapp.VendorService, customers *partnerapp.CustomerService, warehouses *partnerapp.WarehouseService) *PartnerHandler {
	return &PartnerHandler{vendors: vendors, customers: customers, warehouses: warehouses}
}

// CreateVendor godoc
// @ID           createVendor
// @Summary      Create a vendor
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreateVendorRequest true "Vendor"
// @Success      201 {object} APIResponse[partnerapp.VendorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partner/vendors [post]
func (h *PartnerHandler) CreateVendor(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req partnerapp.CreateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	vendor, err := h.vendors.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// GetVendor godoc
// @ID           getVendor
// @Summary      Get a vendor
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.VendorResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/vendors/{id} [get]
func (h *PartnerHandler) GetVendor(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "vendor")
	if !ok {
		return
	}
	vendor, err := h.vendors.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// ListVendors godoc
// @ID           listVendors
// @Summary      List vendors
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query partnerapp.PartnerListFilter false "Filter"
// @Success      200 {object} APIResponse[[]partnerapp.VendorResponse]
// @Router       /partner/vendors [get]
func (h *PartnerHandler) ListVendors(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter partnerapp.PartnerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.vendors.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateVendor godoc
// @ID           updateVendor
// @Summary      Update a vendor
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body partnerapp.UpdateVendorRequest true "Changes"
// @Success      200 {object} APIResponse[partnerapp.VendorResponse]
// @Router       /partner/vendors/{id} [put]
func (h *PartnerHandler) UpdateVendor(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "vendor")
	if !ok {
		return
	}
	var req partnerapp.UpdateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	vendor, err := h.vendors.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// DeleteVendor godoc
// @ID           deleteVendor
// @Summary      Delete a vendor
// @Tags         partner
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse "Vendor is referenced by purchase orders"
// @Router       /partner/vendors/{id} [delete]
func (h *PartnerHandler) DeleteVendor(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "vendor")
	if !ok {
		return
	}
	if err := h.vendors.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCustomer godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partner/customers [post]
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customers.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetCustomer godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/customers/{id} [get]
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "customer")
	if !ok {
		return
	}
	customer, err := h.customers.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListCustomers godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query partnerapp.PartnerListFilter false "Filter"
// @Success      200 {object} APIResponse[[]partnerapp.CustomerResponse]
// @Router       /partner/customers [get]
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter partnerapp.PartnerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.customers.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateCustomer godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body partnerapp.UpdateCustomerRequest true "Changes"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Router       /partner/customers/{id} [put]
func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "customer")
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// DeleteCustomer godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Tags         partner
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Router       /partner/customers/{id} [delete]
func (h *PartnerHandler) DeleteCustomer(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "customer")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateWarehouse godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Description  The first warehouse of a tenant, or one created with is_default, becomes the default
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreateWarehouseRequest true "Warehouse"
// @Success      201 {object} APIResponse[partnerapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partner/warehouses [post]
func (h *PartnerHandler) CreateWarehouse(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req partnerapp.CreateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	warehouse, err := h.warehouses.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// GetWarehouse godoc
// @ID           getWarehouse
// @Summary      Get a warehouse
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/warehouses/{id} [get]
func (h *PartnerHandler) GetWarehouse(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "warehouse")
	if !ok {
		return
	}
	warehouse, err := h.warehouses.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// GetDefaultWarehouse godoc
// @ID           getDefaultWarehouse
// @Summary      Get the tenant's default warehouse
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Success      200 {object} APIResponse[partnerapp.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/warehouses/default [get]
func (h *PartnerHandler) GetDefaultWarehouse(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	warehouse, err := h.warehouses.GetDefault(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// ListWarehouses godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         partner
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query partnerapp.WarehouseListFilter false "Filter"
// @Success      200 {object} APIResponse[[]partnerapp.WarehouseResponse]
// @Router       /partner/warehouses [get]
func (h *PartnerHandler) ListWarehouses(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter partnerapp.WarehouseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.warehouses.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateWarehouse godoc
// @ID           updateWarehouse
// @Summary      Update a warehouse
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Warehouse ID" format(uuid)
// @Param        request body partnerapp.UpdateWarehouseRequest true "Changes"
// @Success      200 {object} APIResponse[partnerapp.WarehouseResponse]
// @Router       /partner/warehouses/{id} [put]
func (h *PartnerHandler) UpdateWarehouse(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "warehouse")
	if !ok {
		return
	}
	var req partnerapp.UpdateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	warehouse, err := h.warehouses.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// DeleteWarehouse godoc
// @ID           deleteWarehouse
// @Summary      Delete a warehouse
// @Tags         partner
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse "Warehouse still holds stock"
// @Router       /partner/warehouses/{id} [delete]
func (h *PartnerHandler) DeleteWarehouse(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "warehouse")
	if !ok {
		return
	}
	if err := h.warehouses.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
