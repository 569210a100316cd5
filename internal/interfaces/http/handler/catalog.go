package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/catalog"
)

// CatalogHandler serves products and taxes
type CatalogHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	taxes    *catalogapp.TaxService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *catalogapp.ProductService, taxes *catalogapp.TaxService) *CatalogHandler {
	return &CatalogHandler{products: products, taxes: taxes}
}

// CreateProduct godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetProduct godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "product")
	if !ok {
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query catalogapp.ProductListFilter false "Filter"
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.products.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateProduct godoc
// @ID           updateProduct
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Router       /catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "product")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UploadProductImage godoc
// @ID           uploadProductImage
// @Summary      Upload a product image
// @Description  Replaces the current image; a thumbnail is generated
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Param        file formData file true "Image (jpg, png, gif)"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products/{id}/image [post]
func (h *CatalogHandler) UploadProductImage(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "product")
	if !ok {
		return
	}
	file, filename, ok := h.formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	product, err := h.products.UploadImage(c.Request.Context(), tenantID, id, filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         catalog
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Router       /catalog/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "product")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTax godoc
// @ID           createTax
// @Summary      Create a tax
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body catalogapp.CreateTaxRequest true "Tax"
// @Success      201 {object} APIResponse[catalogapp.TaxResponse]
// @Router       /catalog/taxes [post]
func (h *CatalogHandler) CreateTax(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req catalogapp.CreateTaxRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tax, err := h.taxes.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tax)
}

// GetTax godoc
// @ID           getTax
// @Summary      Get a tax
// @Tags         catalog
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Tax ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.TaxResponse]
// @Router       /catalog/taxes/{id} [get]
func (h *CatalogHandler) GetTax(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "tax")
	if !ok {
		return
	}
	tax, err := h.taxes.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// ListTaxes godoc
// @ID           listTaxes
// @Summary      List taxes
// @Tags         catalog
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query catalogapp.TaxListFilter false "Filter"
// @Success      200 {object} APIResponse[[]catalogapp.TaxResponse]
// @Router       /catalog/taxes [get]
func (h *CatalogHandler) ListTaxes(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter catalogapp.TaxListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.taxes.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateTax godoc
// @ID           updateTax
// @Summary      Update a tax
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Tax ID" format(uuid)
// @Param        request body catalogapp.UpdateTaxRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.TaxResponse]
// @Router       /catalog/taxes/{id} [put]
func (h *CatalogHandler) UpdateTax(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "tax")
	if !ok {
		return
	}
	var req catalogapp.UpdateTaxRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tax, err := h.taxes.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// DeleteTax godoc
// @ID           deleteTax
// @Summary      Delete a tax
// @Tags         catalog
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Tax ID" format(uuid)
// @Success      204
// @Router       /catalog/taxes/{id} [delete]
func (h *CatalogHandler) DeleteTax(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "tax")
	if !ok {
		return
	}
	if err := h.taxes.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
