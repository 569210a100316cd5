package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/inventory"
)

// InventoryHandler serves stock levels, the movement ledger and adjustments
type InventoryHandler struct {
	BaseHandler
	stocks      *inventoryapp.StockService
	adjustments *inventoryapp.AdjustmentService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stocks *inventoryapp.StockService, adjustments *inventoryapp.AdjustmentService) *InventoryHandler {
	return &InventoryHandler{stocks: stocks, adjustments: adjustments}
}

// GetStock godoc
// @ID           getStock
// @Summary      Get a stock row
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Stock ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/stocks/{id} [get]
func (h *InventoryHandler) GetStock(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "stock")
	if !ok {
		return
	}
	stock, err := h.stocks.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListStocks godoc
// @ID           listStocks
// @Summary      List stock levels
// @Description  low_stock=true keeps rows below the product's minimum
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query inventoryapp.StockListFilter false "Filter"
// @Success      200 {object} APIResponse[[]inventoryapp.StockResponse]
// @Router       /inventory/stocks [get]
func (h *InventoryHandler) ListStocks(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter inventoryapp.StockListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.stocks.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ExportStocks godoc
// @ID           exportStocks
// @Summary      Export stock levels as xlsx
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query inventoryapp.StockListFilter false "Filter"
// @Success      200 {file} file
// @Router       /inventory/stocks/export [get]
func (h *InventoryHandler) ExportStocks(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter inventoryapp.StockListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.sendXLSX(c, "stocks", func(w io.Writer) error {
		return h.stocks.Export(c.Request.Context(), tenantID, filter, w)
	})
}

// ListMovements godoc
// @ID           listMovements
// @Summary      List stock movements
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query inventoryapp.MovementListFilter false "Filter"
// @Success      200 {object} APIResponse[[]inventoryapp.MovementResponse]
// @Router       /inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter inventoryapp.MovementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.stocks.ListMovements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CreateAdjustment godoc
// @ID           createAdjustment
// @Summary      Create a draft stock adjustment
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body inventoryapp.CreateAdjustmentRequest true "Adjustment"
// @Success      201 {object} APIResponse[inventoryapp.AdjustmentResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateAdjustmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	adj, err := h.adjustments.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, adj)
}

// GetAdjustment godoc
// @ID           getAdjustment
// @Summary      Get a stock adjustment
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Adjustment ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.AdjustmentResponse]
// @Router       /inventory/adjustments/{id} [get]
func (h *InventoryHandler) GetAdjustment(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "adjustment")
	if !ok {
		return
	}
	adj, err := h.adjustments.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, adj)
}

// ListAdjustments godoc
// @ID           listAdjustments
// @Summary      List stock adjustments
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query inventoryapp.AdjustmentListFilter false "Filter"
// @Success      200 {object} APIResponse[[]inventoryapp.AdjustmentResponse]
// @Router       /inventory/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter inventoryapp.AdjustmentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.adjustments.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateAdjustment godoc
// @ID           updateAdjustment
// @Summary      Replace a draft adjustment
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Adjustment ID" format(uuid)
// @Param        request body inventoryapp.UpdateAdjustmentRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.AdjustmentResponse]
// @Failure      422 {object} ErrorResponse "Adjustment is not a draft"
// @Router       /inventory/adjustments/{id} [put]
func (h *InventoryHandler) UpdateAdjustment(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "adjustment")
	if !ok {
		return
	}
	var req inventoryapp.UpdateAdjustmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	adj, err := h.adjustments.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, adj)
}

// PostAdjustment godoc
// @ID           postAdjustment
// @Summary      Post an adjustment to stock
// @Description  Runs in one database transaction. Send Idempotency-Key to make retries safe.
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        Idempotency-Key header string false "Client key for safe retries"
// @Param        id path string true "Adjustment ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.AdjustmentResponse]
// @Failure      409 {object} ErrorResponse "Idempotency-Key already used"
// @Failure      422 {object} ErrorResponse "Insufficient stock or not a draft"
// @Router       /inventory/adjustments/{id}/post [post]
func (h *InventoryHandler) PostAdjustment(c *gin.Context) {
	h.transition(c, h.adjustments.Post)
}

// CancelAdjustment godoc
// @ID           cancelAdjustment
// @Summary      Cancel a draft adjustment
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Adjustment ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.AdjustmentResponse]
// @Router       /inventory/adjustments/{id}/cancel [post]
func (h *InventoryHandler) CancelAdjustment(c *gin.Context) {
	h.transition(c, h.adjustments.Cancel)
}

func (h *InventoryHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.AdjustmentResponse, error)) {
	tenantID, id, ok := h.tenantAndID(c, "adjustment")
	if !ok {
		return
	}
	adj, err := fn(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, adj)
}

// DeleteAdjustment godoc
// @ID           deleteAdjustment
// @Summary      Delete a draft adjustment
// @Tags         inventory
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Adjustment ID" format(uuid)
// @Success      204
// @Router       /inventory/adjustments/{id} [delete]
func (h *InventoryHandler) DeleteAdjustment(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "adjustment")
	if !ok {
		return
	}
	if err := h.adjustments.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
