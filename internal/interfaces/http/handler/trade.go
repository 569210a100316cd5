package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/trade"
)

// TradeHandler serves purchase and sales orders
type TradeHandler struct {
	BaseHandler
	purchases *tradeapp.PurchaseOrderService
	sales     *tradeapp.SalesOrderService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(purchases *tradeapp.PurchaseOrderService, sales *tradeapp.SalesOrderService) *TradeHandler {
	return &TradeHandler{purchases: purchases, sales: sales}
}


// CreatePurchaseOrder godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.CreatePurchaseOrderRequest true "Purchase order"
// @Success      201 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/purchase-orders [post]
func (h *TradeHandler) CreatePurchaseOrder(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req tradeapp.CreatePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.purchases.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetPurchaseOrder godoc
// @ID           getPurchaseOrder
// @Summary      Get a purchase order
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id} [get]
func (h *TradeHandler) GetPurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	order, err := h.purchases.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListPurchaseOrders godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query tradeapp.PurchaseOrderListFilter false "Filter"
// @Success      200 {object} APIResponse[[]tradeapp.PurchaseOrderResponse]
// @Router       /trade/purchase-orders [get]
func (h *TradeHandler) ListPurchaseOrders(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter tradeapp.PurchaseOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.purchases.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdatePurchaseOrder godoc
// @ID           updatePurchaseOrder
// @Summary      Update a purchase order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Param        request body tradeapp.UpdatePurchaseOrderRequest true "Changes"
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id} [put]
func (h *TradeHandler) UpdatePurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	var req tradeapp.UpdatePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.purchases.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeletePurchaseOrder godoc
// @ID           deletePurchaseOrder
// @Summary      Delete a purchase order
// @Tags         trade
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id} [delete]
func (h *TradeHandler) DeletePurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	if err := h.purchases.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConfirmPurchaseOrder godoc
// @ID           confirmPurchaseOrder
// @Summary      Confirm a draft purchase order
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id}/confirm [post]
func (h *TradeHandler) ConfirmPurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	order, err := h.purchases.Confirm(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ReceivePurchaseOrder godoc
// @ID           receivePurchaseOrder
// @Summary      Receive goods against a purchase order
// @Description  Partial receipts are allowed. Stock is posted in the same transaction.
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        Idempotency-Key header string false "Client key for safe retries"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Param        request body tradeapp.FulfilRequest true "Request"
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      409 {object} ErrorResponse "Idempotency-Key already used"
// @Failure      422 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id}/receive [post]
func (h *TradeHandler) ReceivePurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	var req tradeapp.FulfilRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.purchases.Receive(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelPurchaseOrder godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel a purchase order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Purchase order ID" format(uuid)
// @Param        request body tradeapp.CancelOrderRequest false "Request"
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /trade/purchase-orders/{id}/cancel [post]
func (h *TradeHandler) CancelPurchaseOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "purchase order")
	if !ok {
		return
	}
	var req tradeapp.CancelOrderRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	order, err := h.purchases.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CreateSalesOrder godoc
// @ID           createSalesOrder
// @Summary      Create a sales order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.CreateSalesOrderRequest true "Sales order"
// @Success      201 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders [post]
func (h *TradeHandler) CreateSalesOrder(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req tradeapp.CreateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.sales.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetSalesOrder godoc
// @ID           getSalesOrder
// @Summary      Get a sales order
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /trade/sales-orders/{id} [get]
func (h *TradeHandler) GetSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	order, err := h.sales.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListSalesOrders godoc
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query tradeapp.SalesOrderListFilter false "Filter"
// @Success      200 {object} APIResponse[[]tradeapp.SalesOrderResponse]
// @Router       /trade/sales-orders [get]
func (h *TradeHandler) ListSalesOrders(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter tradeapp.SalesOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.sales.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateSalesOrder godoc
// @ID           updateSalesOrder
// @Summary      Update a sales order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body tradeapp.UpdateSalesOrderRequest true "Changes"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id} [put]
func (h *TradeHandler) UpdateSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	var req tradeapp.UpdateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.sales.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeleteSalesOrder godoc
// @ID           deleteSalesOrder
// @Summary      Delete a sales order
// @Tags         trade
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /trade/sales-orders/{id} [delete]
func (h *TradeHandler) DeleteSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConfirmSalesOrder godoc
// @ID           confirmSalesOrder
// @Summary      Confirm a draft sales order
// @Description  Checks the customer's credit limit.
// @Tags         trade
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/confirm [post]
func (h *TradeHandler) ConfirmSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	order, err := h.sales.Confirm(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeliverSalesOrder godoc
// @ID           deliverSalesOrder
// @Summary      Deliver goods for a sales order
// @Description  Partial deliveries are allowed. Stock is posted in the same transaction.
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        Idempotency-Key header string false "Client key for safe retries"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body tradeapp.FulfilRequest true "Request"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      409 {object} ErrorResponse "Idempotency-Key already used"
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/deliver [post]
func (h *TradeHandler) DeliverSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	var req tradeapp.FulfilRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.sales.Deliver(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelSalesOrder godoc
// @ID           cancelSalesOrder
// @Summary      Cancel a sales order
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales order ID" format(uuid)
// @Param        request body tradeapp.CancelOrderRequest false "Request"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/cancel [post]
func (h *TradeHandler) CancelSalesOrder(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "sales order")
	if !ok {
		return
	}
	var req tradeapp.CancelOrderRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	order, err := h.sales.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
