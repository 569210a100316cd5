package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/analytics"
)

// AnalyticsHandler serves association rules mined from sales orders
type AnalyticsHandler struct {
	BaseHandler
	associations *analyticsapp.AssociationService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(associations *analyticsapp.AssociationService) *AnalyticsHandler {
	return &AnalyticsHandler{associations: associations}
}

// GetAssociations godoc
// @ID           getAssociations
// @Summary      Product association rules
// @Description  FP-Growth over every sales order of the tenant. Results are cached per tenant and
// @Description  threshold pair; refresh=true recomputes them.
// @Tags         analytics
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        query query analyticsapp.AssociationQuery false "Threshold overrides"
// @Success      200 {object} APIResponse[analyticsapp.AssociationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /analytics/associations [get]
func (h *AnalyticsHandler) GetAssociations(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q analyticsapp.AssociationQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.associations.Rules(c.Request.Context(), tenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ExportAssociations godoc
// @ID           exportAssociations
// @Summary      Export association rules as xlsx
// @Tags         analytics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        query query analyticsapp.AssociationQuery false "Threshold overrides"
// @Success      200 {file} file
// @Router       /analytics/associations/export [get]
func (h *AnalyticsHandler) ExportAssociations(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q analyticsapp.AssociationQuery
	if !h.bindQuery(c, &q) {
		return
	}
	h.sendXLSX(c, "associations", func(w io.Writer) error {
		return h.associations.Export(c.Request.Context(), tenantID, q, w)
	})
}
