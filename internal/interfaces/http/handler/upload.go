package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kainnovads/apukainnovabe-sub001/internal/application/upload"
)

// UploadHandler stores generic files under a category
type UploadHandler struct {
	BaseHandler
	uploads *upload.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploads *upload.Service) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload godoc
// @ID           uploadFile
// @Summary      Upload a file
// @Description  Files are stored under the tenant. Images also get a JPEG thumbnail. The returned url is served under /uploads.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        category path string true "Category" example(products)
// @Param        file formData file true "File"
// @Success      201 {object} APIResponse[storage.StoredFile]
// @Failure      400 {object} ErrorResponse
// @Router       /uploads/{category} [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	file, filename, ok := h.formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	stored, err := h.uploads.Upload(c.Request.Context(), tenantID, c.Param("category"), filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, stored)
}

// Delete godoc
// @ID           deleteFile
// @Summary      Delete an uploaded file
// @Description  Only files uploaded by the same tenant can be deleted.
// @Tags         uploads
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        category path string true "Category"
// @Param        name path string true "Stored file name"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /uploads/{category}/{name} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	if err := h.uploads.Delete(c.Request.Context(), tenantID, c.Param("category"), c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
