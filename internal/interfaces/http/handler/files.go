package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/export"
)

// uploadField is the multipart form field holding uploaded files
const uploadField = "file"

// formFile opens the uploaded file; callers close it
func (h *BaseHandler) formFile(c *gin.Context) (multipart.File, string, bool) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		h.BadRequest(c, "Multipart field 'file' is required")
		return nil, "", false
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return nil, "", false
	}
	return f, header.Filename, true
}

// sendXLSX renders a workbook into memory first so failures still produce a
// JSON error instead of a truncated download.
func (h *BaseHandler) sendXLSX(c *gin.Context, basename string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("%s-%s.xlsx", basename, time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
