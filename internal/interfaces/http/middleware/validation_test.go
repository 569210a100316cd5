package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationRequest struct {
	Code  string           `json:"code" binding:"required,upper_code"`
	Email string           `json:"email" binding:"omitempty,email"`
	Price decimal.Decimal  `json:"price" binding:"decimal_gte0"`
	Cost  *decimal.Decimal `json:"cost" binding:"omitempty,decimal_gte0"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidation(t *testing.T) {
	router := validationRouter()

	t.Run("valid request", func(t *testing.T) {
		w := postJSON(router, `{"code":"wh-01","price":"10.5","cost":"0"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		w := postJSON(router, `{"code":"WH 01","email":"nope","price":"-1","cost":"-2"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Tag
		}
		assert.Equal(t, map[string]string{
			"code":  "upper_code",
			"email": "email",
			"price": "decimal_gte0",
			"cost":  "decimal_gte0",
		}, fields)
	})

	t.Run("malformed json has no details", func(t *testing.T) {
		w := postJSON(router, `{"code":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), `"details"`)
	})
}
