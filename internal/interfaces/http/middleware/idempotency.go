package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/dto"
)

// IdempotencyHeader is the request header carrying the client's idempotency key
const IdempotencyHeader = "Idempotency-Key"

var idempotencyKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// Idempotency copies the Idempotency-Key header into the request context where
// posting services pick it up. Requests without the header pass through.
func Idempotency() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}
		if !idempotencyKeyPattern.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key must be 1-128 characters of letters, digits, '.', '_', ':' or '-'",
				c.GetString(RequestIDKey),
			))
			return
		}
		c.Request = c.Request.WithContext(shared.ContextWithIdempotencyKey(c.Request.Context(), key))
		c.Next()
	}
}
