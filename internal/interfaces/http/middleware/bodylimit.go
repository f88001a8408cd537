package middleware

import (
	"fmt"
	"net/http"

	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused up front; chunked bodies fail when the handler reads
// past it. maxBytes <= 0 disables the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	msg := fmt.Sprintf("Request body exceeds %d bytes", maxBytes)
	return func(c *gin.Context) {
		req := c.Request
		if maxBytes <= 0 || req.Body == nil || req.Body == http.NoBody {
			c.Next()
			return
		}
		if req.ContentLength > maxBytes {
			ctx := req.Context()
			logger.L(ctx).Warn("Request body rejected",
				zap.Int64("content_length", req.ContentLength),
				zap.Int64("limit", maxBytes))
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeTooLarge, msg, logger.GetRequestID(ctx), ""))
			return
		}
		req.Body = http.MaxBytesReader(c.Writer, req.Body, maxBytes)
		c.Next()
	}
}
