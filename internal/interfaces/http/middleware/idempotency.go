package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader names a client-chosen key for a mutating request
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader is set on responses served from the store
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency makes POST requests carrying an Idempotency-Key safe to retry.
// The first request reserves the key and its response is stored. Retries get
// the stored response, or 409 while the first request is still running.
// Server errors release the key so the request can be retried.
//
// Keys are scoped by tenant, method and path. Requests without the header
// pass through untouched.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || clientKey == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		requestID := logger.GetRequestID(ctx)
		if len(clientKey) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", requestID, ""))
			return
		}

		key := scopedKey(c, clientKey)
		log := logger.WithLogger(ctx, cfg.Logger).With(zap.String("idempotency_key", clientKey))

		reserved, err := cfg.Store.Reserve(ctx, key, cfg.TTL)
		if err != nil {
			// the store is an optimization over the posting state checks, not a lock
			log.Warn("idempotency store unavailable, processing without replay", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			replay(c, cfg.Store, key, requestID, log)
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		// the client may have gone away, the outcome must still be recorded
		storeCtx := context.WithoutCancel(ctx)
		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := cfg.Store.Release(storeCtx, key); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
			return
		}
		result := shared.IdempotentResult{StatusCode: status, Body: writer.body.Bytes()}
		if err := cfg.Store.Complete(storeCtx, key, result, cfg.TTL); err != nil {
			log.Warn("failed to store idempotent response", zap.Error(err))
		}
	}
}

func replay(c *gin.Context, store shared.IdempotencyStore, key, requestID string, log *logger.ContextLogger) {
	result, found, err := store.Lookup(c.Request.Context(), key)
	if err != nil {
		log.Warn("idempotency lookup failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal, "Idempotency store unavailable, retry later", requestID, ""))
		return
	}
	if !found || result == nil {
		c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeIdempotencyConflict, "A request with this Idempotency-Key is in progress", requestID, ""))
		return
	}

	log.Info("replaying idempotent response", zap.Int("status", result.StatusCode))
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(result.StatusCode, "application/json; charset=utf-8", result.Body)
	c.Abort()
}

func scopedKey(c *gin.Context, clientKey string) string {
	tenant := c.GetHeader(TenantHeaderKey)
	if id, ok := GetTenantID(c); ok {
		tenant = id.String()
	}
	return tenant + "|" + c.Request.Method + " " + c.Request.URL.Path + "|" + clientKey
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
