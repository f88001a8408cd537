package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig(origins)), Secure())
	router.GET("/api/v1/ledgers", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		allowOrigin string
	}{
		{"whitelisted origin", []string{"https://books.example"}, http.MethodGet, "https://books.example", http.StatusOK, "https://books.example"},
		{"unknown origin", []string{"https://books.example"}, http.MethodGet, "https://evil.example", http.StatusForbidden, ""},
		{"empty whitelist", nil, http.MethodGet, "https://books.example", http.StatusForbidden, ""},
		{"same origin without header", nil, http.MethodGet, "", http.StatusOK, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example", http.StatusOK, "*"},
		{"preflight allowed", []string{"https://books.example"}, http.MethodOptions, "https://books.example", http.StatusNoContent, "https://books.example"},
		{"preflight rejected", []string{"https://books.example"}, http.MethodOptions, "https://evil.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/ledgers", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			corsRouter(tt.origins).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	corsRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ledgers", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
