package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerInput struct {
	Code string `json:"code" binding:"required,max=5"`
	Side string `json:"opening_side" binding:"omitempty,oneof=Dr Cr"`
}

func validationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	router := gin.New()
	router.POST("/ledgers", func(c *gin.Context) {
		var in ledgerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func TestHandleValidationError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   string
		wantFields []string
	}{
		{"field rules", `{"code":"TOOLONG","opening_side":"Debit"}`, dto.ErrCodeValidation, []string{"code", "opening_side"}},
		{"missing field", `{}`, dto.ErrCodeValidation, []string{"code"}},
		{"malformed json", `{"code":`, dto.ErrCodeInvalidJSON, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			validationRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ledgers", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)

			var fields []string
			for _, d := range resp.Error.Details {
				fields = append(fields, d.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}
