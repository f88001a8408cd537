package handler

import (
	"net/http"
	"testing"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/erp/posting/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ledgerEngine(svc *mockPostingService) *gin.Engine {
	h := NewLedgerHandler(svc)
	engine := newEngine()
	engine.POST("/ledgers", h.Create)
	engine.GET("/ledgers", h.List)
	engine.GET("/ledgers/:id", h.Get)
	engine.POST("/ledgers/:id/refresh", h.Refresh)
	return engine
}

func TestLedgerHandler_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("CreateLedger", mock.Anything, tenantID, mock.MatchedBy(func(req appposting.CreateLedgerRequest) bool {
			return req.Code == "CUST-ACME" && req.OpeningSide == "Dr" && req.OpeningBalance.Equal(decimal.NewFromInt(2500))
		})).Return(&appposting.LedgerResponse{ID: uuid.New(), Code: "CUST-ACME", BalanceSide: "Dr"}, nil)

		body := map[string]any{
			"code":            "CUST-ACME",
			"name":            "Acme Traders",
			"group_code":      "SUNDRY_DEBTORS",
			"opening_balance": "2500",
			"opening_side":    "Dr",
		}
		w := testutil.DoJSON(t, ledgerEngine(svc), http.MethodPost, "/ledgers", body, tenantHeader(tenantID))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "CUST-ACME", testutil.DecodeData[appposting.LedgerResponse](t, w).Code)
	})

	t.Run("rejects an unknown side spelling", func(t *testing.T) {
		body := map[string]any{"code": "X", "name": "X", "group_code": "G", "opening_side": "Debit"}
		w := testutil.DoJSON(t, ledgerEngine(new(mockPostingService)), http.MethodPost, "/ledgers", body, tenantHeader(tenantID))

		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("CreateLedger", mock.Anything, tenantID, mock.Anything).
			Return(nil, shared.NewDomainError("INVALID_INPUT", "unknown account group NOPE"))

		body := map[string]any{"code": "X", "name": "X", "group_code": "NOPE"}
		w := testutil.DoJSON(t, ledgerEngine(svc), http.MethodPost, "/ledgers", body, tenantHeader(tenantID))

		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})
}

func TestLedgerHandler_List(t *testing.T) {
	tenantID := uuid.New()

	t.Run("applies paging defaults", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("ListLedgers", mock.Anything, tenantID, appposting.LedgerListFilter{Page: 1, PageSize: 50, SystemOnly: true}).
			Return([]appposting.LedgerResponse{{Code: "SALES"}, {Code: "CGST_OUTPUT"}}, int64(2), nil)

		w := testutil.DoJSON(t, ledgerEngine(svc), http.MethodGet, "/ledgers?system_only=true", nil, tenantHeader(tenantID))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := testutil.DecodeEnvelope(t, w)
		assert.Contains(t, string(env.Meta), `"total":2`)
		assert.Len(t, testutil.DecodeData[[]appposting.LedgerResponse](t, w), 2)
		svc.AssertExpectations(t)
	})

	t.Run("rejects an oversized page", func(t *testing.T) {
		w := testutil.DoJSON(t, ledgerEngine(new(mockPostingService)), http.MethodGet, "/ledgers?page_size=1000", nil, tenantHeader(tenantID))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestLedgerHandler_GetAndRefresh(t *testing.T) {
	tenantID := uuid.New()
	ledgerID := uuid.New()

	svc := new(mockPostingService)
	svc.On("GetLedger", mock.Anything, tenantID, ledgerID).
		Return(&appposting.LedgerResponse{ID: ledgerID, CurrentBalance: decimal.NewFromInt(1180), BalanceSide: "Dr"}, nil)
	svc.On("RefreshLedger", mock.Anything, tenantID, ledgerID).
		Return(&appposting.LedgerResponse{ID: ledgerID, CurrentBalance: decimal.NewFromInt(1180), BalanceSide: "Dr"}, nil)
	engine := ledgerEngine(svc)

	got := testutil.DoJSON(t, engine, http.MethodGet, "/ledgers/"+ledgerID.String(), nil, tenantHeader(tenantID))
	refreshed := testutil.DoJSON(t, engine, http.MethodPost, "/ledgers/"+ledgerID.String()+"/refresh", nil, tenantHeader(tenantID))

	require.Equal(t, http.StatusOK, got.Code)
	require.Equal(t, http.StatusOK, refreshed.Code)
	assert.True(t, testutil.DecodeData[appposting.LedgerResponse](t, got).CurrentBalance.Equal(decimal.NewFromInt(1180)))
	assert.JSONEq(t, got.Body.String(), refreshed.Body.String())
	svc.AssertExpectations(t)

	missing := uuid.New()
	svc.On("RefreshLedger", mock.Anything, tenantID, missing).Return(nil, shared.ErrNotFound)
	w := testutil.DoJSON(t, engine, http.MethodPost, "/ledgers/"+missing.String()+"/refresh", nil, tenantHeader(tenantID))
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}
