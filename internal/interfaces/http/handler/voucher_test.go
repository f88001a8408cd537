package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/erp/posting/internal/interfaces/http/middleware"
	"github.com/erp/posting/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func voucherEngine(svc *mockPostingService) *gin.Engine {
	h := NewVoucherHandler(svc)
	engine := newEngine()
	engine.POST("/vouchers", h.Create)
	engine.GET("/vouchers/:id", h.Get)
	engine.POST("/vouchers/:id/post", h.Post)
	engine.POST("/vouchers/:id/reverse", h.Reverse)
	engine.POST("/vouchers/:id/cancel", h.Cancel)
	return engine
}

func tenantHeader(id uuid.UUID) map[string]string {
	return map[string]string{middleware.TenantHeaderKey: id.String()}
}

func TestVoucherHandler_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("drafts the voucher", func(t *testing.T) {
		svc := new(mockPostingService)
		created := &appposting.VoucherResponse{ID: uuid.New(), Number: "INV-1", Type: "sales_invoice", Status: "draft"}
		svc.On("CreateDraft", mock.Anything, tenantID, mock.MatchedBy(func(req appposting.CreateVoucherRequest) bool {
			return req.Number == "INV-1" && len(req.Items) == 1 && req.Items[0].CGSTAmount.Decimal.Equal(decimal.NewFromInt(90))
		})).Return(created, nil)

		body := map[string]any{
			"number":       "INV-1",
			"voucher_type": "sales_invoice",
			"date":         time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			"items":        []map[string]any{{"taxable_amount": "1000", "cgst_amount": "90", "sgst_amount": "90"}},
		}
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, "/vouchers", body, tenantHeader(tenantID))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		got := testutil.DecodeData[appposting.VoucherResponse](t, w)
		assert.Equal(t, created.ID, got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a body without a number", func(t *testing.T) {
		svc := new(mockPostingService)
		body := map[string]any{"voucher_type": "sales_invoice", "date": time.Now()}
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, "/vouchers", body, tenantHeader(tenantID))

		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		svc.AssertNotCalled(t, "CreateDraft", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires a tenant", func(t *testing.T) {
		svc := new(mockPostingService)
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, "/vouchers", map[string]any{"number": "X"}, nil)

		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeTenantRequired)
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("CreateDraft", mock.Anything, tenantID, mock.Anything).
			Return(nil, shared.NewDomainError("ALREADY_EXISTS", "voucher number INV-1 already exists"))

		body := map[string]any{"number": "INV-1", "voucher_type": "sales_invoice", "date": time.Now()}
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, "/vouchers", body, tenantHeader(tenantID))

		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeAlreadyExists)
	})
}

func TestVoucherHandler_Get(t *testing.T) {
	tenantID := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		w := testutil.DoJSON(t, voucherEngine(new(mockPostingService)), http.MethodGet, "/vouchers/not-a-uuid", nil, tenantHeader(tenantID))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockPostingService)
		voucherID := uuid.New()
		svc.On("GetVoucher", mock.Anything, tenantID, voucherID).Return(nil, shared.ErrNotFound)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodGet, "/vouchers/"+voucherID.String(), nil, tenantHeader(tenantID))
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("found", func(t *testing.T) {
		svc := new(mockPostingService)
		voucherID := uuid.New()
		svc.On("GetVoucher", mock.Anything, tenantID, voucherID).
			Return(&appposting.VoucherResponse{ID: voucherID, Status: "posted"}, nil)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodGet, "/vouchers/"+voucherID.String(), nil, tenantHeader(tenantID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "posted", testutil.DecodeData[appposting.VoucherResponse](t, w).Status)
	})
}

func TestVoucherHandler_Post(t *testing.T) {
	tenantID := uuid.New()
	voucherID := uuid.New()
	path := "/vouchers/" + voucherID.String() + "/post"

	t.Run("without a body", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("PostVoucher", mock.Anything, tenantID, voucherID, appposting.PostVoucherRequest{}).
			Return(&appposting.PostingResponse{VoucherID: voucherID, Status: "posted", Posted: true}, nil)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, testutil.DecodeData[appposting.PostingResponse](t, w).Posted)
		svc.AssertExpectations(t)
	})

	t.Run("with journal lines", func(t *testing.T) {
		svc := new(mockPostingService)
		a, b := uuid.New(), uuid.New()
		svc.On("PostVoucher", mock.Anything, tenantID, voucherID, mock.MatchedBy(func(req appposting.PostVoucherRequest) bool {
			return len(req.Entries) == 2 && req.Entries[0].LedgerID == a && req.Entries[1].Credit.Equal(decimal.NewFromInt(500))
		})).Return(&appposting.PostingResponse{VoucherID: voucherID, Posted: true}, nil)

		body := map[string]any{"entries": []map[string]any{
			{"ledger_id": a, "debit": "500"},
			{"ledger_id": b, "credit": "500"},
		}}
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, body, tenantHeader(tenantID))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		svc.AssertExpectations(t)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already posted", shared.NewDomainError("INVALID_STATE", "voucher is already posted"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"unbalanced", accounting.ErrUnbalancedEntries, http.StatusInternalServerError, dto.ErrCodeUnbalancedEntries},
		{"chart inconsistent", fmt.Errorf("resolve SALES: %w", accounting.ErrChartInconsistent), http.StatusInternalServerError, dto.ErrCodeChartInconsistent},
		{"invalid entry", accounting.ErrInvalidEntry, http.StatusUnprocessableEntity, dto.ErrCodeInvalidEntry},
		{"optimistic lock", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockPostingService)
			svc.On("PostVoucher", mock.Anything, tenantID, voucherID, mock.Anything).Return(nil, tc.err)

			w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))
			testutil.AssertErrorResponse(t, w, tc.status, tc.code)
		})
	}

	t.Run("infrastructure errors are not echoed", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("PostVoucher", mock.Anything, tenantID, voucherID, mock.Anything).Return(nil, errors.New("pq: password authentication failed"))

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestVoucherHandler_Reverse(t *testing.T) {
	tenantID := uuid.New()
	voucherID := uuid.New()
	path := "/vouchers/" + voucherID.String() + "/reverse"

	t.Run("posts the note", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("ReverseVoucher", mock.Anything, tenantID, voucherID, mock.MatchedBy(func(req appposting.ReverseVoucherRequest) bool {
			return req.Number == "CN-1" && req.RestockOnReturn
		})).Return(&appposting.ReversalResponse{OriginalVoucherID: voucherID, OriginalStatus: "cancelled"}, nil)

		body := map[string]any{"number": "CN-1", "restock_on_return": true}
		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, body, tenantHeader(tenantID))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "cancelled", testutil.DecodeData[appposting.ReversalResponse](t, w).OriginalStatus)
	})

	t.Run("not reversible", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("ReverseVoucher", mock.Anything, tenantID, voucherID, mock.Anything).Return(nil, accounting.ErrNotReversible)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeNotReversible)
	})
}

func TestVoucherHandler_Cancel(t *testing.T) {
	tenantID := uuid.New()
	voucherID := uuid.New()
	path := "/vouchers/" + voucherID.String() + "/cancel"

	t.Run("disabled", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("CancelVoucher", mock.Anything, tenantID, voucherID).Return(nil, accounting.ErrDestructiveCancelDisabled)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeDestructiveCancelDisabled)
	})

	t.Run("cancelled", func(t *testing.T) {
		svc := new(mockPostingService)
		svc.On("CancelVoucher", mock.Anything, tenantID, voucherID).
			Return(&appposting.CancelResponse{VoucherID: voucherID, Status: "cancelled", DeletedEntries: 4}, nil)

		w := testutil.DoJSON(t, voucherEngine(svc), http.MethodPost, path, nil, tenantHeader(tenantID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(4), testutil.DecodeData[appposting.CancelResponse](t, w).DeletedEntries)
	})
}
