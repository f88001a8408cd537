package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appposting "github.com/erp/posting/internal/application/posting"
	apptenant "github.com/erp/posting/internal/application/tenant"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/infrastructure/cache"
	"github.com/erp/posting/internal/infrastructure/event"
	"github.com/erp/posting/internal/infrastructure/persistence"
	"github.com/erp/posting/internal/interfaces/http/dto"
	"github.com/erp/posting/internal/interfaces/http/middleware"
	"github.com/erp/posting/internal/interfaces/http/router"
	"github.com/erp/posting/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := router.NewRouter(engine, router.WithAPIVersion("v2"), router.WithMiddleware(func(c *gin.Context) {
		c.Header("X-Group", "api")
		c.Next()
	}))

	group := router.NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }).
		POST("/echo", func(c *gin.Context) { c.String(http.StatusCreated, "echo") })
	assert.Equal(t, "test", group.Name())

	r.Register(group).Setup()

	tests := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/api/v2/test/ping", http.StatusOK, "pong"},
		{http.MethodPost, "/api/v2/test/echo", http.StatusCreated, "echo"},
		{http.MethodGet, "/api/v1/test/ping", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, w.Body.String())
			assert.Equal(t, "api", w.Header().Get("X-Group"))
		}
	}
}

func newAPI(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(event.NewEventSerializer()))
	log := zaptest.NewLogger(t)
	posting := appposting.NewService(scope, appposting.ServiceConfig{}, log)
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	return router.New(router.Config{
		ServiceName:    "posting-test",
		Version:        "test",
		MaxBodyBytes:   1 << 20,
		IdempotencyTTL: time.Minute,
	}, router.Dependencies{
		Vouchers:    posting,
		Ledgers:     posting,
		Tenants:     apptenant.NewProvisioningService(scope, accounting.BusinessTrader, log),
		Idempotency: store,
		Logger:      log,
	})
}

func TestAPI_SalesInvoiceLifecycle(t *testing.T) {
	api := newAPI(t)
	tenantID := uuid.New()
	headers := map[string]string{middleware.TenantHeaderKey: tenantID.String()}

	w := testutil.DoJSON(t, api, http.MethodPost, "/api/v1/tenant/provision", nil, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.DoJSON(t, api, http.MethodPost, "/api/v1/ledgers", map[string]any{
		"code":       "ACME",
		"name":       "Acme Traders",
		"group_code": accounting.GroupSundryDebtors,
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := testutil.DecodeData[appposting.LedgerResponse](t, w)

	w = testutil.DoJSON(t, api, http.MethodPost, "/api/v1/vouchers", map[string]any{
		"number":          "INV-1",
		"voucher_type":    string(accounting.VoucherSalesInvoice),
		"date":            time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		"party_ledger_id": customer.ID,
		"total_amount":    "1180",
		"items": []map[string]any{{
			"description":    "Widget",
			"quantity":       "10",
			"rate":           "100",
			"taxable_amount": "1000",
			"cgst_amount":    "90",
			"sgst_amount":    "90",
		}},
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	voucher := testutil.DecodeData[appposting.VoucherResponse](t, w)
	assert.Equal(t, "draft", voucher.Status)

	postPath := "/api/v1/vouchers/" + voucher.ID.String() + "/post"
	keyed := map[string]string{middleware.TenantHeaderKey: tenantID.String(), middleware.IdempotencyKeyHeader: "post-inv-1"}

	first := testutil.DoJSON(t, api, http.MethodPost, postPath, nil, keyed)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	posted := testutil.DecodeData[appposting.PostingResponse](t, first)
	assert.True(t, posted.Posted)
	assert.Len(t, posted.Entries, 4)
	assert.True(t, posted.TotalDebit.Equal(posted.TotalCredit))

	replayed := testutil.DoJSON(t, api, http.MethodPost, postPath, nil, keyed)
	assert.Equal(t, http.StatusOK, replayed.Code)
	assert.Equal(t, "true", replayed.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), replayed.Body.String())

	again := testutil.DoJSON(t, api, http.MethodPost, postPath, nil, headers)
	testutil.AssertErrorResponse(t, again, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = testutil.DoJSON(t, api, http.MethodGet, "/api/v1/ledgers/"+customer.ID.String(), nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	balance := testutil.DecodeData[appposting.LedgerResponse](t, w)
	assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(1180)), balance.CurrentBalance.String())
	assert.Equal(t, "Dr", balance.BalanceSide)
}

func TestAPI_TenantIsolationAndProbes(t *testing.T) {
	api := newAPI(t)

	w := testutil.DoJSON(t, api, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = testutil.DoJSON(t, api, http.MethodGet, "/api/v1/ledgers", nil, nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeTenantRequired)

	owner := map[string]string{middleware.TenantHeaderKey: uuid.NewString()}
	other := map[string]string{middleware.TenantHeaderKey: uuid.NewString()}
	require.Equal(t, http.StatusOK, testutil.DoJSON(t, api, http.MethodPost, "/api/v1/tenant/provision", nil, owner).Code)

	w = testutil.DoJSON(t, api, http.MethodGet, "/api/v1/ledgers?system_only=true", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	ledgers := testutil.DecodeData[[]appposting.LedgerResponse](t, w)
	require.NotEmpty(t, ledgers)

	w = testutil.DoJSON(t, api, http.MethodGet, "/api/v1/ledgers/"+ledgers[0].ID.String(), nil, other)
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}
