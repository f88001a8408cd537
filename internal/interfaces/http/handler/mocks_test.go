package handler

import (
	"context"

	appposting "github.com/erp/posting/internal/application/posting"
	apptenant "github.com/erp/posting/internal/application/tenant"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newEngine wires the tenant middleware the way the router does
func newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Tenant(middleware.DefaultTenantConfig()))
	return engine
}

type mockPostingService struct {
	mock.Mock
}

func (m *mockPostingService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req appposting.CreateVoucherRequest) (*appposting.VoucherResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.VoucherResponse), args.Error(1)
}

func (m *mockPostingService) GetVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*appposting.VoucherResponse, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.VoucherResponse), args.Error(1)
}

func (m *mockPostingService) PostVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req appposting.PostVoucherRequest) (*appposting.PostingResponse, error) {
	args := m.Called(ctx, tenantID, voucherID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.PostingResponse), args.Error(1)
}

func (m *mockPostingService) ReverseVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req appposting.ReverseVoucherRequest) (*appposting.ReversalResponse, error) {
	args := m.Called(ctx, tenantID, voucherID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.ReversalResponse), args.Error(1)
}

func (m *mockPostingService) CancelVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*appposting.CancelResponse, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.CancelResponse), args.Error(1)
}

func (m *mockPostingService) CreateLedger(ctx context.Context, tenantID uuid.UUID, req appposting.CreateLedgerRequest) (*appposting.LedgerResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.LedgerResponse), args.Error(1)
}

func (m *mockPostingService) GetLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*appposting.LedgerResponse, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.LedgerResponse), args.Error(1)
}

func (m *mockPostingService) ListLedgers(ctx context.Context, tenantID uuid.UUID, filter appposting.LedgerListFilter) ([]appposting.LedgerResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]appposting.LedgerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostingService) RefreshLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*appposting.LedgerResponse, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appposting.LedgerResponse), args.Error(1)
}

type mockTenantService struct {
	mock.Mock
}

func (m *mockTenantService) Provision(ctx context.Context, tenantID uuid.UUID, req apptenant.ProvisionRequest) (*apptenant.ProvisionResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apptenant.ProvisionResponse), args.Error(1)
}

func (m *mockTenantService) GetProfile(ctx context.Context, tenantID uuid.UUID) (*accounting.TenantProfile, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.TenantProfile), args.Error(1)
}
