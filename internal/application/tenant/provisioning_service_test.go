package tenant_test

import (
	"testing"
	"time"

	apptenant "github.com/erp/posting/internal/application/tenant"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/event"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/infrastructure/persistence"
	"github.com/erp/posting/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newProvisioning(t *testing.T) (*apptenant.ProvisioningService, *gorm.DB) {
	db := testutil.NewSQLiteDB(t)
	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(event.NewEventSerializer()))
	return apptenant.NewProvisioningService(scope, accounting.BusinessTrader, zaptest.NewLogger(t)), db
}

func TestProvision_SeedsChartAndLedgers(t *testing.T) {
	svc, _ := newProvisioning(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	tenantID := testutil.TestTenantID()

	resp, err := svc.Provision(ctx, tenantID, apptenant.ProvisionRequest{BusinessType: "manufacturer"})
	require.NoError(t, err)

	assert.Equal(t, "manufacturer", resp.BusinessType)
	assert.Equal(t, len(accounting.DefaultChart(accounting.BusinessManufacturer)), resp.GroupsCreated)
	assert.Len(t, resp.LedgersCreated, len(accounting.CanonicalLedgers()))

	profile, err := svc.GetProfile(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, accounting.BusinessManufacturer, profile.BusinessType)
}

func TestProvision_IsIdempotentAndKeepsFirstBusinessType(t *testing.T) {
	svc, _ := newProvisioning(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	tenantID := testutil.TestTenantID()

	_, err := svc.Provision(ctx, tenantID, apptenant.ProvisionRequest{BusinessType: "service"})
	require.NoError(t, err)

	again, err := svc.Provision(ctx, tenantID, apptenant.ProvisionRequest{BusinessType: "trader"})
	require.NoError(t, err)
	assert.Equal(t, "service", again.BusinessType)
	assert.Zero(t, again.GroupsCreated)
	assert.Empty(t, again.LedgersCreated)
}

func TestProvision_ServiceChartRenamesSalesGroup(t *testing.T) {
	svc, db := newProvisioning(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	tenantID := testutil.TestTenantID()

	_, err := svc.Provision(ctx, tenantID, apptenant.ProvisionRequest{BusinessType: "service"})
	require.NoError(t, err)

	groups := persistence.NewGormAccountGroupRepository(db)
	scoped := logger.WithTenantID(ctx, tenantID.String())
	sales, err := groups.FindByCode(scoped, tenantID, accounting.GroupSalesAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Income from Services", sales.Name)

	duties, err := groups.FindByCode(scoped, tenantID, accounting.GroupDutiesAndTaxes)
	require.NoError(t, err)
	liabilities, err := groups.FindByCode(scoped, tenantID, accounting.GroupCurrentLiabilities)
	require.NoError(t, err)
	require.NotNil(t, duties.ParentID)
	assert.Equal(t, liabilities.ID, *duties.ParentID)
}

func TestProvision_RejectsUnknownBusinessType(t *testing.T) {
	svc, _ := newProvisioning(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	_, err := svc.Provision(ctx, testutil.TestTenantID(), apptenant.ProvisionRequest{BusinessType: "farm"})
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProvision_TenantsAreIsolated(t *testing.T) {
	svc, _ := newProvisioning(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	a, err := svc.Provision(ctx, testutil.NewTestUUID("a"), apptenant.ProvisionRequest{})
	require.NoError(t, err)
	b, err := svc.Provision(ctx, testutil.NewTestUUID("b"), apptenant.ProvisionRequest{})
	require.NoError(t, err)

	assert.Equal(t, a.GroupsCreated, b.GroupsCreated)
	assert.Equal(t, len(a.LedgersCreated), len(b.LedgersCreated))
	assert.Equal(t, "trader", b.BusinessType)
}
