package posting

import (
	"context"
	"testing"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.AccountGroup, error) {
	args := m.Called(ctx, tenantID, code)
	if g := args.Get(0); g != nil {
		return g.(*accounting.AccountGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGroupRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]accounting.AccountGroup, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]accounting.AccountGroup), args.Error(1)
}

func (m *mockGroupRepo) CreateIfAbsent(ctx context.Context, group *accounting.AccountGroup) (bool, error) {
	args := m.Called(ctx, group)
	return args.Bool(0), args.Error(1)
}

type mockLedgerRepo struct {
	mock.Mock
}

func (m *mockLedgerRepo) ledger(args mock.Arguments) (*accounting.Ledger, error) {
	if l := args.Get(0); l != nil {
		return l.(*accounting.Ledger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLedgerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Ledger, error) {
	return m.ledger(m.Called(ctx, tenantID, id))
}

func (m *mockLedgerRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Ledger, error) {
	return m.ledger(m.Called(ctx, tenantID, code))
}

func (m *mockLedgerRepo) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*accounting.Ledger, error) {
	return m.ledger(m.Called(ctx, tenantID, name))
}

func (m *mockLedgerRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerFilter) ([]*accounting.Ledger, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*accounting.Ledger), args.Get(1).(int64), args.Error(2)
}

func (m *mockLedgerRepo) CreateIfAbsent(ctx context.Context, ledger *accounting.Ledger) (bool, error) {
	args := m.Called(ctx, ledger)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedgerRepo) Save(ctx context.Context, ledger *accounting.Ledger) error {
	return m.Called(ctx, ledger).Error(0)
}

func (m *mockLedgerRepo) LockForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*accounting.Ledger, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]*accounting.Ledger), args.Error(1)
}

func (m *mockLedgerRepo) UpdateBalance(ctx context.Context, ledger *accounting.Ledger) error {
	return m.Called(ctx, ledger).Error(0)
}

func TestResolve_ByCodeIsMemoized(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	sales := accounting.NewSystemLedger(tenantID, "SALES", "Sales Account", uuid.New())
	ledgers.On("FindByCode", ctx, tenantID, "SALES").Return(sales, nil).Once()

	r := NewSystemLedgerResolver(tenantID, groups, ledgers)
	first, err := r.Resolve(ctx, accounting.LedgerSales)
	require.NoError(t, err)
	second, err := r.Resolve(ctx, accounting.LedgerSales)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Empty(t, r.Created())
	ledgers.AssertExpectations(t)
}

func TestResolve_FallsBackToExactName(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	legacy := accounting.NewLedger(tenantID, "L-0042", "Output CGST", uuid.New(), decimal.Zero, accounting.SideCredit)
	ledgers.On("FindByCode", ctx, tenantID, "OUTPUT_CGST").Return(nil, shared.ErrNotFound)
	ledgers.On("FindByName", ctx, tenantID, "Output CGST").Return(legacy, nil)

	l, err := NewSystemLedgerResolver(tenantID, groups, ledgers).Resolve(ctx, accounting.LedgerOutputCGST)
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, l.ID)
	groups.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_CreatesUnderGroup(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	group := accounting.NewAccountGroup(tenantID, accounting.GroupDirectExpenses, "Direct Expenses", accounting.NatureExpenses, nil, "")
	ledgers.On("FindByCode", ctx, tenantID, "COGS").Return(nil, shared.ErrNotFound)
	ledgers.On("FindByName", ctx, tenantID, "Cost of Goods Sold").Return(nil, shared.ErrNotFound)
	groups.On("FindByCode", ctx, tenantID, accounting.GroupDirectExpenses).Return(group, nil)
	ledgers.On("CreateIfAbsent", ctx, mock.MatchedBy(func(l *accounting.Ledger) bool {
		return l.Code == "COGS" && l.IsSystem && l.AccountGroupID == group.ID
	})).Return(true, nil)

	r := NewSystemLedgerResolver(tenantID, groups, ledgers)
	l, err := r.Resolve(ctx, accounting.LedgerCOGS)
	require.NoError(t, err)

	assert.Equal(t, accounting.SideDebit, l.OpeningSide)
	assert.True(t, l.OpeningBalance.IsZero())
	require.Len(t, r.Created(), 1)
	require.Len(t, r.Events(), 1)
	assert.Equal(t, accounting.EventTypeSystemLedgerCreated, r.Events()[0].EventType())
}

func TestResolve_LostRaceRefetchesWinner(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	group := accounting.NewAccountGroup(tenantID, accounting.GroupCashInHand, "Cash-in-Hand", accounting.NatureAssets, nil, "")
	winner := accounting.NewSystemLedger(tenantID, "CASH", "Cash", group.ID)
	ledgers.On("FindByCode", ctx, tenantID, "CASH").Return(nil, shared.ErrNotFound).Once()
	ledgers.On("FindByName", ctx, tenantID, "Cash").Return(nil, shared.ErrNotFound).Once()
	groups.On("FindByCode", ctx, tenantID, accounting.GroupCashInHand).Return(group, nil)
	ledgers.On("CreateIfAbsent", ctx, mock.Anything).Return(false, nil)
	ledgers.On("FindByCode", ctx, tenantID, "CASH").Return(winner, nil).Once()

	r := NewSystemLedgerResolver(tenantID, groups, ledgers)
	l, err := r.Resolve(ctx, accounting.LedgerCash)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, l.ID)
	assert.Empty(t, r.Created(), "the losing transaction created nothing")
	assert.Empty(t, r.Events())
}

func TestResolve_MissingGroupIsChartInconsistency(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	ledgers.On("FindByCode", ctx, tenantID, "SALES").Return(nil, shared.ErrNotFound)
	ledgers.On("FindByName", ctx, tenantID, "Sales Account").Return(nil, shared.ErrNotFound)
	groups.On("FindByCode", ctx, tenantID, accounting.GroupSalesAccounts).Return(nil, shared.ErrNotFound)

	_, err := NewSystemLedgerResolver(tenantID, groups, ledgers).Resolve(ctx, accounting.LedgerSales)
	require.ErrorIs(t, err, accounting.ErrChartInconsistent)
	ledgers.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestResolve_NameOnlyDefinitionDerivesCode(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups := new(mockGroupRepo)
	ledgers := new(mockLedgerRepo)
	group := accounting.NewAccountGroup(tenantID, accounting.GroupDutiesAndTaxes, "Duties & Taxes", accounting.NatureLiabilities, nil, "")
	ledgers.On("FindByName", ctx, tenantID, "Output Cess").Return(nil, shared.ErrNotFound)
	groups.On("FindByCode", ctx, tenantID, accounting.GroupDutiesAndTaxes).Return(group, nil)
	ledgers.On("CreateIfAbsent", ctx, mock.Anything).Return(true, nil)

	l, err := NewSystemLedgerResolver(tenantID, groups, ledgers).
		Resolve(ctx, accounting.SystemLedger{Name: "Output Cess", GroupCode: accounting.GroupDutiesAndTaxes})
	require.NoError(t, err)
	assert.Equal(t, "OUTPUT_CESS", l.Code)
	ledgers.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything, mock.Anything)
}
