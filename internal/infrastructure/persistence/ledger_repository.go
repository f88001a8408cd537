package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/persistence/models"
	"github.com/erp/posting/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByIDForTenant finds a ledger by ID within a tenant
func (r *GormLedgerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Ledger, error) {
	return r.findOne(ctx, tenantID, "id = ?", id)
}

// FindByCode finds a ledger by its tenant-unique code
func (r *GormLedgerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Ledger, error) {
	return r.findOne(ctx, tenantID, "code = ?", code)
}

// FindByName finds a ledger by exact name. Names are not unique; the oldest match wins.
func (r *GormLedgerRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*accounting.Ledger, error) {
	return r.findOne(ctx, tenantID, "name = ?", name)
}

func (r *GormLedgerRepository) findOne(ctx context.Context, tenantID uuid.UUID, query string, arg any) (*accounting.Ledger, error) {
	var model models.LedgerModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where(query, arg).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists ledgers with whitelisted ordering and bounded pages
func (r *GormLedgerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerFilter) ([]*accounting.Ledger, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerModel{}).Scopes(tenant.Scope(tenantID))
	if filter.GroupID != nil {
		query = query.Where("account_group_id = ?", *filter.GroupID)
	}
	if filter.SystemOnly {
		query = query.Where("is_system = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)
	page := max(filter.Page, 1)

	var rows []models.LedgerModel
	if err := query.
		Clauses(ledgerSort.orderBy(filter.SortBy, filter.SortOrder)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	ledgers := make([]*accounting.Ledger, len(rows))
	for i := range rows {
		ledgers[i] = rows[i].ToDomain()
	}
	return ledgers, total, nil
}

// CreateIfAbsent inserts the ledger with ON CONFLICT (tenant_id, code) DO NOTHING.
// A false result means another writer already holds the code and the caller must re-fetch.
func (r *GormLedgerRepository) CreateIfAbsent(ctx context.Context, ledger *accounting.Ledger) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(models.LedgerModelFromDomain(ledger))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Save updates the editable fields of an existing ledger. Balances are left to UpdateBalance.
func (r *GormLedgerRepository) Save(ctx context.Context, ledger *accounting.Ledger) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerModel{}).
		Scopes(tenant.Scope(ledger.TenantID)).
		Where("id = ?", ledger.ID).
		Updates(map[string]any{
			"code":             ledger.Code,
			"name":             ledger.Name,
			"account_group_id": ledger.AccountGroupID,
			"opening_balance":  ledger.OpeningBalance,
			"opening_side":     string(ledger.OpeningSide),
			"tds_applicable":   ledger.TDSApplicable,
			"tds_section":      ledger.TDSSection,
			"tds_rate":         ledger.TDSRate,
			"updated_at":       ledger.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LockForUpdate selects the ledgers FOR UPDATE in ascending id order so that
// concurrent postings touching overlapping ledgers acquire locks in one order.
func (r *GormLedgerRepository) LockForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*accounting.Ledger, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	var rows []models.LedgerModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(tenantID)).
		Where("id IN ?", sorted).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(sorted) {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("%d of %d ledgers not found", len(sorted)-len(rows), len(sorted)))
	}
	ledgers := make([]*accounting.Ledger, len(rows))
	for i := range rows {
		ledgers[i] = rows[i].ToDomain()
	}
	return ledgers, nil
}

// UpdateBalance writes the balance pair and nothing else
func (r *GormLedgerRepository) UpdateBalance(ctx context.Context, ledger *accounting.Ledger) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerModel{}).
		Scopes(tenant.Scope(ledger.TenantID)).
		Where("id = ?", ledger.ID).
		Updates(map[string]any{
			"current_balance": ledger.CurrentBalance,
			"balance_side":    string(ledger.BalanceSide),
			"updated_at":      ledger.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ accounting.LedgerRepository = (*GormLedgerRepository)(nil)
