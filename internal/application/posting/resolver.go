package posting

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
)

// SystemLedgerResolver finds or lazily creates canonical ledgers for one tenant
// inside one transaction. Results are memoized, so strategies asking for the
// same ledger twice in a posting get the same row.
type SystemLedgerResolver struct {
	tenantID uuid.UUID
	groups   accounting.AccountGroupRepository
	ledgers  accounting.LedgerRepository

	memo    map[string]*accounting.Ledger
	created []*accounting.Ledger
	events  []shared.DomainEvent
}

// NewSystemLedgerResolver creates a resolver bound to the repositories of one transaction
func NewSystemLedgerResolver(tenantID uuid.UUID, groups accounting.AccountGroupRepository, ledgers accounting.LedgerRepository) *SystemLedgerResolver {
	return &SystemLedgerResolver{
		tenantID: tenantID,
		groups:   groups,
		ledgers:  ledgers,
		memo:     make(map[string]*accounting.Ledger),
	}
}

// Resolve looks the ledger up by code, then by exact name, and creates it under
// def.GroupCode when neither exists. A definition without a code is looked up by
// name only and created with a code derived from the name.
//
// Creation is an insert that does nothing on a (tenant, code) conflict; losing
// that race re-fetches the winner's row. A missing account group is a
// provisioning defect and fails with CHART_OF_ACCOUNTS_INCONSISTENT.
func (r *SystemLedgerResolver) Resolve(ctx context.Context, def accounting.SystemLedger) (*accounting.Ledger, error) {
	code := def.Code
	if code == "" {
		code = accounting.CodeFromName(def.Name)
	}
	if l, ok := r.memo[code]; ok {
		return l, nil
	}

	ledger, err := r.lookup(ctx, def)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		ledger, err = r.create(ctx, code, def)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("resolve ledger %s: %w", code, err)
	}

	r.memo[code] = ledger
	return ledger, nil
}

func (r *SystemLedgerResolver) lookup(ctx context.Context, def accounting.SystemLedger) (*accounting.Ledger, error) {
	if def.Code != "" {
		l, err := r.ledgers.FindByCode(ctx, r.tenantID, def.Code)
		if !errors.Is(err, shared.ErrNotFound) {
			return l, err
		}
	}
	if def.Name == "" {
		return nil, shared.ErrNotFound
	}
	return r.ledgers.FindByName(ctx, r.tenantID, def.Name)
}

func (r *SystemLedgerResolver) create(ctx context.Context, code string, def accounting.SystemLedger) (*accounting.Ledger, error) {
	group, err := r.groups.FindByCode(ctx, r.tenantID, def.GroupCode)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.WrapDomainError(accounting.CodeChartInconsistent, accounting.ErrChartInconsistent.Message,
			fmt.Errorf("account group %s required by ledger %s does not exist", def.GroupCode, code))
	}
	if err != nil {
		return nil, fmt.Errorf("load account group %s: %w", def.GroupCode, err)
	}

	name := def.Name
	if name == "" {
		name = code
	}
	ledger := accounting.NewSystemLedger(r.tenantID, code, name, group.ID)
	inserted, err := r.ledgers.CreateIfAbsent(ctx, ledger)
	if err != nil {
		return nil, fmt.Errorf("create ledger %s: %w", code, err)
	}
	if !inserted {
		existing, err := r.ledgers.FindByCode(ctx, r.tenantID, code)
		if err != nil {
			return nil, fmt.Errorf("re-fetch ledger %s after conflict: %w", code, err)
		}
		return existing, nil
	}

	r.created = append(r.created, ledger)
	r.events = append(r.events, accounting.NewSystemLedgerCreatedEvent(ledger, def.GroupCode))
	return ledger, nil
}

// Created returns the ledgers this resolver inserted
func (r *SystemLedgerResolver) Created() []*accounting.Ledger {
	return r.created
}

// Events returns SystemLedgerCreated events for the ledgers this resolver inserted
func (r *SystemLedgerResolver) Events() []shared.DomainEvent {
	return r.events
}
