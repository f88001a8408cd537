package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	domain "github.com/erp/posting/internal/domain/posting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
)

// Result is what one posting wrote
type Result struct {
	Kind               domain.Kind
	Lines              []domain.EntryLine
	Entries            []accounting.VoucherLedgerEntry
	Totals             accounting.Totals
	Taxes              domain.TaxTotals
	RefreshedLedgerIDs []uuid.UUID
	TDS                *accounting.TDSDetail
	CreatedLedgers     []*accounting.Ledger
	Events             []shared.DomainEvent
	Warnings           []domain.Warning
}

// Empty reports whether the posting produced no entries
func (r *Result) Empty() bool {
	return len(r.Entries) == 0
}

// Engine turns one voucher into ledger entries inside an open transaction.
// It never commits: the caller's TransactionScope decides.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine
func NewEngine() *Engine {
	return &Engine{now: func() time.Time { return time.Now().UTC() }}
}

// Post dispatches the voucher to its strategy, checks the balance invariant,
// writes the entries and any TDS record, and refreshes every touched ledger.
// The voucher's status is left to the caller.
func (e *Engine) Post(ctx context.Context, repos TransactionalRepositories, voucher *accounting.Voucher, manual []domain.EntryLine) (*Result, error) {
	if err := voucher.EnsurePostable(); err != nil {
		return nil, err
	}

	resolver := NewSystemLedgerResolver(voucher.TenantID, repos.AccountGroups(), repos.Ledgers())
	pc := domain.NewContext(voucher, resolver, repos.Inventory(), manual)
	outcome, err := domain.Dispatch(ctx, pc)
	if err != nil {
		return nil, err
	}

	totals, err := domain.CheckBalanced(outcome.Lines)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Kind:           outcome.Kind,
		Lines:          outcome.Lines,
		Totals:         totals,
		Taxes:          outcome.Taxes,
		CreatedLedgers: resolver.Created(),
		Events:         resolver.Events(),
		Warnings:       outcome.Warnings,
	}
	if len(outcome.Lines) == 0 {
		return result, nil
	}

	result.Entries = e.entriesFor(voucher, outcome.Lines)
	if err := repos.Entries().CreateBatch(ctx, result.Entries); err != nil {
		return nil, fmt.Errorf("write ledger entries: %w", err)
	}

	if outcome.Kind == domain.KindPurchase {
		result.TDS, err = e.recordTDS(ctx, repos, voucher, outcome.Taxes)
		if err != nil {
			return nil, err
		}
	}

	refreshed, err := NewBalanceUpdater(repos.Ledgers(), repos.Entries()).Refresh(ctx, voucher.TenantID, touchedLedgers(outcome.Lines))
	if err != nil {
		return nil, err
	}
	result.RefreshedLedgerIDs = make([]uuid.UUID, len(refreshed))
	for i, l := range refreshed {
		result.RefreshedLedgerIDs[i] = l.ID
	}
	return result, nil
}

func (e *Engine) entriesFor(voucher *accounting.Voucher, lines []domain.EntryLine) []accounting.VoucherLedgerEntry {
	now := e.now()
	entries := make([]accounting.VoucherLedgerEntry, len(lines))
	for i, l := range lines {
		entries[i] = accounting.VoucherLedgerEntry{
			ID:        uuid.New(),
			TenantID:  voucher.TenantID,
			VoucherID: voucher.ID,
			LedgerID:  l.LedgerID,
			Sequence:  i + 1,
			Debit:     l.Debit,
			Credit:    l.Credit,
			CreatedAt: now,
		}
	}
	return entries
}

// recordTDS writes the withholding record when the counterparty deducts TDS.
// The base is the taxable subtotal.
func (e *Engine) recordTDS(ctx context.Context, repos TransactionalRepositories, voucher *accounting.Voucher, taxes domain.TaxTotals) (*accounting.TDSDetail, error) {
	if voucher.PartyLedgerID == nil {
		return nil, nil
	}
	party, err := repos.Ledgers().FindByIDForTenant(ctx, voucher.TenantID, *voucher.PartyLedgerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.WrapDomainError(shared.ErrNotFound.Code, "party ledger not found", err)
		}
		return nil, fmt.Errorf("load party ledger: %w", err)
	}
	if !party.WithholdsTDS() || !taxes.Taxable.IsPositive() {
		return nil, nil
	}
	detail := accounting.NewTDSDetail(voucher, party, taxes.Taxable)
	if err := repos.TDSDetails().Save(ctx, detail); err != nil {
		return nil, fmt.Errorf("write tds detail: %w", err)
	}
	return detail, nil
}

// touchedLedgers lists the distinct ledgers of lines in first-seen order
func touchedLedgers(lines []domain.EntryLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.LedgerID]; ok {
			continue
		}
		seen[l.LedgerID] = struct{}{}
		ids = append(ids, l.LedgerID)
	}
	return ids
}
