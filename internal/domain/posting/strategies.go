package posting

import (
	"context"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

type taxLedgers struct {
	cgst, sgst, igst, cess accounting.SystemLedger
}

var (
	outputTaxLedgers = taxLedgers{accounting.LedgerOutputCGST, accounting.LedgerOutputSGST, accounting.LedgerOutputIGST, accounting.LedgerOutputCess}
	inputTaxLedgers  = taxLedgers{accounting.LedgerInputCGST, accounting.LedgerInputSGST, accounting.LedgerInputIGST, accounting.LedgerInputCess}
)

// addTaxLines posts CGST, SGST, IGST and cess, in that order, skipping zero totals
func (pc *Context) addTaxLines(ctx context.Context, b *lineBuilder, ledgers taxLedgers, t TaxTotals, side accounting.BalanceSide) error {
	parts := []struct {
		def    accounting.SystemLedger
		amount decimal.Decimal
	}{
		{ledgers.cgst, t.CGST},
		{ledgers.sgst, t.SGST},
		{ledgers.igst, t.IGST},
		{ledgers.cess, t.Cess},
	}
	for _, p := range parts {
		l, err := pc.resolveIfNonZero(ctx, p.def, p.amount)
		if err != nil {
			return err
		}
		if l != nil {
			b.add(l.ID, side, p.amount, p.def.Code)
		}
	}
	return nil
}

// addInventoryLines posts Dr COGS / Cr Stock-in-Hand for cost. Zero cost posts nothing.
func (pc *Context) addInventoryLines(ctx context.Context, b *lineBuilder, cost decimal.Decimal) error {
	if cost.IsZero() {
		return nil
	}
	cogs, err := pc.Ledgers.Resolve(ctx, accounting.LedgerCOGS)
	if err != nil {
		return err
	}
	stock, err := pc.Ledgers.Resolve(ctx, accounting.LedgerStockInHand)
	if err != nil {
		return err
	}
	b.debit(cogs.ID, cost, accounting.LedgerCOGS.Code)
	b.credit(stock.ID, cost, accounting.LedgerStockInHand.Code)
	return nil
}

func salesLines(ctx context.Context, pc *Context, withInventory bool) ([]EntryLine, error) {
	party := pc.Voucher.PartyLedgerID
	if party == nil {
		pc.warn(WarnMissingParty, "voucher "+pc.Voucher.Number+" has no counterparty ledger")
		return nil, nil
	}
	taxes := pc.aggregateTaxes()
	if taxes.Taxable.IsZero() {
		pc.warnIfZero(taxes.GrandTotal())
	}

	b := &lineBuilder{}
	b.debit(*party, taxes.GrandTotal(), "party")

	sales, err := pc.resolveIfNonZero(ctx, accounting.LedgerSales, taxes.Taxable)
	if err != nil {
		return nil, err
	}
	if sales != nil {
		b.credit(sales.ID, taxes.Taxable, accounting.LedgerSales.Code)
	}
	if err := pc.addTaxLines(ctx, b, outputTaxLedgers, taxes, accounting.SideCredit); err != nil {
		return nil, err
	}

	if withInventory {
		cost, err := pc.cogs(ctx)
		if err != nil {
			return nil, err
		}
		if err := pc.addInventoryLines(ctx, b, cost); err != nil {
			return nil, err
		}
	}
	return b.lines, nil
}

func purchaseLines(ctx context.Context, pc *Context) ([]EntryLine, error) {
	party := pc.Voucher.PartyLedgerID
	if party == nil {
		pc.warn(WarnMissingParty, "voucher "+pc.Voucher.Number+" has no counterparty ledger")
		return nil, nil
	}
	taxes := pc.aggregateTaxes()
	if taxes.Taxable.IsZero() && pc.warnIfZero(taxes.GrandTotal()) {
		return nil, nil
	}

	b := &lineBuilder{}
	// Perpetual inventory: purchases go straight to Stock-in-Hand.
	stock, err := pc.resolveIfNonZero(ctx, accounting.LedgerStockInHand, taxes.Taxable)
	if err != nil {
		return nil, err
	}
	if stock != nil {
		b.debit(stock.ID, taxes.Taxable, accounting.LedgerStockInHand.Code)
	}
	if err := pc.addTaxLines(ctx, b, inputTaxLedgers, taxes, accounting.SideDebit); err != nil {
		return nil, err
	}
	b.credit(*party, taxes.GrandTotal(), "party")
	return b.lines, nil
}

func postSales(ctx context.Context, pc *Context) ([]EntryLine, error) {
	return salesLines(ctx, pc, true)
}

func postPurchase(ctx context.Context, pc *Context) ([]EntryLine, error) {
	return purchaseLines(ctx, pc)
}

// postCreditNote reverses the sales posting. COGS and stock are reversed only
// when the note is flagged as restocking.
func postCreditNote(ctx context.Context, pc *Context) ([]EntryLine, error) {
	lines, err := salesLines(ctx, pc, pc.Voucher.RestockOnReturn)
	if err != nil {
		return nil, err
	}
	return Reverse(lines), nil
}

func postDebitNote(ctx context.Context, pc *Context) ([]EntryLine, error) {
	lines, err := purchaseLines(ctx, pc)
	if err != nil {
		return nil, err
	}
	return Reverse(lines), nil
}

func postPayment(_ context.Context, pc *Context) ([]EntryLine, error) {
	v := pc.Voucher
	if !pc.requireSettlementLedgers() || pc.warnIfZero(v.TotalAmount) {
		return nil, nil
	}
	b := &lineBuilder{}
	b.debit(*v.PartyLedgerID, shared.RoundAmount(v.TotalAmount), "party")
	b.credit(*v.CashBankLedgerID, shared.RoundAmount(v.TotalAmount), "cash_bank")
	return b.lines, nil
}

func postReceipt(_ context.Context, pc *Context) ([]EntryLine, error) {
	v := pc.Voucher
	if !pc.requireSettlementLedgers() || pc.warnIfZero(v.TotalAmount) {
		return nil, nil
	}
	b := &lineBuilder{}
	b.debit(*v.CashBankLedgerID, shared.RoundAmount(v.TotalAmount), "cash_bank")
	b.credit(*v.PartyLedgerID, shared.RoundAmount(v.TotalAmount), "party")
	return b.lines, nil
}

func (pc *Context) requireSettlementLedgers() bool {
	v := pc.Voucher
	ok := true
	if v.PartyLedgerID == nil {
		pc.warn(WarnMissingParty, "voucher "+v.Number+" has no counterparty ledger")
		ok = false
	}
	if v.CashBankLedgerID == nil {
		pc.warn(WarnMissingCashBank, "voucher "+v.Number+" has no cash or bank ledger")
		ok = false
	}
	return ok
}

// postJournal uses the legacy debit/credit pair when present. Otherwise the
// caller supplies the lines; no ledger is ever invented for a journal.
func postJournal(_ context.Context, pc *Context) ([]EntryLine, error) {
	v := pc.Voucher
	if v.HasLegacyJournalPair() {
		amount := shared.RoundAmount(v.TotalAmount)
		b := &lineBuilder{}
		b.debit(*v.DebitLedgerID, amount, "debit")
		b.credit(*v.CreditLedgerID, amount, "credit")
		return b.lines, nil
	}
	return manualLines(pc)
}

func postContra(_ context.Context, pc *Context) ([]EntryLine, error) {
	return manualLines(pc)
}

func postNothing(context.Context, *Context) ([]EntryLine, error) {
	return nil, nil
}

func manualLines(pc *Context) ([]EntryLine, error) {
	if len(pc.Manual) == 0 {
		pc.warn(WarnNoEntriesSupplied, "voucher "+pc.Voucher.Number+" requires caller-supplied entries")
		return nil, nil
	}
	lines := make([]EntryLine, 0, len(pc.Manual))
	for i, l := range pc.Manual {
		l.Debit = shared.RoundAmount(l.Debit)
		l.Credit = shared.RoundAmount(l.Credit)
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("manual line %d: %w", i+1, err)
		}
		if l.Label == "" {
			l.Label = "manual"
		}
		lines = append(lines, l)
	}
	return lines, nil
}
