package posting

import (
	"context"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
)

// Kind identifies one of the nine posting strategies
type Kind string

const (
	KindSales      Kind = "sales"
	KindPurchase   Kind = "purchase"
	KindPayment    Kind = "payment"
	KindReceipt    Kind = "receipt"
	KindJournal    Kind = "journal"
	KindContra     Kind = "contra"
	KindCreditNote Kind = "credit_note"
	KindDebitNote  Kind = "debit_note"
	KindNonPosting Kind = "non_posting"
)

// KindOf maps a voucher type to its strategy. ok is false for types outside
// the known set.
func KindOf(vt accounting.VoucherType) (kind Kind, ok bool) {
	switch vt {
	case accounting.VoucherSalesInvoice, accounting.VoucherTaxInvoice,
		accounting.VoucherRetailInvoice, accounting.VoucherExportInvoice:
		return KindSales, true
	case accounting.VoucherPurchaseInvoice:
		return KindPurchase, true
	case accounting.VoucherPayment:
		return KindPayment, true
	case accounting.VoucherReceipt:
		return KindReceipt, true
	case accounting.VoucherJournal:
		return KindJournal, true
	case accounting.VoucherContra:
		return KindContra, true
	case accounting.VoucherCreditNote:
		return KindCreditNote, true
	case accounting.VoucherDebitNote:
		return KindDebitNote, true
	case accounting.VoucherDeliveryChallan, accounting.VoucherSalesOrder,
		accounting.VoucherPurchaseOrder, accounting.VoucherProforma, accounting.VoucherQuotation:
		return KindNonPosting, true
	}
	return "", false
}

// Strategy produces the entry lines for one voucher
type Strategy func(ctx context.Context, pc *Context) ([]EntryLine, error)

// StrategyFor returns the strategy implementing kind
func StrategyFor(kind Kind) Strategy {
	switch kind {
	case KindSales:
		return postSales
	case KindPurchase:
		return postPurchase
	case KindPayment:
		return postPayment
	case KindReceipt:
		return postReceipt
	case KindJournal:
		return postJournal
	case KindContra:
		return postContra
	case KindCreditNote:
		return postCreditNote
	case KindDebitNote:
		return postDebitNote
	case KindNonPosting:
		return postNothing
	}
	panic(fmt.Sprintf("posting: no strategy for kind %q", kind))
}

// Outcome is the result of dispatching one voucher
type Outcome struct {
	Kind     Kind
	Lines    []EntryLine
	Taxes    TaxTotals
	Warnings []Warning
}

// Dispatch selects and runs the strategy for pc.Voucher. An unknown voucher
// type yields an empty outcome carrying a WarnUnknownType warning.
func Dispatch(ctx context.Context, pc *Context) (*Outcome, error) {
	kind, ok := KindOf(pc.Voucher.Type)
	if !ok {
		pc.warn(WarnUnknownType, fmt.Sprintf("voucher type %q has no posting strategy", pc.Voucher.Type))
		return &Outcome{Warnings: pc.Warnings}, nil
	}

	lines, err := StrategyFor(kind)(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &Outcome{Kind: kind, Lines: lines, Taxes: pc.taxes, Warnings: pc.Warnings}, nil
}
