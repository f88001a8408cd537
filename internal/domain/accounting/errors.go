package accounting

import "github.com/erp/posting/internal/domain/shared"

// Error codes raised by the accounting domain and the posting engine
const (
	CodeChartInconsistent   = "CHART_OF_ACCOUNTS_INCONSISTENT"
	CodeUnbalancedEntries   = "UNBALANCED_ENTRIES"
	CodeInvalidEntry        = "INVALID_ENTRY"
	CodeDestructiveDisabled = "DESTRUCTIVE_CANCEL_DISABLED"
	CodeNotReversible       = "NOT_REVERSIBLE"
)

var (
	// ErrChartInconsistent is a provisioning defect: a required account group is missing
	ErrChartInconsistent = shared.NewDomainError(CodeChartInconsistent, "tenant chart of accounts is inconsistent")
	// ErrUnbalancedEntries means a posting produced debits that differ from credits
	ErrUnbalancedEntries = shared.NewDomainError(CodeUnbalancedEntries, "posting entries are not balanced")
	// ErrInvalidEntry means an entry carries both or neither side, or a negative amount
	ErrInvalidEntry = shared.NewDomainError(CodeInvalidEntry, "ledger entry must carry exactly one non-zero, non-negative side")
	// ErrDestructiveCancelDisabled is returned when entry deletion is not enabled
	ErrDestructiveCancelDisabled = shared.NewDomainError(CodeDestructiveDisabled, "destructive cancellation is disabled, post a credit or debit note instead")
	// ErrNotReversible is returned for voucher types without a reversal note
	ErrNotReversible = shared.NewDomainError(CodeNotReversible, "voucher type has no reversal note")
)
