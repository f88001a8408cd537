package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	domain "github.com/erp/posting/internal/domain/posting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ServiceConfig holds the accounting switches the service honours
type ServiceConfig struct {
	// AllowDestructiveCancel permits CancelVoucher to delete entries. Off in production.
	AllowDestructiveCancel bool
	// SlowPostingThreshold marks postings logged at warn level.
	SlowPostingThreshold time.Duration
}

// Metrics receives posting measurements
type Metrics interface {
	RecordPosting(ctx context.Context, voucherType, strategy string, entries int, elapsed time.Duration)
	RecordPostingFailure(ctx context.Context, voucherType, code string)
	RecordLedgerCreated(ctx context.Context, code string)
}

type nopMetrics struct{}

func (nopMetrics) RecordPosting(context.Context, string, string, int, time.Duration) {}
func (nopMetrics) RecordPostingFailure(context.Context, string, string)              {}
func (nopMetrics) RecordLedgerCreated(context.Context, string)                       {}

// Service is the entry point for voucher posting. Every operation runs in one
// transaction; a failure anywhere rolls back entries, balances and status together.
type Service struct {
	txScope TransactionScope
	engine  *Engine
	cfg     ServiceConfig
	logger  *zap.Logger
	metrics Metrics
	now     func() time.Time
}

// NewService creates a posting Service
func NewService(txScope TransactionScope, cfg ServiceConfig, zapLogger *zap.Logger) *Service {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &Service{
		txScope: txScope,
		engine:  NewEngine(),
		cfg:     cfg,
		logger:  zapLogger,
		metrics: nopMetrics{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetMetrics sets the metrics sink
func (s *Service) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// CreateDraft stores a new draft voucher with its items
func (s *Service) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreateVoucherRequest) (*VoucherResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	vt := accounting.VoucherType(req.Type)
	if !vt.IsKnown() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("unknown voucher type %q", req.Type))
	}

	voucher := accounting.NewVoucher(tenantID, req.Number, vt, req.Date)
	voucher.PartyLedgerID = req.PartyLedgerID
	voucher.CashBankLedgerID = req.CashBankLedgerID
	voucher.DebitLedgerID = req.DebitLedgerID
	voucher.CreditLedgerID = req.CreditLedgerID
	voucher.TotalAmount = shared.RoundAmount(req.TotalAmount)
	voucher.Narration = req.Narration
	voucher.RestockOnReturn = req.RestockOnReturn
	for _, item := range req.Items {
		voucher.AddItem(item.toDomain())
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Vouchers().ExistsByNumber(ctx, tenantID, req.Number)
		if err != nil {
			return fmt.Errorf("check voucher number: %w", err)
		}
		if exists {
			return shared.NewDomainError(shared.ErrAlreadyExists.Code, "voucher number "+req.Number+" already exists")
		}
		return repos.Vouchers().Create(ctx, voucher)
	})
	if err != nil {
		return nil, err
	}

	resp := ToVoucherResponse(voucher, nil)
	return &resp, nil
}

// GetVoucher returns a voucher with its posted entries
func (s *Service) GetVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*VoucherResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	var resp VoucherResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		voucher, err := repos.Vouchers().FindByIDForTenant(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}
		entries, err := repos.Entries().FindByVoucher(ctx, tenantID, voucherID)
		if err != nil {
			return fmt.Errorf("load entries: %w", err)
		}
		resp = ToVoucherResponse(voucher, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// PostVoucher posts a draft voucher. Journals and contras take their lines
// from req; every other type derives them from the voucher. A voucher that
// yields no entries is left unchanged and reported with Posted=false.
func (s *Service) PostVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req PostVoucherRequest) (*PostingResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher", "post")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrVoucherID, voucherID.String(),
	)

	start := s.now()
	var (
		resp   PostingResponse
		result *Result
		vt     accounting.VoucherType
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		voucher, err := repos.Vouchers().FindByIDForTenant(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}
		vt = voucher.Type
		var posted bool
		result, posted, err = s.post(ctx, repos, voucher, req.lines())
		if err != nil {
			return err
		}
		resp = toPostingResponse(voucher, result, posted)
		return nil
	})
	if err != nil {
		s.fail(ctx, span, vt, voucherID, err)
		return nil, err
	}

	s.observe(ctx, span, vt, &resp, result, s.now().Sub(start))
	return &resp, nil
}

// ReverseVoucher cancels a posted invoice by posting its credit or debit note.
// The original's entries are kept; the note carries the mirror image. The
// original's TDS record is dropped with it.
func (s *Service) ReverseVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req ReverseVoucherRequest) (*ReversalResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher", "reverse")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrVoucherID, voucherID.String(),
	)

	start := s.now()
	var (
		resp   ReversalResponse
		result *Result
		noteVT accounting.VoucherType
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		original, err := repos.Vouchers().FindByIDForTenant(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}

		number := req.Number
		if number == "" {
			number = original.Number + "-R"
		}
		date := s.now()
		if req.Date != nil {
			date = *req.Date
		}
		exists, err := repos.Vouchers().ExistsByNumber(ctx, tenantID, number)
		if err != nil {
			return fmt.Errorf("check voucher number: %w", err)
		}
		if exists {
			return shared.NewDomainError(shared.ErrAlreadyExists.Code, "voucher number "+number+" already exists")
		}

		note, err := original.NewReversal(number, date)
		if err != nil {
			return err
		}
		noteVT = note.Type
		note.RestockOnReturn = req.RestockOnReturn
		if err := repos.Vouchers().Create(ctx, note); err != nil {
			return fmt.Errorf("create reversal note: %w", err)
		}

		var posted bool
		result, posted, err = s.post(ctx, repos, note, nil)
		if err != nil {
			return err
		}
		if !posted {
			return shared.NewDomainError(shared.ErrInvalidState.Code, "reversal of "+original.Number+" produced no entries")
		}

		if err := original.MarkCancelled(s.now(), &note.ID, false); err != nil {
			return err
		}
		if err := repos.Vouchers().UpdateStatus(ctx, original); err != nil {
			return fmt.Errorf("cancel original voucher: %w", err)
		}
		if _, err := repos.TDSDetails().DeleteByVoucher(ctx, tenantID, original.ID); err != nil {
			return fmt.Errorf("delete tds detail: %w", err)
		}
		if err := s.flushEvents(ctx, repos, original); err != nil {
			return err
		}

		resp = ReversalResponse{
			OriginalVoucherID: original.ID,
			OriginalStatus:    string(original.Status),
			Note:              toPostingResponse(note, result, posted),
		}
		return nil
	})
	if err != nil {
		s.fail(ctx, span, noteVT, voucherID, err)
		return nil, err
	}

	s.observe(ctx, span, noteVT, &resp.Note, result, s.now().Sub(start))
	return &resp, nil
}

// CancelVoucher deletes a posted voucher's entries and TDS record and
// recomputes the affected balances. It is refused unless destructive
// cancellation is enabled, and for reversal notes.
func (s *Service) CancelVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*CancelResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	if !s.cfg.AllowDestructiveCancel {
		return nil, accounting.ErrDestructiveCancelDisabled
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "voucher", "cancel")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrVoucherID, voucherID.String(),
	)

	var resp CancelResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		voucher, err := repos.Vouchers().FindByIDForTenant(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}
		if err := voucher.MarkCancelled(s.now(), nil, true); err != nil {
			return err
		}

		entries, err := repos.Entries().FindByVoucher(ctx, tenantID, voucherID)
		if err != nil {
			return fmt.Errorf("load entries: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(entries))
		seen := make(map[uuid.UUID]struct{}, len(entries))
		for _, e := range entries {
			if _, ok := seen[e.LedgerID]; !ok {
				seen[e.LedgerID] = struct{}{}
				ids = append(ids, e.LedgerID)
			}
		}

		deleted, err := repos.Entries().DeleteByVoucher(ctx, tenantID, voucherID)
		if err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		if _, err := repos.TDSDetails().DeleteByVoucher(ctx, tenantID, voucherID); err != nil {
			return fmt.Errorf("delete tds detail: %w", err)
		}
		refreshed, err := NewBalanceUpdater(repos.Ledgers(), repos.Entries()).Refresh(ctx, tenantID, ids)
		if err != nil {
			return err
		}
		if err := repos.Vouchers().UpdateStatus(ctx, voucher); err != nil {
			return fmt.Errorf("cancel voucher: %w", err)
		}
		if err := s.flushEvents(ctx, repos, voucher); err != nil {
			return err
		}

		resp = CancelResponse{
			VoucherID:          voucher.ID,
			Status:             string(voucher.Status),
			DeletedEntries:     deleted,
			RefreshedLedgerIDs: make([]uuid.UUID, len(refreshed)),
		}
		for i, l := range refreshed {
			resp.RefreshedLedgerIDs[i] = l.ID
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	logger.WithLogger(ctx, s.logger).Warn("voucher cancelled destructively",
		zap.String("voucher_id", voucherID.String()),
		zap.Int64("deleted_entries", resp.DeletedEntries),
	)
	return &resp, nil
}

// CreateLedger creates a user-maintained ledger under an existing group
func (s *Service) CreateLedger(ctx context.Context, tenantID uuid.UUID, req CreateLedgerRequest) (*LedgerResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	side := accounting.SideDebit
	if req.OpeningSide != "" {
		parsed, err := accounting.ParseBalanceSide(req.OpeningSide)
		if err != nil {
			return nil, shared.WrapDomainError(shared.ErrInvalidInput.Code, err.Error(), err)
		}
		side = parsed
	}
	if req.OpeningBalance.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "opening balance must not be negative; use the opening side instead")
	}
	if req.TDSRate.IsNegative() || req.TDSRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "tds rate must be between 0 and 100")
	}

	var resp LedgerResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		group, err := repos.AccountGroups().FindByCode(ctx, tenantID, req.GroupCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.ErrInvalidInput.Code, "unknown account group "+req.GroupCode)
			}
			return err
		}

		ledger := accounting.NewLedger(tenantID, req.Code, req.Name, group.ID, shared.RoundAmount(req.OpeningBalance), side)
		ledger.TDSApplicable = req.TDSApplicable
		ledger.TDSSection = req.TDSSection
		ledger.TDSRate = req.TDSRate
		created, err := repos.Ledgers().CreateIfAbsent(ctx, ledger)
		if err != nil {
			return fmt.Errorf("create ledger: %w", err)
		}
		if !created {
			return shared.NewDomainError(shared.ErrAlreadyExists.Code, "ledger code "+req.Code+" already exists")
		}
		resp = ToLedgerResponse(ledger)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLedger returns a ledger with its stored balance
func (s *Service) GetLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*LedgerResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	var resp LedgerResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger, err := repos.Ledgers().FindByIDForTenant(ctx, tenantID, ledgerID)
		if err != nil {
			return err
		}
		resp = ToLedgerResponse(ledger)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListLedgers returns one page of the tenant's ledgers and the total count
func (s *Service) ListLedgers(ctx context.Context, tenantID uuid.UUID, filter LedgerListFilter) ([]LedgerResponse, int64, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	var (
		out   []LedgerResponse
		total int64
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledgers, count, err := repos.Ledgers().FindAll(ctx, tenantID, accounting.LedgerFilter{
			GroupID:    filter.GroupID,
			SystemOnly: filter.SystemOnly,
			SortBy:     filter.OrderBy,
			SortOrder:  filter.OrderDir,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
		})
		if err != nil {
			return err
		}
		out = make([]LedgerResponse, len(ledgers))
		for i, l := range ledgers {
			out[i] = ToLedgerResponse(l)
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// RefreshLedger recomputes a ledger's balance from its entries. The result
// is the same no matter how often it runs.
func (s *Service) RefreshLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*LedgerResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	var resp LedgerResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		refreshed, err := NewBalanceUpdater(repos.Ledgers(), repos.Entries()).Refresh(ctx, tenantID, []uuid.UUID{ledgerID})
		if err != nil {
			return err
		}
		resp = ToLedgerResponse(refreshed[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// post runs the engine, moves the voucher to posted when anything was
// written and queues the resulting events.
func (s *Service) post(ctx context.Context, repos TransactionalRepositories, voucher *accounting.Voucher, manual []domain.EntryLine) (*Result, bool, error) {
	result, err := s.engine.Post(ctx, repos, voucher, manual)
	if err != nil {
		return nil, false, err
	}

	posted := !result.Empty() || result.Kind == domain.KindNonPosting
	if posted {
		if err := voucher.MarkPosted(s.now(), len(result.Entries), result.Totals.Debit, result.RefreshedLedgerIDs); err != nil {
			return nil, false, err
		}
		if err := repos.Vouchers().UpdateStatus(ctx, voucher); err != nil {
			return nil, false, fmt.Errorf("mark voucher posted: %w", err)
		}
	}

	if err := repos.Outbox().Write(ctx, result.Events...); err != nil {
		return nil, false, fmt.Errorf("queue ledger events: %w", err)
	}
	if err := s.flushEvents(ctx, repos, voucher); err != nil {
		return nil, false, err
	}
	return result, posted, nil
}

func (s *Service) flushEvents(ctx context.Context, repos TransactionalRepositories, voucher *accounting.Voucher) error {
	events := voucher.PendingEvents()
	if len(events) == 0 {
		return nil
	}
	if err := repos.Outbox().Write(ctx, events...); err != nil {
		return fmt.Errorf("queue voucher events: %w", err)
	}
	voucher.ClearPendingEvents()
	return nil
}

func (s *Service) observe(ctx context.Context, span trace.Span, vt accounting.VoucherType, resp *PostingResponse, result *Result, elapsed time.Duration) {
	telemetry.SetAttributes(span,
		telemetry.SpanAttrVoucherNumber, resp.VoucherNumber,
		telemetry.SpanAttrVoucherType, string(vt),
		telemetry.SpanAttrStrategy, resp.Strategy,
		telemetry.SpanAttrEntryCount, len(resp.Entries),
		telemetry.SpanAttrAmount, resp.TotalDebit.String(),
	)
	telemetry.SetOK(span)

	for _, l := range result.CreatedLedgers {
		telemetry.AddEvent(span, "system_ledger_created",
			"code", l.Code,
			telemetry.SpanAttrLedgerID, l.ID,
		)
		s.metrics.RecordLedgerCreated(ctx, l.Code)
	}
	if resp.Posted {
		s.metrics.RecordPosting(ctx, string(vt), resp.Strategy, len(resp.Entries), elapsed)
	}

	log := logger.WithLogger(ctx, s.logger).With(
		zap.String("voucher_id", resp.VoucherID.String()),
		zap.String("voucher_number", resp.VoucherNumber),
		zap.String("voucher_type", string(vt)),
		zap.Int("entries", len(resp.Entries)),
		zap.Duration("elapsed", elapsed),
	)
	switch {
	case !resp.Posted:
		log.Warn("voucher produced no entries", zap.Any("warnings", resp.Warnings))
	case s.cfg.SlowPostingThreshold > 0 && elapsed > s.cfg.SlowPostingThreshold:
		log.Warn("slow posting", zap.Duration("threshold", s.cfg.SlowPostingThreshold))
	default:
		log.Info("voucher posted")
	}
}

func (s *Service) fail(ctx context.Context, span trace.Span, vt accounting.VoucherType, voucherID uuid.UUID, err error) {
	telemetry.RecordError(span, err)
	code := "INTERNAL"
	if de, ok := shared.AsDomainError(err); ok {
		code = de.Code
	}
	s.metrics.RecordPostingFailure(ctx, string(vt), code)

	log := logger.WithLogger(ctx, s.logger).With(
		zap.String("voucher_id", voucherID.String()),
		zap.String("error_code", code),
		zap.Error(err),
	)
	if code == "INTERNAL" {
		log.Error("posting failed")
		return
	}
	log.Warn("posting rejected")
}
