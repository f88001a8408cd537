package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PostingMetrics records posting engine outcomes
type PostingMetrics struct {
	posted         *Counter
	failed         *Counter
	entries        *Counter
	ledgersCreated *Counter
	duration       *Histogram
}

// NewPostingMetrics creates the posting instruments on meter
func NewPostingMetrics(meter metric.Meter) (*PostingMetrics, error) {
	posted, err := NewCounter(meter, "voucher_posted_total", "Vouchers posted by type and strategy", "{voucher}")
	if err != nil {
		return nil, err
	}
	failed, err := NewCounter(meter, "voucher_posting_failed_total", "Posting attempts rolled back by error code", "{voucher}")
	if err != nil {
		return nil, err
	}
	entries, err := NewCounter(meter, "ledger_entries_written_total", "Ledger entry lines written by posting", "{entry}")
	if err != nil {
		return nil, err
	}
	created, err := NewCounter(meter, "system_ledger_created_total", "System ledgers created on demand", "{ledger}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "voucher_posting_duration_seconds",
		Description: "Posting latency including ledger refresh",
		Unit:        "s",
		Boundaries:  PostingDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &PostingMetrics{
		posted:         posted,
		failed:         failed,
		entries:        entries,
		ledgersCreated: created,
		duration:       duration,
	}, nil
}

// RecordPosting counts a committed posting
func (m *PostingMetrics) RecordPosting(ctx context.Context, voucherType, strategy string, entries int, elapsed time.Duration) {
	attrs := []attribute.KeyValue{AttrVoucherType.String(voucherType), AttrStrategy.String(strategy)}
	m.posted.Inc(ctx, attrs...)
	m.entries.Add(ctx, int64(entries), attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}

// RecordPostingFailure counts a rolled back posting
func (m *PostingMetrics) RecordPostingFailure(ctx context.Context, voucherType, code string) {
	m.failed.Inc(ctx, AttrVoucherType.String(voucherType), AttrErrorCode.String(code))
}

// RecordLedgerCreated counts a system ledger created during posting
func (m *PostingMetrics) RecordLedgerCreated(ctx context.Context, code string) {
	m.ledgersCreated.Inc(ctx, AttrLedgerCode.String(code))
}
