package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/erp/posting/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestPostingMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	pm, err := telemetry.NewPostingMetrics(provider.Meter("posting"))
	require.NoError(t, err)

	ctx := context.Background()
	pm.RecordPosting(ctx, "sales_invoice", "sales", 6, 30*time.Millisecond)
	pm.RecordPosting(ctx, "purchase_invoice", "purchase", 4, 10*time.Millisecond)
	pm.RecordPostingFailure(ctx, "journal", "UNBALANCED_ENTRIES")
	pm.RecordLedgerCreated(ctx, "CGST_OUTPUT")

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["voucher_posted_total"]))
	assert.Equal(t, int64(10), sumOf(t, got["ledger_entries_written_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["voucher_posting_failed_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["system_ledger_created_total"]))

	hist, ok := got["voucher_posting_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 2)

	failed := got["voucher_posting_failed_total"].Data.(metricdata.Sum[int64]).DataPoints[0]
	code, ok := failed.Attributes.Value(telemetry.AttrErrorCode)
	require.True(t, ok)
	assert.Equal(t, "UNBALANCED_ENTRIES", code.AsString())
}
