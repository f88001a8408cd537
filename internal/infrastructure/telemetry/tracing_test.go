package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/posting/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrsOf(span sdktrace.ReadOnlySpan) map[string]any {
	m := make(map[string]any)
	for _, a := range span.Attributes() {
		m[string(a.Key)] = a.Value.AsInterface()
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "voucher", "post",
		telemetry.WithAttribute(telemetry.SpanAttrVoucherType, "sales_invoice"),
		telemetry.WithSpanKind(trace.SpanKindServer),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "voucher.post", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, "sales_invoice", attrsOf(spans[0])[telemetry.SpanAttrVoucherType])
}

func TestSetAttributes(t *testing.T) {
	sr := recordSpans(t)
	voucherID := uuid.New()

	_, span := telemetry.StartSpan(context.Background(), "voucher.post")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrVoucherID, voucherID,
		telemetry.SpanAttrEntryCount, 6,
		42, "skipped",
		"posted", true,
		"dangling",
	)
	span.End()

	attrs := attrsOf(sr.Ended()[0])
	assert.Equal(t, voucherID.String(), attrs[telemetry.SpanAttrVoucherID])
	assert.Equal(t, int64(6), attrs[telemetry.SpanAttrEntryCount])
	assert.Equal(t, true, attrs["posted"])
	assert.NotContains(t, attrs, "dangling")
	assert.Len(t, attrs, 3)
}

func TestRecordErrorAndSetOK(t *testing.T) {
	sr := recordSpans(t)

	_, failed := telemetry.StartSpan(context.Background(), "failed")
	telemetry.RecordError(failed, errors.New("unbalanced"))
	failed.End()

	_, ok := telemetry.StartSpan(context.Background(), "ok")
	telemetry.RecordError(ok, nil)
	telemetry.SetOK(ok)
	ok.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "unbalanced", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, codes.Ok, spans[1].Status().Code)
	assert.Empty(t, spans[1].Events())
}

func TestAddEvent(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "voucher.post")
	telemetry.AddEvent(span, "system_ledger_created", "code", "CGST_OUTPUT", "count", 1)
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "system_ledger_created", events[0].Name)
	assert.Len(t, events[0].Attributes, 2)
}

func TestNilSpanHelpersAreNoops(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetOK(nil)
		telemetry.AddEvent(nil, "e")
	})
}

func TestGetTraceID(t *testing.T) {
	recordSpans(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "parent")
	defer span.End()
	_, child := telemetry.StartSpan(ctx, "child")
	defer child.End()

	assert.Len(t, telemetry.GetTraceID(ctx), 32)
	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}
