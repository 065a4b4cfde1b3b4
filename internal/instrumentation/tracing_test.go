package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestStartGoogleAPISpan(t *testing.T) {
	ctx, span := StartGoogleAPISpan(context.Background(), ServiceCalendar, OperationInsert,
		attribute.Int(SpanAttrAttendees, 2))
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
	assert.Equal(t, span, trace.SpanFromContext(ctx))
}

func TestSetSpanStatus(t *testing.T) {
	_, span := StartSpan(context.Background(), "test")
	defer span.End()

	assert.NotPanics(t, func() {
		SetSpanError(span, nil)
		SetSpanError(span, errors.New("boom"))
		SetSpanSuccess(span)
	})
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
