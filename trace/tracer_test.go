// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDisabledTracerIsNoop(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{AppName: "test"})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "call")
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestFromProviderRecordsSpans(t *testing.T) {
	require := require.New(t)

	rec := tracetest.NewSpanRecorder()
	tracer := FromProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)), "test")
	_, span := tracer.Start(context.Background(), "call")
	span.End()

	ended := rec.Ended()
	require.Len(ended, 1)
	require.Equal("call", ended[0].Name())
	require.NoError(tracer.Close())
}
