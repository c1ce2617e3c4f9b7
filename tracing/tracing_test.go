package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	if err := Init("schedsim", "0.0.1", fname); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "simulate", KindInternal)
	span.WithAttributes(map[string]string{"policy": "priority"}).WithInt("processes", 3)
	span.AddEvent("blocked", 2)
	_, child := StartSpan(ctx, "produce", KindProducer)
	EndSpan(child, errors.New("boom"))
	EndSpan(span, nil)

	current, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, current)

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assert.Contains(t, string(data), "simulate")
	assert.Contains(t, string(data), "produce")
}

func TestSpan_Nil(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	assert.Nil(t, span.WithInt("k", 1))
	span.AddEvent("noop", 1)
	EndSpan(span, nil)

	_, ok := SpanFromContext(context.Background())
	assert.False(t, ok)
}
