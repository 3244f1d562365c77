package recovery

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hugr-lab/pushdown-go/expressions"
	"github.com/hugr-lab/pushdown-go/predicate"
)

func TestRecoverToValuePassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	got, err := RecoverToValue(logger, "ok", func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("expected 7, nil; got %d, %v", got, err)
	}

	want := errors.New("boom")
	_, err = RecoverToValue(logger, "fail", func() (int, error) { return 0, want })
	if !errors.Is(err, want) {
		t.Errorf("expected wrapped function error, got %v", err)
	}
}

func TestRecoverToValueNilPointerVariant(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var p predicate.Predicate = (*predicate.EqualTo)(nil)
	got, err := RecoverToValue(logger, "ToV2", func() (expressions.Predicate, error) {
		return predicate.ToV2(p)
	})

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if panicErr.Operation != "ToV2" {
		t.Errorf("expected operation ToV2, got %s", panicErr.Operation)
	}
	if got != nil {
		t.Errorf("expected nil result, got %v", got)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}
