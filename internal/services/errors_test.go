package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Vinuka-CS/seed-to-stream/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUnavailable, "tmdb", "get_similar", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"tmdb", "get_similar", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "omdb", "lookup", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsSurfaced(t *testing.T) {
	validation := services.Wrap(services.ErrValidation, "recommend", "rank", "seed missing id", nil)
	if !services.IsSurfaced(validation) {
		t.Fatal("validation errors must surface")
	}
	for _, marker := range []error{services.ErrUnavailable, services.ErrTimeout, services.ErrNotFound, services.ErrTransient} {
		if services.IsSurfaced(services.Wrap(marker, "tmdb", "discover", "", nil)) {
			t.Fatalf("marker %v must be absorbed", marker)
		}
	}
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-123")
	id, ok := services.RunIDFromContext(ctx)
	if !ok || id != "run-123" {
		t.Fatalf("RunIDFromContext = (%q, %v), want (run-123, true)", id, ok)
	}
	if _, ok := services.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on fresh context")
	}
}
