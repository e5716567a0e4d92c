package memory

import (
	"context"
	"testing"
	"time"
)

func TestRefreshMarksRoundTrip(t *testing.T) {
	marks := NewRefreshMarks()
	ctx := context.Background()

	if _, ok, err := marks.LastRefresh(ctx); err != nil || ok {
		t.Fatalf("expected no mark initially, ok=%v err=%v", ok, err)
	}

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := marks.SetLastRefresh(ctx, at); err != nil {
		t.Fatalf("set mark: %v", err)
	}

	got, ok, err := marks.LastRefresh(ctx)
	if err != nil || !ok {
		t.Fatalf("expected mark present, ok=%v err=%v", ok, err)
	}
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
}
