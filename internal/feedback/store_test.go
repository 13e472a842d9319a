package feedback

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendOrReplaceUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Record{
		ItemID:    42,
		MediaType: media.MediaTypeMovie,
		Rating:    3,
		RatedAt:   time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		GenreIDs:  []int64{27},
	}
	if err := store.AppendOrReplace(ctx, first); err != nil {
		t.Fatalf("AppendOrReplace: %v", err)
	}

	second := first
	second.Rating = 5
	second.CastNames = []string{"Lead Actor"}
	if err := store.AppendOrReplace(ctx, second); err != nil {
		t.Fatalf("AppendOrReplace(update): %v", err)
	}

	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if records[0].Rating != 5 || len(records[0].CastNames) != 1 {
		t.Fatalf("unexpected record %+v", records[0])
	}
}

func TestSameIDAcrossMediaTypesKept(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	movie := Record{ItemID: 7, MediaType: media.MediaTypeMovie, Rating: 4}
	series := Record{ItemID: 7, MediaType: media.MediaTypeSeries, Rating: 2}
	if err := store.AppendOrReplace(ctx, movie); err != nil {
		t.Fatalf("AppendOrReplace(movie): %v", err)
	}
	if err := store.AppendOrReplace(ctx, series); err != nil {
		t.Fatalf("AppendOrReplace(series): %v", err)
	}

	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected separate records per media type, got %d", len(records))
	}
}

func TestAppendOrReplaceValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		record Record
	}{
		{"missing id", Record{MediaType: media.MediaTypeMovie, Rating: 4}},
		{"bad media type", Record{ItemID: 1, MediaType: "vinyl", Rating: 4}},
		{"rating too low", Record{ItemID: 1, MediaType: media.MediaTypeMovie, Rating: 0.5}},
		{"rating too high", Record{ItemID: 1, MediaType: media.MediaTypeMovie, Rating: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.AppendOrReplace(ctx, tt.record); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestReadAllRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := Record{
		ItemID:    99,
		MediaType: media.MediaTypeSeries,
		Rating:    4.5,
		RatedAt:   time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC),
		GenreIDs:  []int64{18, 9648},
		CastNames: []string{"Actor One", "Actor Two"},
		CrewNames: []string{"Showrunner"},
	}
	if err := store.AppendOrReplace(ctx, record); err != nil {
		t.Fatalf("AppendOrReplace: %v", err)
	}

	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ItemID != 99 || got.MediaType != media.MediaTypeSeries || got.Rating != 4.5 {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.RatedAt.Equal(record.RatedAt) {
		t.Fatalf("rated_at mismatch: got %v want %v", got.RatedAt, record.RatedAt)
	}
	if len(got.GenreIDs) != 2 || len(got.CastNames) != 2 || len(got.CrewNames) != 1 {
		t.Fatalf("snapshot fields lost: %+v", got)
	}
}
