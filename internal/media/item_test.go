package media

import (
	"reflect"
	"testing"
)

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		raw  string
		want MediaType
		ok   bool
	}{
		{"movie", MediaTypeMovie, true},
		{"Film", MediaTypeMovie, true},
		{"tv", MediaTypeSeries, true},
		{"SERIES", MediaTypeSeries, true},
		{"show", MediaTypeSeries, true},
		{"podcast", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMediaType(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMediaType(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"1982-06-25", 1982, true},
		{"1982", 1982, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"06/25/1982", 0, false},
	}
	for _, tt := range tests {
		item := Item{ReleaseDate: tt.date}
		got, ok := item.ReleaseYear()
		if got != tt.want || ok != tt.ok {
			t.Errorf("ReleaseYear(%q) = (%d, %v), want (%d, %v)", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSharedGenres(t *testing.T) {
	a := Item{GenreIDs: []int64{18, 878, 18}}
	b := Item{GenreIDs: []int64{878, 28, 18}}
	got := a.SharedGenres(b)
	want := []int64{18, 878}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedGenres() = %v, want %v", got, want)
	}

	if shared := a.SharedGenres(Item{}); shared != nil {
		t.Errorf("SharedGenres(empty) = %v, want nil", shared)
	}
}

func TestKeyIncludesMediaType(t *testing.T) {
	movie := Item{ID: 42, MediaType: MediaTypeMovie}
	series := Item{ID: 42, MediaType: MediaTypeSeries}
	if movie.Key() == series.Key() {
		t.Error("keys for identical IDs across media types must differ")
	}
}
