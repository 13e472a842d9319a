package media

import (
	"strconv"
	"strings"
	"time"
)

// MediaType distinguishes movies from episodic series.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// Valid reports whether the media type is one of the known values.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeSeries
}

// ParseMediaType normalizes user or wire input into a MediaType.
func ParseMediaType(raw string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie", "film":
		return MediaTypeMovie, true
	case "series", "tv", "show":
		return MediaTypeSeries, true
	default:
		return "", false
	}
}

// Item is a candidate or seed title projected from an external catalog.
type Item struct {
	ID          int64
	MediaType   MediaType
	Title       string
	Overview    string
	Tagline     string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int64
	GenreIDs    []int64

	// Provenance flags set by the discovery orchestrator.
	Fallback        bool
	ExternalSourced bool
	SourceSnippet   string
}

// Key identifies an item within a run. Identifiers are only unique per media
// type, so both fields participate.
type Key struct {
	ID        int64
	MediaType MediaType
}

// Key returns the dedup key for the item.
func (i Item) Key() Key {
	return Key{ID: i.ID, MediaType: i.MediaType}
}

// ReleaseYear parses the leading year of the release date. The second return
// is false when the date is missing or unparseable; callers must not reject an
// item on age grounds in that case.
func (i Item) ReleaseYear() (int, bool) {
	date := strings.TrimSpace(i.ReleaseDate)
	if date == "" {
		return 0, false
	}
	if parsed, err := time.Parse("2006-01-02", date); err == nil {
		return parsed.Year(), true
	}
	if len(date) >= 4 {
		if year, err := strconv.Atoi(date[:4]); err == nil && year > 1800 {
			return year, true
		}
	}
	return 0, false
}

// SharedGenres returns the genre identifiers the item has in common with
// other. Genre lists use set semantics; duplicates are counted once.
func (i Item) SharedGenres(other Item) []int64 {
	if len(i.GenreIDs) == 0 || len(other.GenreIDs) == 0 {
		return nil
	}
	otherSet := make(map[int64]struct{}, len(other.GenreIDs))
	for _, id := range other.GenreIDs {
		otherSet[id] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(i.GenreIDs))
	shared := make([]int64, 0, len(i.GenreIDs))
	for _, id := range i.GenreIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := otherSet[id]; ok {
			shared = append(shared, id)
		}
	}
	return shared
}

// DiscoverFilters narrows a content directory discover query. Zero values
// are omitted from the request.
type DiscoverFilters struct {
	GenreIDs     []int64
	KeywordIDs   []int64
	MinVoteCount int64
	SortBy       string
}

// Genre is one entry of the directory's genre vocabulary.
type Genre struct {
	ID   int64
	Name string
}

// CreditRole classifies how a person is attached to an item.
type CreditRole string

const (
	RoleCast     CreditRole = "cast"
	RoleDirector CreditRole = "director"
	RoleWriter   CreditRole = "writer"
	RoleOther    CreditRole = "other"
)

// Credit records one person attached to an item. Order carries the billing
// rank for cast entries.
type Credit struct {
	Name  string
	Role  CreditRole
	Order int
}

// Credits groups an item's cast and crew.
type Credits struct {
	Cast []Credit
	Crew []Credit
}

// Keyword is a curated thematic tag from the directory's taxonomy, distinct
// from lexically extracted tokens.
type Keyword struct {
	ID   int64
	Name string
}
