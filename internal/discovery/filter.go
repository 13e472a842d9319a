package discovery

import (
	"time"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

// FilterOptions bound which candidates survive pruning.
type FilterOptions struct {
	MinRating           float64
	MinVoteCount        int64
	MaxAgeYears         int
	RequireGenreOverlap bool
}

// Filter prunes candidates by rating floor, vote-count floor, age ceiling,
// and optional seed-genre overlap. An item with an unparseable release date
// is never rejected on age grounds.
func Filter(candidates []media.Item, seed media.Item, opts FilterOptions) []media.Item {
	return filterAt(candidates, seed, opts, time.Now().Year())
}

func filterAt(candidates []media.Item, seed media.Item, opts FilterOptions, nowYear int) []media.Item {
	kept := make([]media.Item, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.VoteAverage < opts.MinRating {
			continue
		}
		if candidate.VoteCount < opts.MinVoteCount {
			continue
		}
		if opts.MaxAgeYears > 0 {
			if year, ok := candidate.ReleaseYear(); ok && nowYear-year > opts.MaxAgeYears {
				continue
			}
		}
		if opts.RequireGenreOverlap && len(candidate.SharedGenres(seed)) == 0 {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}
