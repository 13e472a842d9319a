package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

const snippetExcerptLen = 100

// Notability thresholds: a sub-score only earns a justification clause once
// it crosses these.
const (
	notableRating       = 7.0
	notableVotes        = 1000
	prominentVotes      = 5000
	notableContent      = 12.0
	strongCastCrew      = 15.0
	notableCastCrew     = 8.0
	notableTone         = 18.0
	notableFeedback     = 5.0
	notableKeywordScore = 15.0
)

// buildJustification assembles the human-readable explanation for a score by
// appending a short clause for each notable sub-score.
func buildJustification(seed, candidate media.Item, breakdown media.ScoreBreakdown, vocab map[int64]string) string {
	var clauses []string

	if shared := seed.SharedGenres(candidate); len(shared) > 0 {
		names := make([]string, 0, len(shared))
		for _, genreID := range shared {
			if name, ok := vocab[genreID]; ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			clauses = append(clauses, fmt.Sprintf("shares %s", strings.Join(names, ", ")))
		} else {
			clauses = append(clauses, fmt.Sprintf("shares %d genre(s)", len(shared)))
		}
	}

	if candidate.VoteAverage >= notableRating {
		clauses = append(clauses, fmt.Sprintf("highly rated at %.1f/10", candidate.VoteAverage))
	}
	switch {
	case candidate.VoteCount > prominentVotes:
		clauses = append(clauses, fmt.Sprintf("widely reviewed (%d votes)", candidate.VoteCount))
	case candidate.VoteCount > notableVotes:
		clauses = append(clauses, "well reviewed")
	}

	if breakdown.Content > notableContent {
		clauses = append(clauses, "very similar story")
	}
	switch {
	case breakdown.CastCrew > strongCastCrew:
		clauses = append(clauses, "strong shared cast and crew")
	case breakdown.CastCrew > notableCastCrew:
		clauses = append(clauses, "shared cast or crew")
	}
	if breakdown.Tone > notableTone {
		clauses = append(clauses, "matching tone")
	}
	if breakdown.Feedback > notableFeedback {
		clauses = append(clauses, "matches titles you rated highly")
	}
	if breakdown.Keyword > notableKeywordScore {
		clauses = append(clauses, "strong thematic overlap")
	}

	if candidate.Fallback {
		clauses = append(clauses, "fallback, limited genre match")
	}
	if candidate.ExternalSourced && candidate.SourceSnippet != "" {
		excerpt := candidate.SourceSnippet
		if utf8.RuneCountInString(excerpt) > snippetExcerptLen {
			// Cut on a rune boundary so multi-byte snippets stay valid.
			excerpt = string([]rune(excerpt)[:snippetExcerptLen]) + "..."
		}
		clauses = append(clauses, fmt.Sprintf("mentioned on review sites: %q", excerpt))
	}

	return strings.Join(clauses, "; ")
}
