package discovery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Vinuka-CS/seed-to-stream/internal/logging"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/omdb"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/websearch"
)

// Directory is the slice of the content directory client that discovery
// consumes.
type Directory interface {
	GetSimilar(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Item, error)
	Discover(ctx context.Context, mediaType media.MediaType, filters media.DiscoverFilters) ([]media.Item, error)
	SearchMulti(ctx context.Context, query string) ([]media.Item, error)
	GetKeywords(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Keyword, error)
	GetCredits(ctx context.Context, id int64, mediaType media.MediaType) (media.Credits, error)
	SearchPerson(ctx context.Context, name string) ([]int64, error)
	GetPersonCombinedWorks(ctx context.Context, personID int64, mediaType media.MediaType) ([]media.Item, error)
}

// WebSearcher is the optional web-search collaborator.
type WebSearcher interface {
	Search(ctx context.Context, query string, count int) ([]websearch.Result, error)
}

// Enricher is the optional metadata-enrichment collaborator used to resolve
// web-sourced titles the directory cannot match.
type Enricher interface {
	Lookup(ctx context.Context, title string, year int) (omdb.Result, error)
}

// Options bound the orchestrator's fan-out and output size.
type Options struct {
	// MaxCandidates caps the merged output.
	MaxCandidates int
	// MinCandidates triggers the unfiltered fallback fill below this count.
	MinCandidates int
	// Per-strategy caps.
	SimilarLimit   int
	GenreLimit     int
	LexicalLimit   int
	KeywordLimit   int
	PerPersonLimit int
	WebResultLimit int
}

// DefaultOptions returns the standard strategy caps.
func DefaultOptions() Options {
	return Options{
		MaxCandidates:  50,
		MinCandidates:  10,
		SimilarLimit:   20,
		GenreLimit:     15,
		LexicalLimit:   10,
		KeywordLimit:   12,
		PerPersonLimit: 5,
		WebResultLimit: 8,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = defaults.MaxCandidates
	}
	if o.MinCandidates <= 0 {
		o.MinCandidates = defaults.MinCandidates
	}
	if o.SimilarLimit <= 0 {
		o.SimilarLimit = defaults.SimilarLimit
	}
	if o.GenreLimit <= 0 {
		o.GenreLimit = defaults.GenreLimit
	}
	if o.LexicalLimit <= 0 {
		o.LexicalLimit = defaults.LexicalLimit
	}
	if o.KeywordLimit <= 0 {
		o.KeywordLimit = defaults.KeywordLimit
	}
	if o.PerPersonLimit <= 0 {
		o.PerPersonLimit = defaults.PerPersonLimit
	}
	if o.WebResultLimit <= 0 {
		o.WebResultLimit = defaults.WebResultLimit
	}
	return o
}

// Orchestrator coordinates the discovery strategies.
type Orchestrator struct {
	directory Directory
	webSearch WebSearcher
	enricher  Enricher
	logger    *slog.Logger
	opts      Options
}

// New constructs an orchestrator. webSearch and enricher may be nil, which
// disables the web-search strategy's corresponding steps.
func New(directory Directory, webSearch WebSearcher, enricher Enricher, logger *slog.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		directory: directory,
		webSearch: webSearch,
		enricher:  enricher,
		logger:    logging.WithComponent(logger, "discovery"),
		opts:      opts.withDefaults(),
	}
}

type strategy struct {
	name string
	run  func(ctx context.Context, seed media.Item, ids *syntheticIDs) []media.Item
}

// Discover produces a deduplicated candidate list for the seed. Strategies
// run concurrently; their outputs merge afterwards in fixed priority order so
// deduplication stays deterministic. Discover never fails: a run where every
// source errored yields an empty list.
func (o *Orchestrator) Discover(ctx context.Context, seed media.Item) []media.Item {
	strategies := []strategy{
		{name: "similar_content", run: o.similarContent},
		{name: "genre_discovery", run: o.genreDiscovery},
		{name: "lexical_search", run: o.lexicalSearch},
		{name: "curated_keywords", run: o.curatedKeywords},
		{name: "cast_crew", run: o.castCrew},
		{name: "web_search", run: o.webSourced},
	}

	ids := newSyntheticIDs()
	results := make([][]media.Item, len(strategies))

	var wg sync.WaitGroup
	wg.Add(len(strategies))
	for i, strat := range strategies {
		go func(slot int, strat strategy) {
			defer wg.Done()
			results[slot] = strat.run(ctx, seed, ids)
		}(i, strat)
	}
	wg.Wait()

	logger := logging.WithContext(ctx, o.logger)

	// The seed itself is never a candidate.
	seen := map[media.Key]struct{}{seed.Key(): {}}
	merged := make([]media.Item, 0, o.opts.MaxCandidates)
	for i, items := range results {
		added := o.merge(&merged, seen, items, seed.MediaType)
		logger.Debug("strategy merged",
			logging.String(logging.FieldStrategy, strategies[i].name),
			logging.Int("found", len(items)),
			logging.Int("added", added))
	}

	if len(merged) < o.opts.MinCandidates {
		fallback := o.fallbackFill(ctx, seed, seen, o.opts.MinCandidates-len(merged))
		o.merge(&merged, seen, fallback, seed.MediaType)
	}

	if len(merged) > o.opts.MaxCandidates {
		merged = merged[:o.opts.MaxCandidates]
	}
	logger.Info("discovery complete",
		logging.String(logging.FieldSeed, seed.Title),
		logging.Int("candidates", len(merged)))
	return merged
}

// merge appends unseen items, forcing each to the seed's media type, and
// reports how many were added.
func (o *Orchestrator) merge(merged *[]media.Item, seen map[media.Key]struct{}, items []media.Item, mediaType media.MediaType) int {
	added := 0
	for _, item := range items {
		item.MediaType = mediaType
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		*merged = append(*merged, item)
		added++
	}
	return added
}

func (o *Orchestrator) warnStrategy(ctx context.Context, name string, err error) {
	logging.WithContext(ctx, o.logger).Warn("strategy failed; continuing without its candidates",
		logging.String(logging.FieldStrategy, name),
		logging.Error(err))
}

func capItems(items []media.Item, limit int) []media.Item {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// syntheticIDs mints negative identifiers for items that exist only as a
// web-search projection, so they can never collide with directory IDs.
type syntheticIDs struct {
	mu   sync.Mutex
	next int64
}

func newSyntheticIDs() *syntheticIDs {
	return &syntheticIDs{next: -1}
}

func (s *syntheticIDs) mint() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next--
	return id
}
