// Package recommend exposes the single ranking entry point. It wires
// candidate discovery, scoring, and feedback personalization into one run:
// validate the seed, fan out discovery, score every candidate, then return
// the top results sorted by score.
package recommend

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/logging"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
	"github.com/Vinuka-CS/seed-to-stream/internal/services"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/tmdb"
)

// DefaultResultLimit caps the ranked list handed back to callers.
const DefaultResultLimit = 12

// Discoverer produces the deduplicated candidate list for a seed.
type Discoverer interface {
	Discover(ctx context.Context, seed media.Item) []media.Item
}

// Scorer turns candidates into scored recommendations, preserving order.
type Scorer interface {
	Score(ctx context.Context, seed media.Item, candidates []media.Item, vocab map[int64]string, weights feedback.Weights) []media.ScoredRecommendation
}

// Directory is the slice of the content directory used to enrich the seed and
// fetch the genre vocabulary.
type Directory interface {
	GetDetails(ctx context.Context, id int64, mediaType media.MediaType) (tmdb.Details, error)
	GetGenres(ctx context.Context, mediaType media.MediaType) ([]media.Genre, error)
}

// FeedbackSource reads the user's past ratings. May be nil when no feedback
// store is configured.
type FeedbackSource interface {
	ReadAll(ctx context.Context) ([]feedback.Record, error)
}

// Recommender runs end-to-end ranking.
type Recommender struct {
	directory   Directory
	discoverer  Discoverer
	scorer      Scorer
	feedback    FeedbackSource
	logger      *slog.Logger
	resultLimit int
}

// Option customizes the recommender.
type Option func(*Recommender)

// WithResultLimit overrides the presentation cap.
func WithResultLimit(limit int) Option {
	return func(r *Recommender) {
		if limit > 0 {
			r.resultLimit = limit
		}
	}
}

// New constructs a recommender. feedbackSource may be nil.
func New(directory Directory, discoverer Discoverer, scorer Scorer, feedbackSource FeedbackSource, logger *slog.Logger, opts ...Option) *Recommender {
	if logger == nil {
		logger = logging.NewNop()
	}
	rec := &Recommender{
		directory:   directory,
		discoverer:  discoverer,
		scorer:      scorer,
		feedback:    feedbackSource,
		logger:      logging.WithComponent(logger, "recommend"),
		resultLimit: DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

// Rank produces the ordered recommendation list for a seed. An invalid seed
// fails fast; every downstream signal failure degrades instead of aborting,
// so a run either errors on the seed or returns a (possibly empty) list.
func (r *Recommender) Rank(ctx context.Context, seed media.Item) ([]media.ScoredRecommendation, error) {
	if err := validateSeed(seed); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("ranking run started",
		logging.String(logging.FieldSeed, seed.Title),
		logging.Int64("seed_id", seed.ID),
		logging.String("media_type", string(seed.MediaType)))

	seed = r.enrichSeed(ctx, logger, seed)
	vocab := r.genreVocabulary(ctx, logger)
	weights := r.feedbackWeights(ctx, logger)

	candidates := r.discoverer.Discover(ctx, seed)
	if len(candidates) == 0 {
		logger.Info("ranking run found no candidates")
		return []media.ScoredRecommendation{}, nil
	}

	recs := r.scorer.Score(ctx, seed, candidates, vocab, weights)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].TotalScore > recs[j].TotalScore
	})
	if len(recs) > r.resultLimit {
		recs = recs[:r.resultLimit]
	}

	logger.Info("ranking run complete", logging.Int("results", len(recs)))
	return recs, nil
}

func validateSeed(seed media.Item) error {
	if seed.ID == 0 {
		return services.Wrap(services.ErrValidation, "recommend", "rank",
			"seed item has no identifier", nil)
	}
	if !seed.MediaType.Valid() {
		return services.Wrap(services.ErrValidation, "recommend", "rank",
			"seed item has no valid media type", nil)
	}
	return nil
}

// enrichSeed fills in the tagline and full genre list from the directory.
// Enrichment failure leaves the seed as provided.
func (r *Recommender) enrichSeed(ctx context.Context, logger *slog.Logger, seed media.Item) media.Item {
	details, err := r.directory.GetDetails(ctx, seed.ID, seed.MediaType)
	if err != nil {
		logger.Warn("seed enrichment unavailable; scoring with provided fields", logging.Error(err))
		return seed
	}
	if details.Tagline != "" {
		seed.Tagline = details.Tagline
	}
	if len(details.Item.GenreIDs) > 0 {
		seed.GenreIDs = details.Item.GenreIDs
	}
	if seed.Overview == "" {
		seed.Overview = details.Item.Overview
	}
	return seed
}

// genreVocabulary pools genre names across both media types so justification
// text can name genres regardless of the seed's type.
func (r *Recommender) genreVocabulary(ctx context.Context, logger *slog.Logger) map[int64]string {
	vocab := make(map[int64]string)
	for _, mediaType := range []media.MediaType{media.MediaTypeMovie, media.MediaTypeSeries} {
		genres, err := r.directory.GetGenres(ctx, mediaType)
		if err != nil {
			logger.Warn("genre vocabulary unavailable",
				logging.String("media_type", string(mediaType)),
				logging.Error(err))
			continue
		}
		for _, genre := range genres {
			vocab[genre.ID] = genre.Name
		}
	}
	return vocab
}

func (r *Recommender) feedbackWeights(ctx context.Context, logger *slog.Logger) feedback.Weights {
	if r.feedback == nil {
		return feedback.Weights{}
	}
	records, err := r.feedback.ReadAll(ctx)
	if err != nil {
		logger.Warn("feedback history unavailable; ranking without personalization", logging.Error(err))
		return feedback.Weights{}
	}
	return feedback.Aggregate(records)
}
