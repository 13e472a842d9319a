package scoring

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/logging"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
	"github.com/Vinuka-CS/seed-to-stream/internal/similarity"
)

const (
	defaultConcurrency = 8
	maxSeedCast        = 10
)

// Directory is the slice of the content directory client that scoring needs
// to look up credits and curated keywords per item.
type Directory interface {
	GetCredits(ctx context.Context, id int64, mediaType media.MediaType) (media.Credits, error)
	GetKeywords(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Keyword, error)
}

// Embedder produces semantic vectors for free text. A nil embedder (or any
// embedding failure) drops content similarity to the lexical fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Engine scores candidates against a seed.
type Engine struct {
	directory   Directory
	embedder    Embedder
	logger      *slog.Logger
	concurrency int
}

// Option customizes the engine.
type Option func(*Engine)

// WithConcurrency bounds how many candidates score in parallel.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine constructs a scoring engine. embedder may be nil.
func NewEngine(directory Directory, embedder Embedder, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	engine := &Engine{
		directory:   directory,
		embedder:    embedder,
		logger:      logging.WithComponent(logger, "scoring"),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// seedProfile carries the per-run seed context fetched once and shared
// read-only across concurrent candidate scoring.
type seedProfile struct {
	text     string
	vector   []float32
	people   map[string]media.CreditRole
	keywords map[int64]struct{}
	tone     similarity.Tone
}

// Score computes a ScoredRecommendation for every candidate, preserving input
// order. Candidates score concurrently; a candidate whose scoring path fails
// entirely falls back to a rating-only score instead of being dropped.
func (e *Engine) Score(ctx context.Context, seed media.Item, candidates []media.Item, vocab map[int64]string, weights feedback.Weights) []media.ScoredRecommendation {
	profile := e.buildSeedProfile(ctx, seed)

	recs := make([]media.ScoredRecommendation, len(candidates))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	wg.Add(len(candidates))
	for i := range candidates {
		go func(slot int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			recs[slot] = e.scoreCandidate(ctx, profile, seed, candidates[slot], vocab, weights)
		}(i)
	}
	wg.Wait()
	return recs
}

func (e *Engine) buildSeedProfile(ctx context.Context, seed media.Item) *seedProfile {
	text := seed.Overview
	if seed.Tagline != "" {
		text += " " + seed.Tagline
	}
	profile := &seedProfile{
		text:     text,
		people:   make(map[string]media.CreditRole),
		keywords: make(map[int64]struct{}),
		tone:     similarity.ClassifyTone(text),
	}

	logger := logging.WithContext(ctx, e.logger)
	if e.embedder != nil && text != "" {
		vector, err := e.embedder.Embed(ctx, text)
		if err != nil {
			logger.Warn("seed embedding unavailable; using lexical similarity", logging.Error(err))
		} else {
			profile.vector = vector
		}
	}

	if credits, err := e.directory.GetCredits(ctx, seed.ID, seed.MediaType); err != nil {
		logger.Warn("seed credits unavailable", logging.Error(err))
	} else {
		profile.people = keyPeople(credits)
	}

	if keywords, err := e.directory.GetKeywords(ctx, seed.ID, seed.MediaType); err != nil {
		logger.Warn("seed keywords unavailable", logging.Error(err))
	} else {
		for _, keyword := range keywords {
			profile.keywords[keyword.ID] = struct{}{}
		}
	}
	return profile
}

// keyPeople reduces credits to the people that matter for overlap: the ten
// top-billed cast members plus director and writer crew. When a person holds
// several roles the strongest one wins (director over writer over cast).
func keyPeople(credits media.Credits) map[string]media.CreditRole {
	people := make(map[string]media.CreditRole)

	cast := append([]media.Credit(nil), credits.Cast...)
	for i := 0; i < len(cast) && i < maxSeedCast; i++ {
		if cast[i].Name != "" {
			people[cast[i].Name] = media.RoleCast
		}
	}
	for _, credit := range credits.Crew {
		switch credit.Role {
		case media.RoleDirector:
			people[credit.Name] = media.RoleDirector
		case media.RoleWriter:
			if people[credit.Name] != media.RoleDirector {
				people[credit.Name] = media.RoleWriter
			}
		}
	}
	delete(people, "")
	return people
}

func (e *Engine) scoreCandidate(ctx context.Context, profile *seedProfile, seed, candidate media.Item, vocab map[int64]string, weights feedback.Weights) (rec media.ScoredRecommendation) {
	defer func() {
		if r := recover(); r != nil {
			logging.WithContext(ctx, e.logger).Warn("candidate scoring failed; emitting rating-only score",
				logging.String("title", candidate.Title),
				logging.Any("panic", r))
			rec = media.ScoredRecommendation{
				Item:       candidate,
				TotalScore: int(math.Round(clamp(candidate.VoteAverage/10*50, 0, 120))),
			}
		}
	}()

	candPeople, candKeywords := e.candidateProfile(ctx, candidate)

	breakdown := media.ScoreBreakdown{
		Genre:      genreScore(seed, candidate),
		Rating:     ratingScore(candidate),
		Content:    e.contentScore(ctx, profile, seed, candidate, candKeywords),
		CastCrew:   castCrewScore(profile.people, candPeople),
		Popularity: popularityScore(candidate),
		Tone:       similarity.ToneScore(profile.tone, similarity.ClassifyTone(candidate.Overview)),
		Feedback:   feedbackScore(candidate, weights),
		Keyword:    keywordScore(profile.keywords, candKeywords),
	}

	raw := breakdown.Genre + breakdown.Rating + breakdown.Content + breakdown.CastCrew +
		breakdown.Popularity + breakdown.Tone + breakdown.Feedback + breakdown.Keyword
	total := clamp(raw, 0, 120)
	if candidate.Fallback {
		total = math.Max(0, total-40)
	}
	if candidate.ExternalSourced {
		total = math.Min(120, total+5)
	}

	breakdown.Justification = buildJustification(seed, candidate, breakdown, vocab)
	return media.ScoredRecommendation{
		Item:       candidate,
		TotalScore: int(math.Round(total)),
		Breakdown:  breakdown,
	}
}

// candidateProfile fetches the candidate's credits and keywords. Synthetic
// items (negative identifiers) exist only as web projections and have neither.
func (e *Engine) candidateProfile(ctx context.Context, candidate media.Item) (map[string]media.CreditRole, map[int64]struct{}) {
	if candidate.ID <= 0 {
		return nil, nil
	}

	var people map[string]media.CreditRole
	if credits, err := e.directory.GetCredits(ctx, candidate.ID, candidate.MediaType); err == nil {
		people = keyPeople(credits)
	}

	var keywordSet map[int64]struct{}
	if keywords, err := e.directory.GetKeywords(ctx, candidate.ID, candidate.MediaType); err == nil && len(keywords) > 0 {
		keywordSet = make(map[int64]struct{}, len(keywords))
		for _, keyword := range keywords {
			keywordSet[keyword.ID] = struct{}{}
		}
	}
	return people, keywordSet
}

// ratingScore normalizes the 1-10 rating to 15 points and adds up to 5 points
// of vote-count reliability.
func ratingScore(candidate media.Item) float64 {
	normalized := clamp((candidate.VoteAverage-1)/9, 0, 1)
	reliability := math.Log10(math.Max(1, float64(candidate.VoteCount))) * 1.5
	if reliability > 5 {
		reliability = 5
	}
	return clamp(normalized*15+reliability, 0, 20)
}

func popularityScore(candidate media.Item) float64 {
	return math.Min(1, math.Log10(math.Max(1, float64(candidate.VoteCount)))/5) * 10
}

// contentScore measures synopsis similarity on [0, 25]. Embedding cosine is
// preferred; any embedding failure falls back to deterministic lexical
// similarity. Tagline and curated-keyword overlap add small bonuses.
func (e *Engine) contentScore(ctx context.Context, profile *seedProfile, seed, candidate media.Item, candKeywords map[int64]struct{}) float64 {
	var sim float64
	embedded := false
	if e.embedder != nil && len(profile.vector) > 0 && candidate.Overview != "" {
		vector, err := e.embedder.Embed(ctx, candidate.Overview)
		if err == nil && len(vector) > 0 {
			sim = similarity.Cosine(profile.vector, vector)
			embedded = true
			if seed.Tagline != "" && candidate.Tagline != "" {
				sim += 0.1 * similarity.Jaccard(seed.Tagline, candidate.Tagline)
			}
		}
	}
	if !embedded {
		sim = similarity.Lexical(seed.Overview, seed.Tagline, candidate.Overview, candidate.Tagline)
	}

	if len(profile.keywords) > 0 && len(candKeywords) > 0 {
		common, union := setOverlap(profile.keywords, candKeywords)
		sim += 0.15 * float64(common) / float64(union)
	}
	return clamp(sim, 0, 1) * 25
}

// castCrewScore rewards shared people, weighted by the strongest role both
// sides credit them with: 15 per shared director, 10 per shared writer, 5 per
// shared actor, clamped to 40.
func castCrewScore(seedPeople, candPeople map[string]media.CreditRole) float64 {
	var score float64
	for name, seedRole := range seedPeople {
		candRole, shared := candPeople[name]
		if !shared {
			continue
		}
		switch {
		case seedRole == media.RoleDirector && candRole == media.RoleDirector:
			score += 15
		case seedRole == media.RoleWriter && candRole == media.RoleWriter:
			score += 10
		default:
			score += 5
		}
	}
	return clamp(score, 0, 40)
}

// feedbackScore converts accumulated genre preference weight into up to 20
// points, capping any single genre's contribution at 10.
func feedbackScore(candidate media.Item, weights feedback.Weights) float64 {
	var score float64
	for _, genreID := range candidate.GenreIDs {
		contribution := weights.Genre[genreID] * 0.5
		if contribution > 10 {
			contribution = 10
		}
		score += contribution
	}
	return clamp(score, 0, 20)
}

// keywordScore rewards curated-keyword overlap on [0, 45]. Zero when either
// side has no keywords.
func keywordScore(seedKeywords, candKeywords map[int64]struct{}) float64 {
	if len(seedKeywords) == 0 || len(candKeywords) == 0 {
		return 0
	}
	common, union := setOverlap(seedKeywords, candKeywords)
	if common == 0 {
		return 0
	}

	base := float64(common) / float64(union) * 25
	multiBonus := math.Min(8, float64(common)*1.5)
	rareBonus := math.Min(8, float64(common))

	smaller := len(seedKeywords)
	if len(candKeywords) < smaller {
		smaller = len(candKeywords)
	}
	var perfectBonus float64
	if common == smaller {
		perfectBonus = 4
	}
	return clamp(base+multiBonus+rareBonus+perfectBonus, 0, 45)
}

func setOverlap(a, b map[int64]struct{}) (common, union int) {
	for key := range a {
		if _, ok := b[key]; ok {
			common++
		}
	}
	union = len(a) + len(b) - common
	return common, union
}
