package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/logging"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

type fakeScoreDirectory struct {
	credits  map[int64]media.Credits
	keywords map[int64][]media.Keyword
	panicOn  int64
}

func (f *fakeScoreDirectory) GetCredits(ctx context.Context, id int64, mediaType media.MediaType) (media.Credits, error) {
	if f.panicOn != 0 && id == f.panicOn {
		panic("directory blew up")
	}
	if credits, ok := f.credits[id]; ok {
		return credits, nil
	}
	return media.Credits{}, errors.New("credits unavailable")
}

func (f *fakeScoreDirectory) GetKeywords(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Keyword, error) {
	if keywords, ok := f.keywords[id]; ok {
		return keywords, nil
	}
	return nil, errors.New("keywords unavailable")
}

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if vector, ok := f.vectors[text]; ok {
		return vector, nil
	}
	return nil, errors.New("no vector")
}

func bladeRunnerSeed() media.Item {
	return media.Item{
		ID:          100,
		MediaType:   media.MediaTypeMovie,
		Title:       "Blade Runner",
		Overview:    "A blade runner hunts rogue androids in a dystopian future",
		VoteAverage: 8.0,
		VoteCount:   20000,
		GenreIDs:    []int64{878, 18},
	}
}

func newTestEngine(dir Directory, embedder Embedder) *Engine {
	return NewEngine(dir, embedder, logging.NewNop())
}

func TestGenreScorePerfectMatch(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{GenreIDs: []int64{878, 18}}
	if got := genreScore(seed, candidate); got < 90 {
		t.Fatalf("perfect genre match scored %.1f, want >= 90", got)
	}
}

func TestGenreScoreNoOverlap(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{GenreIDs: []int64{35}}
	if got := genreScore(seed, candidate); got != 0 {
		t.Fatalf("disjoint genres scored %.1f, want 0", got)
	}
}

func TestGenreScoreRareGenreBonus(t *testing.T) {
	seed := media.Item{GenreIDs: []int64{10752}}
	rare := genreScore(seed, media.Item{GenreIDs: []int64{10752}})
	seed.GenreIDs = []int64{18}
	common := genreScore(seed, media.Item{GenreIDs: []int64{18}})
	if rare <= common {
		t.Fatalf("rare genre %.1f should outscore common genre %.1f", rare, common)
	}
}

func TestRatingScoreBounds(t *testing.T) {
	low := ratingScore(media.Item{VoteAverage: 1.0, VoteCount: 0})
	if low != 0 {
		t.Fatalf("floor rating scored %.2f, want 0", low)
	}
	high := ratingScore(media.Item{VoteAverage: 10.0, VoteCount: 1000000})
	if high != 20 {
		t.Fatalf("ceiling rating scored %.2f, want 20", high)
	}
}

func TestPopularityScore(t *testing.T) {
	if got := popularityScore(media.Item{VoteCount: 100000}); got != 10 {
		t.Fatalf("100k votes scored %.2f, want 10", got)
	}
	if got := popularityScore(media.Item{VoteCount: 0}); got != 0 {
		t.Fatalf("zero votes scored %.2f, want 0", got)
	}
}

func TestFeedbackScoreFromAccumulatedWeight(t *testing.T) {
	weights := feedback.Weights{Genre: map[int64]float64{27: 10.0}}
	candidate := media.Item{GenreIDs: []int64{27}}
	if got := feedbackScore(candidate, weights); got != 5 {
		t.Fatalf("horror feedback scored %.2f, want 5", got)
	}
}

func TestFeedbackScoreClamped(t *testing.T) {
	weights := feedback.Weights{Genre: map[int64]float64{1: 100, 2: 100, 3: 100}}
	candidate := media.Item{GenreIDs: []int64{1, 2, 3}}
	if got := feedbackScore(candidate, weights); got != 20 {
		t.Fatalf("feedback score %.2f, want clamp at 20", got)
	}
}

func TestKeywordScore(t *testing.T) {
	seedKw := map[int64]struct{}{1: {}, 2: {}, 3: {}}
	candKw := map[int64]struct{}{2: {}, 3: {}, 4: {}}
	// common=2 union=4: base 12.5, multi 3, rare 2, no perfect bonus.
	got := keywordScore(seedKw, candKw)
	if math.Abs(got-17.5) > 0.001 {
		t.Fatalf("keyword score %.3f, want 17.5", got)
	}
	if keywordScore(nil, candKw) != 0 {
		t.Fatal("empty seed keywords must score 0")
	}
	subset := map[int64]struct{}{2: {}, 3: {}}
	withPerfect := keywordScore(seedKw, subset)
	// common=2 union=3: base 16.67, multi 3, rare 2, perfect 4.
	if math.Abs(withPerfect-25.666) > 0.01 {
		t.Fatalf("subset keyword score %.3f, want ~25.667", withPerfect)
	}
}

func TestCastCrewScoreRoleWeights(t *testing.T) {
	seedPeople := map[string]media.CreditRole{
		"Director One": media.RoleDirector,
		"Writer One":   media.RoleWriter,
		"Actor One":    media.RoleCast,
		"Actor Two":    media.RoleCast,
	}
	candPeople := map[string]media.CreditRole{
		"Director One": media.RoleDirector,
		"Writer One":   media.RoleWriter,
		"Actor One":    media.RoleCast,
	}
	if got := castCrewScore(seedPeople, candPeople); got != 30 {
		t.Fatalf("cast/crew score %.1f, want 30 (15+10+5)", got)
	}
}

func TestContentScoreLexicalFallbackDeterministic(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{Overview: "A rogue android hunts a blade runner through a dystopian city"}
	engine := newTestEngine(&fakeScoreDirectory{}, &fakeEmbedder{err: errors.New("service down")})

	profile := engine.buildSeedProfile(context.Background(), seed)
	first := engine.contentScore(context.Background(), profile, seed, candidate, nil)
	second := engine.contentScore(context.Background(), profile, seed, candidate, nil)
	if first != second {
		t.Fatalf("lexical fallback not deterministic: %.4f vs %.4f", first, second)
	}
	if first <= 0 {
		t.Fatalf("overlapping synopses scored %.4f, want > 0", first)
	}
}

func TestContentScorePrefersEmbeddings(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{Overview: "Replicants on the run"}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		seed.Overview:       {1, 0, 0},
		candidate.Overview:  {1, 0, 0},
		"unrelated content": {0, 1, 0},
	}}
	engine := newTestEngine(&fakeScoreDirectory{}, embedder)

	profile := engine.buildSeedProfile(context.Background(), seed)
	got := engine.contentScore(context.Background(), profile, seed, candidate, nil)
	if got != 25 {
		t.Fatalf("identical vectors scored %.2f, want 25", got)
	}
}

func TestScorePreservesInputOrder(t *testing.T) {
	seed := bladeRunnerSeed()
	candidates := []media.Item{
		{ID: 1, MediaType: media.MediaTypeMovie, Title: "First"},
		{ID: 2, MediaType: media.MediaTypeMovie, Title: "Second"},
		{ID: 3, MediaType: media.MediaTypeMovie, Title: "Third"},
	}
	engine := newTestEngine(&fakeScoreDirectory{}, nil)

	recs := engine.Score(context.Background(), seed, candidates, nil, feedback.Weights{})
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Item.ID != candidates[i].ID {
			t.Fatalf("order not preserved at %d: got ID %d", i, rec.Item.ID)
		}
	}
}

func TestScoreTotalWithinBounds(t *testing.T) {
	seed := bladeRunnerSeed()
	maxed := media.Item{
		ID:          2,
		MediaType:   media.MediaTypeMovie,
		Overview:    seed.Overview,
		VoteAverage: 10,
		VoteCount:   1000000,
		GenreIDs:    []int64{878, 18},
	}
	engine := newTestEngine(&fakeScoreDirectory{}, nil)

	recs := engine.Score(context.Background(), seed, []media.Item{maxed}, nil, feedback.Weights{})
	if recs[0].TotalScore < 0 || recs[0].TotalScore > 120 {
		t.Fatalf("total %d out of [0, 120]", recs[0].TotalScore)
	}
}

func TestScoreFallbackPenaltyIsExact(t *testing.T) {
	seed := bladeRunnerSeed()
	base := media.Item{
		ID:          5,
		MediaType:   media.MediaTypeMovie,
		Title:       "Plain",
		Overview:    "An android story",
		VoteAverage: 7.0,
		VoteCount:   2000,
		GenreIDs:    []int64{878},
	}
	flagged := base
	flagged.Fallback = true
	engine := newTestEngine(&fakeScoreDirectory{}, nil)

	recs := engine.Score(context.Background(), seed, []media.Item{base, flagged}, nil, feedback.Weights{})
	if recs[0].TotalScore-recs[1].TotalScore != 40 {
		t.Fatalf("fallback penalty: unflagged %d, flagged %d, want exactly 40 apart",
			recs[0].TotalScore, recs[1].TotalScore)
	}
}

func TestScoreFallbackPenaltyFloorsAtZero(t *testing.T) {
	seed := bladeRunnerSeed()
	weak := media.Item{
		ID:        6,
		MediaType: media.MediaTypeMovie,
		Title:     "Weak",
		Fallback:  true,
	}
	engine := newTestEngine(&fakeScoreDirectory{}, nil)

	recs := engine.Score(context.Background(), seed, []media.Item{weak}, nil, feedback.Weights{})
	if recs[0].TotalScore != 0 {
		t.Fatalf("weak fallback scored %d, want floor at 0", recs[0].TotalScore)
	}
}

func TestScoreBladeRunnerScenario(t *testing.T) {
	seed := bladeRunnerSeed()
	candidateA := media.Item{
		ID:          201,
		MediaType:   media.MediaTypeMovie,
		Title:       "Candidate A",
		Overview:    "A dark dystopian tale of machines and men",
		VoteAverage: 8.1,
		VoteCount:   15000,
		GenreIDs:    []int64{878, 18},
	}
	candidateB := media.Item{
		ID:              -1,
		MediaType:       media.MediaTypeMovie,
		Title:           "Candidate B",
		Overview:        "Found on a review site",
		ExternalSourced: true,
		SourceSnippet:   "Found on a review site",
	}
	engine := newTestEngine(&fakeScoreDirectory{}, nil)

	recs := engine.Score(context.Background(), seed, []media.Item{candidateA, candidateB}, nil, feedback.Weights{})

	a := recs[0]
	if a.Breakdown.Genre < 100 {
		t.Fatalf("candidate A genre score %.1f, want >= 100", a.Breakdown.Genre)
	}
	if a.Breakdown.Tone != 20 {
		t.Fatalf("candidate A tone score %.1f, want 20", a.Breakdown.Tone)
	}

	b := recs[1]
	if b.Breakdown.Genre != 0 {
		t.Fatalf("candidate B genre score %.1f, want 0", b.Breakdown.Genre)
	}
	withoutBoost := b.Item
	withoutBoost.ExternalSourced = false
	plain := engine.Score(context.Background(), seed, []media.Item{withoutBoost}, nil, feedback.Weights{})
	if b.TotalScore-plain[0].TotalScore != 5 {
		t.Fatalf("external boost: %d vs %d, want exactly +5", b.TotalScore, plain[0].TotalScore)
	}
}

func TestScoreEmitsRatingOnlyFallbackOnPanic(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{
		ID:          666,
		MediaType:   media.MediaTypeMovie,
		Title:       "Cursed",
		VoteAverage: 8.0,
		VoteCount:   500,
		GenreIDs:    []int64{878},
	}
	engine := newTestEngine(&fakeScoreDirectory{panicOn: 666}, nil)

	recs := engine.Score(context.Background(), seed, []media.Item{candidate}, nil, feedback.Weights{})
	if len(recs) != 1 {
		t.Fatalf("panicking candidate was dropped")
	}
	want := int(math.Round(8.0 / 10 * 50))
	if recs[0].TotalScore != want {
		t.Fatalf("rating-only score %d, want %d", recs[0].TotalScore, want)
	}
	if recs[0].Breakdown != (media.ScoreBreakdown{}) {
		t.Fatalf("expected empty breakdown, got %+v", recs[0].Breakdown)
	}
}

func TestJustificationMentionsProvenance(t *testing.T) {
	seed := bladeRunnerSeed()
	candidate := media.Item{
		GenreIDs:        []int64{878},
		VoteAverage:     8.2,
		VoteCount:       9000,
		ExternalSourced: true,
		SourceSnippet:   "A slow-burning neo-noir about memory and identity.",
	}
	breakdown := media.ScoreBreakdown{CastCrew: 20, Tone: 20}
	vocab := map[int64]string{878: "Science Fiction"}

	text := buildJustification(seed, candidate, breakdown, vocab)
	for _, want := range []string{"Science Fiction", "highly rated", "widely reviewed", "strong shared cast and crew", "matching tone", "neo-noir"} {
		if !strings.Contains(text, want) {
			t.Errorf("justification %q missing %q", text, want)
		}
	}
}

func TestJustificationExcerptKeepsValidUTF8(t *testing.T) {
	// Byte-wise truncation would cut this snippet in the middle of a rune.
	candidate := media.Item{
		ExternalSourced: true,
		SourceSnippet:   "x" + strings.Repeat("é", 200),
	}

	text := buildJustification(media.Item{}, candidate, media.ScoreBreakdown{}, nil)
	if !utf8.ValidString(text) {
		t.Fatalf("justification contains invalid UTF-8: %q", text)
	}
	if strings.Contains(text, `\x`) {
		t.Fatalf("excerpt was cut mid-rune: %q", text)
	}
	if !strings.Contains(text, "...") {
		t.Fatalf("long snippet should be excerpted: %q", text)
	}
}
