package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
	"github.com/Vinuka-CS/seed-to-stream/internal/similarity"
)

// Bounded fan-out caps for strategy-internal sub-queries.
const (
	maxGenreQueries   = 2
	maxTokenQueries   = 3
	maxSeedKeywords   = 5
	maxPersonQueries  = 3
	maxTopBilledCast  = 5
	maxCrewCandidates = 3
)

// similarContent asks the directory for titles similar to the seed and keeps
// well-rated, well-known, reasonably recent ones sharing a genre.
func (o *Orchestrator) similarContent(ctx context.Context, seed media.Item, _ *syntheticIDs) []media.Item {
	items, err := o.directory.GetSimilar(ctx, seed.ID, seed.MediaType)
	if err != nil {
		o.warnStrategy(ctx, "similar_content", err)
		return nil
	}
	items = Filter(items, seed, FilterOptions{
		MinRating:           6.0,
		MinVoteCount:        100,
		MaxAgeYears:         50,
		RequireGenreOverlap: true,
	})
	return capItems(items, o.opts.SimilarLimit)
}

// genreDiscovery queries discover-by-genre for the seed's first two genres,
// best-rated first, then applies stricter thresholds.
func (o *Orchestrator) genreDiscovery(ctx context.Context, seed media.Item, _ *syntheticIDs) []media.Item {
	genres := seed.GenreIDs
	if len(genres) > maxGenreQueries {
		genres = genres[:maxGenreQueries]
	}
	var collected []media.Item
	for _, genreID := range genres {
		items, err := o.directory.Discover(ctx, seed.MediaType, media.DiscoverFilters{
			GenreIDs:     []int64{genreID},
			MinVoteCount: 100,
			SortBy:       "vote_average.desc",
		})
		if err != nil {
			o.warnStrategy(ctx, "genre_discovery", err)
			continue
		}
		collected = append(collected, items...)
	}
	collected = Filter(collected, seed, FilterOptions{
		MinRating:           6.5,
		MinVoteCount:        200,
		MaxAgeYears:         40,
		RequireGenreOverlap: true,
	})
	return capItems(collected, o.opts.GenreLimit)
}

// lexicalSearch extracts the most frequent meaningful tokens from the seed's
// title and synopsis and searches the directory by each of the top three.
func (o *Orchestrator) lexicalSearch(ctx context.Context, seed media.Item, _ *syntheticIDs) []media.Item {
	tokens := similarity.TopTokens(seed.Title+" "+seed.Overview, 5)
	if len(tokens) > maxTokenQueries {
		tokens = tokens[:maxTokenQueries]
	}
	var collected []media.Item
	for _, token := range tokens {
		items, err := o.directory.SearchMulti(ctx, token)
		if err != nil {
			o.warnStrategy(ctx, "lexical_search", err)
			continue
		}
		for _, item := range items {
			if item.MediaType != seed.MediaType || item.ID == seed.ID {
				continue
			}
			collected = append(collected, item)
		}
	}
	collected = Filter(collected, seed, FilterOptions{
		MinRating:           6.0,
		MinVoteCount:        150,
		MaxAgeYears:         45,
		RequireGenreOverlap: true,
	})
	return capItems(collected, o.opts.LexicalLimit)
}

// curatedKeywords discovers titles sharing the seed's curated taxonomy tags.
func (o *Orchestrator) curatedKeywords(ctx context.Context, seed media.Item, _ *syntheticIDs) []media.Item {
	keywords, err := o.directory.GetKeywords(ctx, seed.ID, seed.MediaType)
	if err != nil {
		o.warnStrategy(ctx, "curated_keywords", err)
		return nil
	}
	if len(keywords) == 0 {
		return nil
	}
	if len(keywords) > maxSeedKeywords {
		keywords = keywords[:maxSeedKeywords]
	}
	keywordIDs := make([]int64, 0, len(keywords))
	for _, keyword := range keywords {
		keywordIDs = append(keywordIDs, keyword.ID)
	}
	items, err := o.directory.Discover(ctx, seed.MediaType, media.DiscoverFilters{
		KeywordIDs:   keywordIDs,
		MinVoteCount: 200,
	})
	if err != nil {
		o.warnStrategy(ctx, "curated_keywords", err)
		return nil
	}
	items = Filter(items, seed, FilterOptions{
		MinRating:           6.5,
		MinVoteCount:        200,
		MaxAgeYears:         40,
		RequireGenreOverlap: true,
	})
	return capItems(items, o.opts.KeywordLimit)
}

// castCrew fetches the seed's credits and pulls other works by its top-billed
// cast and key crew. Genre overlap is deliberately not required here.
func (o *Orchestrator) castCrew(ctx context.Context, seed media.Item, _ *syntheticIDs) []media.Item {
	credits, err := o.directory.GetCredits(ctx, seed.ID, seed.MediaType)
	if err != nil {
		o.warnStrategy(ctx, "cast_crew", err)
		return nil
	}

	cast := append([]media.Credit(nil), credits.Cast...)
	sort.SliceStable(cast, func(i, j int) bool { return cast[i].Order < cast[j].Order })
	if len(cast) > maxTopBilledCast {
		cast = cast[:maxTopBilledCast]
	}

	var crew []media.Credit
	for _, credit := range credits.Crew {
		if credit.Role == media.RoleDirector || credit.Role == media.RoleWriter {
			crew = append(crew, credit)
			if len(crew) == maxCrewCandidates {
				break
			}
		}
	}

	people := append(cast, crew...)
	if len(people) > maxPersonQueries {
		people = people[:maxPersonQueries]
	}

	var collected []media.Item
	for _, person := range people {
		personIDs, err := o.directory.SearchPerson(ctx, person.Name)
		if err != nil {
			o.warnStrategy(ctx, "cast_crew", err)
			continue
		}
		if len(personIDs) == 0 {
			continue
		}
		works, err := o.directory.GetPersonCombinedWorks(ctx, personIDs[0], seed.MediaType)
		if err != nil {
			o.warnStrategy(ctx, "cast_crew", err)
			continue
		}
		filtered := make([]media.Item, 0, len(works))
		for _, work := range works {
			if work.ID != seed.ID {
				filtered = append(filtered, work)
			}
		}
		filtered = Filter(filtered, seed, FilterOptions{
			MinRating:    6.0,
			MinVoteCount: 100,
			MaxAgeYears:  50,
		})
		collected = append(collected, capItems(filtered, o.opts.PerPersonLimit)...)
	}
	return collected
}

// Trusted review sites the web-search strategy restricts itself to, and the
// title boilerplate those sites append to page titles.
var (
	trustedSites = []string{"rottentomatoes.com", "imdb.com"}

	siteSuffixes = []string{
		" - rotten tomatoes",
		" | rotten tomatoes",
		" - imdb",
		" | imdb",
		" reviews",
		" review",
		" (film)",
		" (tv series)",
	}
)

func stripSiteSuffix(title string) string {
	trimmed := strings.TrimSpace(title)
	lowered := strings.ToLower(trimmed)
	for _, suffix := range siteSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
			lowered = strings.ToLower(trimmed)
		}
	}
	return trimmed
}

// webSourced queries the web-search collaborator for similar titles discussed
// on trusted review sites and resolves each hit against the directory, then
// the enrichment service, before synthesizing a minimal item from the snippet
// alone. Present only when a web-search client is configured.
func (o *Orchestrator) webSourced(ctx context.Context, seed media.Item, ids *syntheticIDs) []media.Item {
	if o.webSearch == nil {
		return nil
	}
	medium := "movies"
	if seed.MediaType == media.MediaTypeSeries {
		medium = "shows"
	}
	query := fmt.Sprintf("%s similar %s site:%s OR site:%s", seed.Title, medium, trustedSites[0], trustedSites[1])
	results, err := o.webSearch.Search(ctx, query, o.opts.WebResultLimit)
	if err != nil {
		o.warnStrategy(ctx, "web_search", err)
		return nil
	}
	if len(results) > o.opts.WebResultLimit {
		results = results[:o.opts.WebResultLimit]
	}

	var collected []media.Item
	for _, result := range results {
		title := stripSiteSuffix(result.Title)
		if title == "" || strings.EqualFold(title, seed.Title) {
			continue
		}

		if item, ok := o.resolveInDirectory(ctx, title, seed.MediaType); ok {
			item.ExternalSourced = true
			item.SourceSnippet = result.Snippet
			collected = append(collected, item)
			continue
		}

		if item, ok := o.resolveViaEnricher(ctx, title, ids); ok {
			item.ExternalSourced = true
			item.SourceSnippet = result.Snippet
			collected = append(collected, item)
			continue
		}

		// Snippet-only projection: no ratings data exists to filter on.
		collected = append(collected, media.Item{
			ID:              ids.mint(),
			MediaType:       seed.MediaType,
			Title:           cases.Title(language.Und).String(title),
			Overview:        result.Snippet,
			ExternalSourced: true,
			SourceSnippet:   result.Snippet,
		})
	}

	resolved := collected[:0]
	for _, item := range collected {
		// Synthesized items carry no votes or rating and bypass the floors.
		if item.ID < 0 && item.VoteCount == 0 && item.VoteAverage == 0 {
			resolved = append(resolved, item)
			continue
		}
		kept := Filter([]media.Item{item}, seed, FilterOptions{
			MinRating:    5.5,
			MinVoteCount: 50,
			MaxAgeYears:  60,
		})
		resolved = append(resolved, kept...)
	}
	return resolved
}

func (o *Orchestrator) resolveInDirectory(ctx context.Context, title string, mediaType media.MediaType) (media.Item, bool) {
	matches, err := o.directory.SearchMulti(ctx, title)
	if err != nil {
		o.warnStrategy(ctx, "web_search", err)
		return media.Item{}, false
	}
	loweredTitle := strings.ToLower(title)
	var substring *media.Item
	for i := range matches {
		match := matches[i]
		if match.MediaType != mediaType {
			continue
		}
		loweredMatch := strings.ToLower(match.Title)
		if loweredMatch == loweredTitle {
			return match, true
		}
		if substring == nil && (strings.Contains(loweredMatch, loweredTitle) || strings.Contains(loweredTitle, loweredMatch)) {
			substring = &matches[i]
		}
	}
	if substring != nil {
		return *substring, true
	}
	return media.Item{}, false
}

func (o *Orchestrator) resolveViaEnricher(ctx context.Context, title string, ids *syntheticIDs) (media.Item, bool) {
	if o.enricher == nil {
		return media.Item{}, false
	}
	result, err := o.enricher.Lookup(ctx, title, 0)
	if err != nil {
		return media.Item{}, false
	}
	return media.Item{
		ID:          ids.mint(),
		MediaType:   result.MediaType,
		Title:       result.Title,
		Overview:    result.Plot,
		ReleaseDate: result.Released,
		VoteAverage: result.Rating,
		VoteCount:   result.VoteCount,
		GenreIDs:    result.GenreIDs,
	}, true
}

// fallbackFill re-issues the plain similar-content lookup without filtering
// and returns up to gap previously-unseen items flagged as fallback.
func (o *Orchestrator) fallbackFill(ctx context.Context, seed media.Item, seen map[media.Key]struct{}, gap int) []media.Item {
	if gap <= 0 {
		return nil
	}
	items, err := o.directory.GetSimilar(ctx, seed.ID, seed.MediaType)
	if err != nil {
		o.warnStrategy(ctx, "fallback", err)
		return nil
	}
	fill := make([]media.Item, 0, gap)
	for _, item := range items {
		item.MediaType = seed.MediaType
		if _, dup := seen[item.Key()]; dup {
			continue
		}
		item.Fallback = true
		fill = append(fill, item)
		if len(fill) == gap {
			break
		}
	}
	return fill
}
