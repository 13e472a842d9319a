package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// itemPayload covers the fields shared by search, similar, discover, and
// combined-credits entries. Movie and TV payloads use different field names
// for title and release date.
type itemPayload struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	MediaType    string  `json:"media_type"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	GenreIDs     []int64 `json:"genre_ids"`
}

type pagedResponse struct {
	Page         int           `json:"page"`
	Results      []itemPayload `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

func (p itemPayload) toItem(fallbackType media.MediaType) media.Item {
	mediaType := fallbackType
	switch p.MediaType {
	case "movie":
		mediaType = media.MediaTypeMovie
	case "tv":
		mediaType = media.MediaTypeSeries
	}
	title := p.Title
	if title == "" {
		title = p.Name
	}
	releaseDate := p.ReleaseDate
	if releaseDate == "" {
		releaseDate = p.FirstAirDate
	}
	return media.Item{
		ID:          p.ID,
		MediaType:   mediaType,
		Title:       title,
		Overview:    p.Overview,
		ReleaseDate: releaseDate,
		VoteAverage: p.VoteAverage,
		VoteCount:   p.VoteCount,
		GenreIDs:    p.GenreIDs,
	}
}

func wirePath(mediaType media.MediaType) string {
	if mediaType == media.MediaTypeSeries {
		return "tv"
	}
	return "movie"
}

func (c *Client) get(ctx context.Context, path string, params url.Values, payload any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// SearchMulti searches movies and TV shows by free-text query.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]media.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	var payload pagedResponse
	if err := c.get(ctx, "/search/multi", params, &payload); err != nil {
		return nil, err
	}
	items := make([]media.Item, 0, len(payload.Results))
	for _, result := range payload.Results {
		// Multi search interleaves people; they carry no title.
		if result.MediaType != "movie" && result.MediaType != "tv" {
			continue
		}
		items = append(items, result.toItem(media.MediaTypeMovie))
	}
	return items, nil
}

// GetSimilar fetches the directory's similar-title list for an item.
func (c *Client) GetSimilar(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Item, error) {
	if id <= 0 {
		return nil, errors.New("item id must be positive")
	}
	var payload pagedResponse
	path := fmt.Sprintf("/%s/%d/similar", wirePath(mediaType), id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	items := make([]media.Item, 0, len(payload.Results))
	for _, result := range payload.Results {
		items = append(items, result.toItem(mediaType))
	}
	return items, nil
}

// Details carries the per-title fields only available from the details
// endpoint, notably the tagline and full genre objects.
type Details struct {
	Item    media.Item
	Tagline string
	Genres  []media.Genre
}

type detailsPayload struct {
	itemPayload
	Tagline string `json:"tagline"`
	Genres  []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// GetDetails fetches full details for an item, including its tagline.
func (c *Client) GetDetails(ctx context.Context, id int64, mediaType media.MediaType) (Details, error) {
	if id <= 0 {
		return Details{}, errors.New("item id must be positive")
	}
	var payload detailsPayload
	path := fmt.Sprintf("/%s/%d", wirePath(mediaType), id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return Details{}, err
	}
	item := payload.toItem(mediaType)
	item.Tagline = payload.Tagline
	genres := make([]media.Genre, 0, len(payload.Genres))
	for _, genre := range payload.Genres {
		genres = append(genres, media.Genre{ID: genre.ID, Name: genre.Name})
		item.GenreIDs = append(item.GenreIDs, genre.ID)
	}
	return Details{Item: item, Tagline: payload.Tagline, Genres: genres}, nil
}

type creditsPayload struct {
	Cast []struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

func crewRole(job string) media.CreditRole {
	switch strings.ToLower(strings.TrimSpace(job)) {
	case "director":
		return media.RoleDirector
	case "writer", "screenplay", "creator":
		return media.RoleWriter
	default:
		return media.RoleOther
	}
}

// GetCredits fetches the cast and crew for an item.
func (c *Client) GetCredits(ctx context.Context, id int64, mediaType media.MediaType) (media.Credits, error) {
	if id <= 0 {
		return media.Credits{}, errors.New("item id must be positive")
	}
	var payload creditsPayload
	path := fmt.Sprintf("/%s/%d/credits", wirePath(mediaType), id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return media.Credits{}, err
	}
	credits := media.Credits{
		Cast: make([]media.Credit, 0, len(payload.Cast)),
		Crew: make([]media.Credit, 0, len(payload.Crew)),
	}
	for _, entry := range payload.Cast {
		credits.Cast = append(credits.Cast, media.Credit{Name: entry.Name, Role: media.RoleCast, Order: entry.Order})
	}
	for _, entry := range payload.Crew {
		credits.Crew = append(credits.Crew, media.Credit{Name: entry.Name, Role: crewRole(entry.Job)})
	}
	return credits, nil
}

type keywordsPayload struct {
	// Movies return "keywords", TV returns "results".
	Keywords []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"keywords"`
	Results []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

// GetKeywords fetches the curated keyword tags for an item.
func (c *Client) GetKeywords(ctx context.Context, id int64, mediaType media.MediaType) ([]media.Keyword, error) {
	if id <= 0 {
		return nil, errors.New("item id must be positive")
	}
	var payload keywordsPayload
	path := fmt.Sprintf("/%s/%d/keywords", wirePath(mediaType), id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	raw := payload.Keywords
	if len(raw) == 0 {
		raw = payload.Results
	}
	keywords := make([]media.Keyword, 0, len(raw))
	for _, keyword := range raw {
		keywords = append(keywords, media.Keyword{ID: keyword.ID, Name: keyword.Name})
	}
	return keywords, nil
}

// Discover queries the directory's discover endpoint for the media type.
func (c *Client) Discover(ctx context.Context, mediaType media.MediaType, filters media.DiscoverFilters) ([]media.Item, error) {
	params := url.Values{}
	if len(filters.GenreIDs) > 0 {
		params.Set("with_genres", joinIDs(filters.GenreIDs))
	}
	if len(filters.KeywordIDs) > 0 {
		params.Set("with_keywords", joinIDs(filters.KeywordIDs))
	}
	if filters.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.FormatInt(filters.MinVoteCount, 10))
	}
	if filters.SortBy != "" {
		params.Set("sort_by", filters.SortBy)
	}
	var payload pagedResponse
	if err := c.get(ctx, "/discover/"+wirePath(mediaType), params, &payload); err != nil {
		return nil, err
	}
	items := make([]media.Item, 0, len(payload.Results))
	for _, result := range payload.Results {
		items = append(items, result.toItem(mediaType))
	}
	return items, nil
}

type genreListPayload struct {
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// GetGenres fetches the genre vocabulary for a media type.
func (c *Client) GetGenres(ctx context.Context, mediaType media.MediaType) ([]media.Genre, error) {
	var payload genreListPayload
	if err := c.get(ctx, "/genre/"+wirePath(mediaType)+"/list", nil, &payload); err != nil {
		return nil, err
	}
	genres := make([]media.Genre, 0, len(payload.Genres))
	for _, genre := range payload.Genres {
		genres = append(genres, media.Genre{ID: genre.ID, Name: genre.Name})
	}
	return genres, nil
}

type personSearchPayload struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// SearchPerson searches the person index by name.
func (c *Client) SearchPerson(ctx context.Context, name string) ([]int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("person name must not be empty")
	}
	params := url.Values{}
	params.Set("query", name)
	var payload personSearchPayload
	if err := c.get(ctx, "/search/person", params, &payload); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(payload.Results))
	for _, result := range payload.Results {
		ids = append(ids, result.ID)
	}
	return ids, nil
}

type combinedCreditsPayload struct {
	Cast []itemPayload `json:"cast"`
	Crew []itemPayload `json:"crew"`
}

// GetPersonCombinedWorks fetches a person's combined filmography restricted
// to the given media type.
func (c *Client) GetPersonCombinedWorks(ctx context.Context, personID int64, mediaType media.MediaType) ([]media.Item, error) {
	if personID <= 0 {
		return nil, errors.New("person id must be positive")
	}
	var payload combinedCreditsPayload
	path := fmt.Sprintf("/person/%d/combined_credits", personID)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	items := make([]media.Item, 0, len(payload.Cast)+len(payload.Crew))
	seen := make(map[int64]struct{}, len(payload.Cast)+len(payload.Crew))
	for _, entry := range append(payload.Cast, payload.Crew...) {
		item := entry.toItem(mediaType)
		if item.MediaType != mediaType {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
