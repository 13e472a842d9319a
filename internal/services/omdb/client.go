package omdb

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
	"github.com/Vinuka-CS/seed-to-stream/internal/services"
)

const (
	defaultBaseURL     = "https://www.omdbapi.com"
	defaultHTTPTimeout = 10 * time.Second
)

// genreIDsByName maps OMDb genre display names onto the content directory's
// genre identifiers. Names absent from the table are dropped.
var genreIDsByName = map[string]int64{
	"action":      28,
	"adventure":   12,
	"animation":   16,
	"comedy":      35,
	"crime":       80,
	"documentary": 99,
	"drama":       18,
	"family":      10751,
	"fantasy":     14,
	"history":     36,
	"horror":      27,
	"music":       10402,
	"musical":     10402,
	"mystery":     9648,
	"romance":     10749,
	"sci-fi":      878,
	"thriller":    53,
	"war":         10752,
	"western":     37,
}

// MapGenres converts an OMDb comma-separated genre string into directory
// genre identifiers, preserving order and skipping unknown names.
func MapGenres(genreList string) []int64 {
	parts := strings.Split(genreList, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if id, ok := genreIDsByName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Result is a resolved OMDb record mapped into directory terms.
type Result struct {
	Title     string
	Plot      string
	Released  string
	Rating    float64
	VoteCount int64
	GenreIDs  []int64
	Poster    string
	MediaType media.MediaType
}

// Client wraps the OMDb lookup API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the OMDb client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// New constructs an OMDb client.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type lookupPayload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Genre      string `json:"Genre"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Lookup resolves a title, optionally pinned to a release year. A miss is
// reported as services.ErrNotFound so callers can distinguish it from an
// outage.
func (c *Client) Lookup(ctx context.Context, title string, year int) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return Result{}, fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Result{}, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("omdb lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload lookupPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(payload.Response, "true") {
		return Result{}, services.Wrap(services.ErrNotFound, "omdb", "lookup", payload.Error, nil)
	}

	mediaType := media.MediaTypeMovie
	if strings.EqualFold(payload.Type, "series") {
		mediaType = media.MediaTypeSeries
	}
	return Result{
		Title:     payload.Title,
		Plot:      payload.Plot,
		Released:  normalizeReleased(payload.Released, payload.Year),
		Rating:    parseRating(payload.ImdbRating),
		VoteCount: parseVotes(payload.ImdbVotes),
		GenreIDs:  MapGenres(payload.Genre),
		Poster:    payload.Poster,
		MediaType: mediaType,
	}, nil
}

func parseRating(raw string) float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return rating
}

func parseVotes(raw string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	votes, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return votes
}

// normalizeReleased converts OMDb's "25 Jun 1982" form into the directory's
// date format, falling back to a bare year.
func normalizeReleased(released, year string) string {
	released = strings.TrimSpace(released)
	if parsed, err := time.Parse("02 Jan 2006", released); err == nil {
		return parsed.Format("2006-01-02")
	}
	year = strings.TrimSpace(year)
	// Series years arrive as ranges such as "1999-2007".
	if len(year) >= 4 {
		if _, err := strconv.Atoi(year[:4]); err == nil {
			return year[:4]
		}
	}
	return ""
}
