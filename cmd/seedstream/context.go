package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/Vinuka-CS/seed-to-stream/internal/config"
	"github.com/Vinuka-CS/seed-to-stream/internal/discovery"
	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/logging"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
	"github.com/Vinuka-CS/seed-to-stream/internal/recommend"
	"github.com/Vinuka-CS/seed-to-stream/internal/scoring"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/embedding"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/omdb"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/tmdb"
	"github.com/Vinuka-CS/seed-to-stream/internal/services/websearch"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// app bundles the wired collaborators for one command invocation.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	directory   *tmdb.Client
	store       *feedback.Store
	recommender *recommend.Recommender
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// buildApp wires every configured collaborator into a ready recommender.
// Optional services stay nil when disabled; the core degrades around them.
func (c *commandContext) buildApp() (*app, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	directory, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, fmt.Errorf("configure content directory: %w", err)
	}

	var webSearcher discovery.WebSearcher
	if cfg.WebSearch.Enabled {
		client, err := websearch.New(cfg.WebSearch.APIKey, websearch.WithBaseURL(cfg.WebSearch.BaseURL))
		if err != nil {
			return nil, fmt.Errorf("configure web search: %w", err)
		}
		webSearcher = client
	}

	var enricher discovery.Enricher
	if cfg.OMDb.Enabled {
		client, err := omdb.New(cfg.OMDb.APIKey, omdb.WithBaseURL(cfg.OMDb.BaseURL))
		if err != nil {
			return nil, fmt.Errorf("configure metadata enrichment: %w", err)
		}
		enricher = client
	}

	var embedder scoring.Embedder
	if cfg.Embeddings.Enabled {
		client, err := embedding.New(cfg.Embeddings.APIKey,
			embedding.WithBaseURL(cfg.Embeddings.BaseURL),
			embedding.WithModel(cfg.Embeddings.Model),
			embedding.WithCache(embedding.NewCache(cfg.Embeddings.CacheSize)))
		if err != nil {
			return nil, fmt.Errorf("configure embeddings: %w", err)
		}
		embedder = client
	}

	store, err := feedback.Open(cfg.Paths.FeedbackDB)
	if err != nil {
		return nil, fmt.Errorf("open feedback store: %w", err)
	}

	orchestrator := discovery.New(directory, webSearcher, enricher, logger, discovery.Options{
		MaxCandidates:  cfg.Discovery.MaxCandidates,
		MinCandidates:  cfg.Discovery.MinCandidates,
		SimilarLimit:   cfg.Discovery.SimilarLimit,
		GenreLimit:     cfg.Discovery.GenreLimit,
		LexicalLimit:   cfg.Discovery.LexicalLimit,
		KeywordLimit:   cfg.Discovery.KeywordLimit,
		PerPersonLimit: cfg.Discovery.PerPersonLimit,
		WebResultLimit: cfg.Discovery.WebResultLimit,
	})
	engine := scoring.NewEngine(directory, embedder, logger,
		scoring.WithConcurrency(cfg.Scoring.Concurrency))
	recommender := recommend.New(directory, orchestrator, engine, store, logger,
		recommend.WithResultLimit(cfg.Scoring.ResultLimit))

	return &app{
		cfg:         cfg,
		logger:      logger,
		directory:   directory,
		store:       store,
		recommender: recommender,
	}, nil
}

// resolveSeed searches the directory for the query and picks the first result
// of the requested media type.
func resolveSeed(ctx context.Context, directory *tmdb.Client, query string, mediaType media.MediaType) (media.Item, error) {
	items, err := directory.SearchMulti(ctx, query)
	if err != nil {
		return media.Item{}, fmt.Errorf("search %q: %w", query, err)
	}
	for _, item := range items {
		if item.MediaType == mediaType {
			return item, nil
		}
	}
	return media.Item{}, fmt.Errorf("no %s found for %q", mediaType, query)
}
