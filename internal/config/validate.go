package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateWebSearch(); err != nil {
		return err
	}
	if err := c.validateEmbeddings(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/seedstream/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'seedstream config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateOMDb() error {
	if c.OMDb.Enabled && c.OMDb.APIKey == "" {
		return errors.New("omdb.api_key must be set when omdb.enabled is true (or set OMDB_API_KEY)")
	}
	return nil
}

func (c *Config) validateWebSearch() error {
	if c.WebSearch.Enabled && c.WebSearch.APIKey == "" {
		return errors.New("websearch.api_key must be set when websearch.enabled is true (or set BRAVE_API_KEY)")
	}
	return nil
}

func (c *Config) validateEmbeddings() error {
	if c.Embeddings.Enabled && c.Embeddings.APIKey == "" {
		return errors.New("embeddings.api_key must be set when embeddings.enabled is true (or set OPENAI_API_KEY)")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	if err := ensurePositiveMap(map[string]int{
		"discovery.max_candidates":   c.Discovery.MaxCandidates,
		"discovery.min_candidates":   c.Discovery.MinCandidates,
		"discovery.similar_limit":    c.Discovery.SimilarLimit,
		"discovery.genre_limit":      c.Discovery.GenreLimit,
		"discovery.lexical_limit":    c.Discovery.LexicalLimit,
		"discovery.keyword_limit":    c.Discovery.KeywordLimit,
		"discovery.per_person_limit": c.Discovery.PerPersonLimit,
		"discovery.web_result_limit": c.Discovery.WebResultLimit,
	}); err != nil {
		return err
	}
	if c.Discovery.MinCandidates > c.Discovery.MaxCandidates {
		return errors.New("discovery.min_candidates must not exceed discovery.max_candidates")
	}
	return nil
}

func (c *Config) validateScoring() error {
	return ensurePositiveMap(map[string]int{
		"scoring.concurrency":  c.Scoring.Concurrency,
		"scoring.result_limit": c.Scoring.ResultLimit,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
