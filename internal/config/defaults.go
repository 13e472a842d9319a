package config

const (
	defaultDataDir        = "~/.local/share/seedstream"
	defaultFeedbackDB     = "~/.local/share/seedstream/feedback.db"
	defaultLogDir         = "~/.local/share/seedstream/logs"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultTMDBLanguage   = "en-US"
	defaultOMDbBaseURL    = "https://www.omdbapi.com"
	defaultWebSearchURL   = "https://api.search.brave.com/res/v1"
	defaultEmbeddingsURL  = "https://api.openai.com/v1"
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultEmbeddingCache = 512
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	defaultMaxCandidates  = 50
	defaultMinCandidates  = 10
	defaultSimilarLimit   = 20
	defaultGenreLimit     = 15
	defaultLexicalLimit   = 10
	defaultKeywordLimit   = 12
	defaultPerPersonLimit = 5
	defaultWebResultLimit = 8

	defaultScoringConcurrency = 8
	defaultResultLimit        = 12
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			FeedbackDB: defaultFeedbackDB,
			LogDir:     defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		OMDb: OMDb{
			BaseURL: defaultOMDbBaseURL,
		},
		WebSearch: WebSearch{
			BaseURL: defaultWebSearchURL,
		},
		Embeddings: Embeddings{
			BaseURL:   defaultEmbeddingsURL,
			Model:     defaultEmbeddingModel,
			CacheSize: defaultEmbeddingCache,
		},
		Discovery: Discovery{
			MaxCandidates:  defaultMaxCandidates,
			MinCandidates:  defaultMinCandidates,
			SimilarLimit:   defaultSimilarLimit,
			GenreLimit:     defaultGenreLimit,
			LexicalLimit:   defaultLexicalLimit,
			KeywordLimit:   defaultKeywordLimit,
			PerPersonLimit: defaultPerPersonLimit,
			WebResultLimit: defaultWebResultLimit,
		},
		Scoring: Scoring{
			Concurrency: defaultScoringConcurrency,
			ResultLimit: defaultResultLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
