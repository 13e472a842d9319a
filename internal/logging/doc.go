// Package logging wraps log/slog construction and provides the shared
// attribute helpers used across the recommendation pipeline.
//
// Loggers are built once from configuration (console or JSON format, level)
// and passed down explicitly. Standardized field constants keep discovery
// strategies, scoring, and collaborator clients grepable in structured
// output. NewNop returns a logger that discards everything for tests.
package logging
