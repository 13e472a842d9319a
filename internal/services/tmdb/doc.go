// Package tmdb provides the content directory client used by candidate
// discovery and scoring.
//
// It exposes title and person search, similar-title lookup, genre and keyword
// discovery, credits, curated keywords, and the genre vocabulary, all mapped
// into the shared media types. Responses are strongly typed so the
// orchestrator and scoring engine never touch wire payloads. Options allow
// tests to supply custom HTTP clients without modifying production code.
package tmdb
