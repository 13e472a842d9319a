// Package discovery finds recommendation candidates for a seed title by
// fanning out over independent strategies against the content directory, the
// optional web-search and metadata-enrichment collaborators, and merging the
// results deterministically.
//
// Strategies run concurrently; each failure is absorbed as an empty
// contribution so a single flaky source never aborts a run. Merging happens
// strictly after every strategy reports, in fixed priority order, with a
// running seen-set over (ID, media type) keys. When the merged set stays
// below the configured minimum, an unfiltered similar-title lookup fills the
// gap with items flagged as fallback.
package discovery
