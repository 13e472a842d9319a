// Package media defines the shared data model for recommendation runs:
// catalog items, genres, credits, curated keywords, and scored
// recommendations.
//
// Items are read-only projections fetched fresh for each run. Identifiers are
// unique only within a media type, so deduplication and feedback keying always
// operate on (ID, MediaType) pairs. Items discovered outside the primary
// content directory carry negative synthetic identifiers.
package media
