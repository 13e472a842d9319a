// Package feedback persists user star ratings and aggregates them into the
// per-genre and per-person preference weights consumed by scoring.
//
// Each record snapshots the rated item's genres, cast, and crew at rating
// time, so weight computation never depends on the item still existing in any
// external catalog. One record exists per (item ID, media type) pair; a new
// rating for the same item replaces the old one. Records are never deleted by
// the core.
package feedback
