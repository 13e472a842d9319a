// Package omdb provides the metadata enrichment client used to resolve
// web-sourced titles that the primary content directory cannot match.
//
// Lookups are by title with an optional year. OMDb reports genres as display
// names, so the package carries a fixed mapping table into the directory's
// genre identifiers.
package omdb
