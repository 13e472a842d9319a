// Package similarity provides the pure text-comparison primitives used by
// scoring: cosine similarity over embedding vectors, a deterministic lexical
// fallback for when no embedding is available, and coarse tone
// classification.
//
// Tokenization lowercases text, keeps alphabetic tokens longer than three
// characters, and drops common English stopwords. All functions are
// side-effect free and never perform I/O.
package similarity
