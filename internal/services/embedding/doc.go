// Package embedding provides the semantic-similarity collaborator: a client
// for an OpenAI-compatible embeddings endpoint plus an explicit bounded cache
// keyed by normalized text.
//
// The scoring engine treats an error or empty vector from Embed as a signal
// to fall back to deterministic lexical similarity, so this package never
// needs to guarantee availability.
package embedding
