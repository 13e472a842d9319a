// Package services defines shared utilities consumed by the discovery
// orchestrator and the external collaborator clients.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so collaborator failures
//     carry consistent component and operation context.
//   - Context helpers that stamp ranking-run correlation identifiers for
//     logging.
//
// Collaborator clients return errors tagged with these markers; the core
// absorbs everything except validation failures, which are the only errors a
// ranking run surfaces to its caller.
package services
