// Package websearch provides the optional web-search collaborator used by
// the external-source discovery strategy.
//
// The client targets the Brave Search REST API and returns only the result
// title and snippet; resolution against the content directory happens in the
// orchestrator. A nil client disables the strategy.
package websearch
