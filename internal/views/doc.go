// Package views holds the per-view data controllers.
//
// Every controller owns one fetch-then-render lifecycle: activation sets the
// loading flag, issues the defining fetch through the request gateway, and
// clears the flag on every exit path. Mutations follow an optimistic local
// patch discipline:
//
//   - create prepends the server's canonical entity, never a local draft
//   - delete removes by id only after the call succeeds
//   - update replaces the entity in place with the server's returned value
//
// Failures never escape a controller: they are absorbed into its error state
// (and returned for CLI callers' convenience). A generation counter guards
// against stale activation responses patching a newer load. Concurrent add
// triggers for the same catalog id are deduplicated through a pending set
// that is cleared in a defer regardless of outcome.
package views
