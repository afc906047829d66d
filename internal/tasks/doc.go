// Package tasks orchestrates long-running catalog operations with real-time
// progress reporting.
//
// The [SyncEngine] refreshes the offline catalog cache: it fetches the full
// listing, optionally warms per-entry comment counts through a rate-limited
// worker pool, and prunes cached entries the server no longer lists.
//
// Progress updates are sent through non-blocking channels; a full or absent
// channel never stalls the operation.
package tasks
