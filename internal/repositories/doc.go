// package repositories provides the local persistence layer.
//
// The only store is the catalog cache: a sqlite snapshot of the remote
// catalog that the list view falls back to when the service is unreachable.
// The remote service stays authoritative; the cache is refreshed on every
// successful listing and by the sync engine.
package repositories
