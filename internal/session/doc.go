// Package session owns the authentication state machine and the identity
// store.
//
// The [Store] persists session artifacts (impersonated user id, or token pair
// plus cached profile) with no validation logic of its own. [MemoryStore]
// scopes a session to one process run, the analog of per-tab storage;
// [FileStore] opts into persistence across CLI invocations.
//
// The [Controller] is the sole writer of the store after initial load. It
// drives the SignedOut → CallbackPending → SignedIn machine, with an Error
// sub-state reachable from anywhere. Token commits are all-or-nothing: a
// failed exchange or profile fetch never leaves a half-authenticated session.
package session
