// Package api is the request gateway for the Music Collection Manager API.
//
// Every outbound call goes through [Client.Do], which decides whether to
// attach an identity credential, sets the JSON content type on bodied
// requests, and maps failures into a uniform taxonomy:
//
//   - [shared.ErrUnauthenticated] : no credential available locally; the call
//     is short-circuited before any network traffic under the OAuth strategy
//   - [NetworkError] : transport-level failure (unreachable host, timeout);
//     always user-retryable
//   - [HTTPError] : the server rejected the request; callers inspect the
//     status code, 403 being authorization-denied
//
// A 204 response resolves to a nil result rather than an error.
//
// The identity credential is read from a [CredentialSource] on each request:
// either the impersonated user id (sent as the X-User-ID header) or a bearer
// access token, never both. The gateway never writes session state.
package api
