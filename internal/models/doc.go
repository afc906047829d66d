// Package models defines the domain entities exchanged with the Music Collection Manager API.
//
// The package contains two categories of types:
//
// 1. Catalog entities owned by the remote service:
//   - [Music] : A catalog entry (title, artist, optional album/genre/year/duration)
//   - [User] : A directory entry with a role (user or admin)
//   - [CollectionEntry] : A (user, music) pair with a listening status
//   - [Comment] : An append-only comment on a catalog entry, optionally rated
//
// 2. Session artifacts:
//   - [TokenPair] : The access/refresh token response from the token exchange
//
// The client performs only shape validation (non-empty trimmed content, rating
// bounds). Business-rule validation belongs to the server, so Validate methods
// here are deliberately minimal.
package models
