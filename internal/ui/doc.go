// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the client's navigable views:
//  1. [CatalogView] : Browse the catalog, open entries, quick-add to the collection
//  2. [DetailView] : One entry with its comments
//  3. [CollectionView] : The personal collection with status changes and removal
//  4. [UsersView] : The user directory
//  5. [AdminView] : Catalog management (delete), rendered as access denied for non-admins
//
// Navigation is route-driven: number keys produce location fragments that are
// resolved through the routes package, the same resolver the CLI uses. The
// [Model] implements bubbletea's standard Init/Update/View pattern. Mutations
// run through the view controllers, so the optimistic patch rules and
// in-flight deduplication apply identically in both frontends.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
