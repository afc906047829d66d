// Package routes resolves the navigable location into a symbolic route.
//
// The grammar is fixed: four static paths (catalog, collection, users, admin),
// one parametric path "music/{id}" where id must be all digits, and a terminal
// not-found route for everything else. An empty location defaults to the
// catalog list. Resolution is pure and idempotent; it is re-run on every
// navigation event.
package routes

import (
	"regexp"
	"strconv"
	"strings"
)

// Name identifies a recognized route.
type Name string

const (
	Catalog       Name = "catalog"
	CatalogDetail Name = "catalog-detail"
	Collection    Name = "collection"
	Users         Name = "users"
	Admin         Name = "admin"
	NotFound      Name = "not-found"
)

// Route is the resolved navigation target. MusicID is set only for
// [CatalogDetail].
type Route struct {
	Name    Name
	MusicID int64
}

var detailPattern = regexp.MustCompile(`^/music/(\d+)$`)

// Resolve parses a location fragment into a Route.
//
// The leading "#" of a fragment is tolerated, as is a missing leading slash.
func Resolve(hash string) Route {
	path := strings.TrimPrefix(hash, "#")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if path == "" || path == "/" || path == "/music" {
		return Route{Name: Catalog}
	}

	if m := detailPattern.FindStringSubmatch(path); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			// Digits that overflow int64 are not a real catalog id.
			return Route{Name: NotFound}
		}
		return Route{Name: CatalogDetail, MusicID: id}
	}

	switch path {
	case "/collection":
		return Route{Name: Collection}
	case "/users":
		return Route{Name: Users}
	case "/admin":
		return Route{Name: Admin}
	}

	return Route{Name: NotFound}
}

// Fragment renders the route back into its location fragment form.
func (r Route) Fragment() string {
	switch r.Name {
	case Catalog:
		return "#/music"
	case CatalogDetail:
		return "#/music/" + strconv.FormatInt(r.MusicID, 10)
	case Collection:
		return "#/collection"
	case Users:
		return "#/users"
	case Admin:
		return "#/admin"
	}
	return "#/not-found"
}
