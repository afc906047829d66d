package views

import (
	"context"
	"sync"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
)

// IdentitySelector is the slice of the session controller the user
// directory needs: reading and changing the impersonated identity.
// Satisfied by [session.Controller].
type IdentitySelector interface {
	ImpersonatedUser() (int64, bool)
	Impersonate(id int64) error
}

// UsersController drives the user directory view: the user listing plus
// creation of new users. Under the impersonation identity variant a newly
// created user is auto-selected when no identity was active yet.
type UsersController struct {
	mu       sync.Mutex
	client   *api.Client
	identity IdentitySelector
	users    []models.User
	loading  bool
	gen      uint64
	err      error
}

// NewUsersController creates a user directory controller. The identity
// selector is optional; without one creation never changes the selection.
func NewUsersController(client *api.Client, identity IdentitySelector) *UsersController {
	return &UsersController{client: client, identity: identity}
}

// Load fetches the user directory.
func (c *UsersController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	users, err := c.client.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.loading = false

	if err != nil {
		c.err = err
		return err
	}

	c.err = nil
	c.users = users
	return nil
}

// Users returns the current directory listing.
func (c *UsersController) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users
}

// Loading reports whether the activation fetch is in flight.
func (c *UsersController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the view's error state.
func (c *UsersController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Create adds a user and prepends the server's canonical record. When no
// identity is selected yet, the new user becomes the active one so the
// directory doubles as a first-run sign-in path.
func (c *UsersController) Create(ctx context.Context, draft models.UserDraft) (*models.User, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	user, err := c.client.CreateUser(ctx, draft)
	if err != nil {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.users = append([]models.User{*user}, c.users...)
	c.mu.Unlock()

	if c.identity != nil {
		if _, selected := c.identity.ImpersonatedUser(); !selected {
			if err := c.identity.Impersonate(user.ID); err != nil {
				// OAuth sessions have no selection to make; not a failure.
				return user, nil
			}
		}
	}
	return user, nil
}
