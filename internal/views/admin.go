package views

import (
	"context"
	"sync"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
)

// AdminController drives the catalog management view. Its listing is the
// same catalog the list view shows, but every mutation here is an admin
// operation the server guards with a 403 for ordinary users.
type AdminController struct {
	mu           sync.Mutex
	client       *api.Client
	items        []models.Music
	loading      bool
	accessDenied bool
	gen          uint64
	err          error
}

// NewAdminController creates a catalog management controller.
func NewAdminController(client *api.Client) *AdminController {
	return &AdminController{client: client}
}

// Load fetches the catalog for management. A 403 flips the access-denied
// flag so the view renders a denial message instead of a generic failure.
func (c *AdminController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	items, err := c.client.ListMusic(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.loading = false

	if err != nil {
		c.err = err
		c.accessDenied = api.IsAccessDenied(err)
		return err
	}

	c.err = nil
	c.accessDenied = false
	c.items = items
	return nil
}

// Items returns the current listing.
func (c *AdminController) Items() []models.Music {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Loading reports whether the activation fetch is in flight.
func (c *AdminController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the view's error state.
func (c *AdminController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// AccessDenied reports whether the last operation was rejected with a 403.
func (c *AdminController) AccessDenied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessDenied
}

// Create adds a catalog entry and prepends the server's canonical record.
// On failure the list is untouched.
func (c *AdminController) Create(ctx context.Context, draft models.MusicDraft) (*models.Music, error) {
	music, err := c.client.CreateMusic(ctx, draft)
	if err != nil {
		c.recordMutationErr(err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]models.Music{*music}, c.items...)
	return music, nil
}

// Update edits a catalog entry and replaces it in place with the server's
// canonical value, keeping its position.
func (c *AdminController) Update(ctx context.Context, id int64, draft models.MusicDraft) (*models.Music, error) {
	music, err := c.client.UpdateMusic(ctx, id, draft)
	if err != nil {
		c.recordMutationErr(err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == music.ID {
			c.items[i] = *music
			break
		}
	}
	return music, nil
}

// Delete removes a catalog entry, dropping it from the listing only after
// the server confirms. Confirmation happens before this is called.
func (c *AdminController) Delete(ctx context.Context, id int64) error {
	if err := c.client.DeleteMusic(ctx, id); err != nil {
		c.recordMutationErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, m := range c.items {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.items = kept
	return nil
}

func (c *AdminController) recordMutationErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	c.accessDenied = api.IsAccessDenied(err)
}
