package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
)

// CollectionController drives the personal collection view: the caller's
// saved entries with status changes and removal.
type CollectionController struct {
	mu      sync.Mutex
	client  *api.Client
	entries []models.CollectionEntry
	loading bool
	gen     uint64
	err     error
}

// NewCollectionController creates a collection view controller.
func NewCollectionController(client *api.Client) *CollectionController {
	return &CollectionController{client: client}
}

// Load fetches the caller's collection.
func (c *CollectionController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	entries, err := c.client.MyCollection(ctx)

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
	c.entries = entries
	return nil
}

// Entries returns the current collection listing.
func (c *CollectionController) Entries() []models.CollectionEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}

// Loading reports whether the activation fetch is in flight.
func (c *CollectionController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the view's error state.
func (c *CollectionController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ChangeStatus updates an entry's status and replaces the entry in place
// with the server's canonical value, keeping its position. On failure the
// list is untouched.
func (c *CollectionController) ChangeStatus(ctx context.Context, entryID int64, status models.CollectionStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid collection status %q", status)
	}

	entry, err := c.client.UpdateCollectionEntry(ctx, entryID, status)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ID == entry.ID {
			c.entries[i] = *entry
			break
		}
	}
	return nil
}

// RemoveEntry deletes an entry from the collection, removing it from the
// listing only after the server confirms. Confirmation is the caller's
// concern; by the time this runs the user has already agreed.
func (c *CollectionController) RemoveEntry(ctx context.Context, entryID int64) error {
	if err := c.client.RemoveFromCollection(ctx, entryID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return nil
}

// LoadForUser fetches another user's collection into this view. The server
// restricts this to admins; a 403 surfaces through the error state.
func (c *CollectionController) LoadForUser(ctx context.Context, userID int64) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	entries, err := c.client.UserCollection(ctx, userID)

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
	c.entries = entries
	return nil
}
