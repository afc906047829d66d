package views

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

// CatalogCache is the read-through cache the catalog list falls back to when
// the network is unreachable. Satisfied by repositories.CatalogCache.
type CatalogCache interface {
	Put(entries []models.Music) error
	List() ([]models.Music, error)
}

// CatalogController drives the catalog list view: the full music listing
// plus quick "add to collection" actions.
type CatalogController struct {
	mu      sync.Mutex
	client  *api.Client
	cache   CatalogCache
	logger  *log.Logger
	items   []models.Music
	pending map[int64]struct{}
	loading bool
	offline bool
	gen     uint64
	err     error
}

// NewCatalogController creates a catalog list controller. The cache is
// optional; without one the view simply has no offline fallback.
func NewCatalogController(client *api.Client, cache CatalogCache, logger *log.Logger) *CatalogController {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CatalogController{
		client:  client,
		cache:   cache,
		logger:  logger,
		pending: make(map[int64]struct{}),
	}
}

// Load fetches the catalog. On a transport failure the cached listing is
// served instead, flagged as offline; the error is still recorded so the
// user can retry.
func (c *CatalogController) Load(ctx context.Context) error {
	gen := c.begin()

	items, err := c.client.ListMusic(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer load superseded this one; its result must not be applied.
		return nil
	}
	c.loading = false

	if err != nil {
		c.err = err
		if api.IsNetworkError(err) && c.cache != nil {
			if cached, cacheErr := c.cache.List(); cacheErr == nil && len(cached) > 0 {
				c.items = cached
				c.offline = true
			}
		}
		return err
	}

	c.err = nil
	c.offline = false
	c.items = items

	if c.cache != nil {
		if cacheErr := c.cache.Put(items); cacheErr != nil {
			c.logger.Warnf("failed to refresh catalog cache: %v", cacheErr)
		}
	}

	return nil
}

func (c *CatalogController) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = true
	return c.gen
}

// Items returns the current listing.
func (c *CatalogController) Items() []models.Music {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Loading reports whether the activation fetch is in flight.
func (c *CatalogController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the view's error state.
func (c *CatalogController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Offline reports whether the listing was served from the local cache.
func (c *CatalogController) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Adding reports whether an add for the given catalog id is in flight.
func (c *CatalogController) Adding(musicID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[musicID]
	return ok
}

// AddToCollection adds a catalog entry to the caller's collection.
//
// A second trigger for an id already in flight is suppressed before any
// network traffic and reports started=false. The pending marker is cleared
// in a defer regardless of outcome. The catalog listing itself is not
// touched; the collection is a separate list.
func (c *CatalogController) AddToCollection(ctx context.Context, musicID int64) (started bool, err error) {
	c.mu.Lock()
	if _, inFlight := c.pending[musicID]; inFlight {
		c.mu.Unlock()
		return false, nil
	}
	c.pending[musicID] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, musicID)
		c.mu.Unlock()
	}()

	if _, err := c.client.AddToCollection(ctx, musicID, models.StatusNone); err != nil {
		return true, err
	}
	return true, nil
}
