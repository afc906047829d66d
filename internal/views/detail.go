package views

import (
	"context"
	"sync"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
)

// DetailController drives the catalog detail view: one entry, its comments,
// and the comment/add actions.
type DetailController struct {
	mu       sync.Mutex
	client   *api.Client
	musicID  int64
	music    *models.Music
	comments []models.Comment
	adding   bool
	loading  bool
	gen      uint64
	err      error
}

// NewDetailController creates a detail controller for one catalog id.
func NewDetailController(client *api.Client, musicID int64) *DetailController {
	return &DetailController{client: client, musicID: musicID}
}

// Load fetches the entry and its comments.
func (c *DetailController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	music, err := c.client.GetMusic(ctx, c.musicID)
	var comments []models.Comment
	if err == nil {
		comments, err = c.client.ListComments(ctx, c.musicID)
	}

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
	c.music = music
	c.comments = comments
	return nil
}

// MusicID returns the id this controller was activated for.
func (c *DetailController) MusicID() int64 {
	return c.musicID
}

// Music returns the loaded entry, or nil before load completes.
func (c *DetailController) Music() *models.Music {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.music
}

// Comments returns the comment list, newest first.
func (c *DetailController) Comments() []models.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.comments
}

// Loading reports whether the activation fetch is in flight.
func (c *DetailController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the view's error state.
func (c *DetailController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// AddComment posts a comment and prepends the server's canonical record.
// On failure the list is untouched.
func (c *DetailController) AddComment(ctx context.Context, content string, rating *int) error {
	draft := models.CommentDraft{MusicID: c.musicID, Content: content, Rating: rating}
	if err := draft.Validate(); err != nil {
		return err
	}

	comment, err := c.client.AddComment(ctx, draft)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.comments = append([]models.Comment{*comment}, c.comments...)
	return nil
}

// Adding reports whether an add-to-collection call is in flight.
func (c *DetailController) Adding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adding
}

// AddToCollection adds this entry to the caller's collection, deduplicating
// concurrent triggers.
func (c *DetailController) AddToCollection(ctx context.Context) (started bool, err error) {
	c.mu.Lock()
	if c.adding {
		c.mu.Unlock()
		return false, nil
	}
	c.adding = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.adding = false
		c.mu.Unlock()
	}()

	if _, err := c.client.AddToCollection(ctx, c.musicID, models.StatusNone); err != nil {
		return true, err
	}
	return true, nil
}
