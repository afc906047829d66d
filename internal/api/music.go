package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/chorus/internal/models"
)

// ListMusic fetches the full catalog. Whether a credential is required
// depends on the identity variant.
func (c *Client) ListMusic(ctx context.Context) ([]models.Music, error) {
	var items []models.Music
	if err := c.doJSON(ctx, http.MethodGet, "/list_music", nil, c.variantAuth(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetMusic fetches one catalog entry by id.
func (c *Client) GetMusic(ctx context.Context, id int64) (*models.Music, error) {
	var music models.Music
	path := fmt.Sprintf("/music/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, c.variantAuth(), &music); err != nil {
		return nil, err
	}
	return &music, nil
}

// CreateMusic adds a catalog entry. Admin only.
func (c *Client) CreateMusic(ctx context.Context, draft models.MusicDraft) (*models.Music, error) {
	var music models.Music
	if err := c.doJSON(ctx, http.MethodPost, "/music", draft, true, &music); err != nil {
		return nil, err
	}
	return &music, nil
}

// UpdateMusic updates a catalog entry and returns the server's canonical
// value. Admin only.
func (c *Client) UpdateMusic(ctx context.Context, id int64, draft models.MusicDraft) (*models.Music, error) {
	var music models.Music
	path := fmt.Sprintf("/update_music/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, draft, true, &music); err != nil {
		return nil, err
	}
	return &music, nil
}

// DeleteMusic removes a catalog entry. Admin only. The server answers 204.
func (c *Client) DeleteMusic(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/delete_music/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, true, nil)
}
