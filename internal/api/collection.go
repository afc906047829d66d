package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/chorus/internal/models"
)

type collectionAddRequest struct {
	MusicID int64                   `json:"music_id"`
	Status  models.CollectionStatus `json:"status"`
}

type collectionUpdateRequest struct {
	Status models.CollectionStatus `json:"status"`
}

// MyCollection fetches the caller's personal collection.
func (c *Client) MyCollection(ctx context.Context) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	if err := c.doJSON(ctx, http.MethodGet, "/get_collection", nil, true, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddToCollection adds a catalog entry to the caller's collection. The server
// rejects duplicates for the same (user, music) pair with a 400.
func (c *Client) AddToCollection(ctx context.Context, musicID int64, status models.CollectionStatus) (*models.CollectionEntry, error) {
	if status == "" {
		status = models.StatusNone
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid collection status %q", status)
	}

	body := collectionAddRequest{MusicID: musicID, Status: status}
	var entry models.CollectionEntry
	if err := c.doJSON(ctx, http.MethodPost, "/collection", body, true, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateCollectionEntry changes the status of an entry and returns the
// server's canonical value.
func (c *Client) UpdateCollectionEntry(ctx context.Context, entryID int64, status models.CollectionStatus) (*models.CollectionEntry, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid collection status %q", status)
	}

	body := collectionUpdateRequest{Status: status}
	var entry models.CollectionEntry
	path := fmt.Sprintf("/collection/%d", entryID)
	if err := c.doJSON(ctx, http.MethodPut, path, body, true, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFromCollection deletes an entry. The server answers 204.
func (c *Client) RemoveFromCollection(ctx context.Context, entryID int64) error {
	path := fmt.Sprintf("/remove_collection/%d", entryID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, true, nil)
}

// UserCollection fetches another user's collection. Admins can view any
// user; non-admins are rejected with a 403 server-side.
func (c *Client) UserCollection(ctx context.Context, userID int64) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	path := fmt.Sprintf("/collection/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
