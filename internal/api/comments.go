package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/chorus/internal/models"
)

// ListComments fetches the comments for a catalog entry. Public; no
// credential is attached.
func (c *Client) ListComments(ctx context.Context, musicID int64) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/music/%d/comments", musicID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment and returns the server's canonical record.
func (c *Client) AddComment(ctx context.Context, draft models.CommentDraft) (*models.Comment, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := c.doJSON(ctx, http.MethodPost, "/comments", draft, true, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
