package api

import (
	"context"
	"net/http"

	"github.com/desertthunder/chorus/internal/models"
)

// ListUsers fetches the user directory.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/list_users", nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a directory user and returns the server's canonical
// record.
func (c *Client) CreateUser(ctx context.Context, draft models.UserDraft) (*models.User, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", draft, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
