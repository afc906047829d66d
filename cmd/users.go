package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/formatter"
	"github.com/desertthunder/chorus/internal/models"
)

// UsersList prints the user directory.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.usersController()
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(ctrl.Users(), true)
	}

	return r.writePlain("%s", formatter.UsersTable(ctrl.Users()))
}

// UsersCreate creates a directory user. Under the impersonation strategy the
// new user becomes the active identity when none was selected.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	draft := models.UserDraft{
		Username: cmd.String("username"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
		Role:     models.Role(cmd.String("role")),
	}

	ctrl := r.usersController()
	user, err := ctrl.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.writePlain("✓ Created user %s (id %d)\n", user.Username, user.ID)
	if r.session != nil {
		if id, ok := r.session.ImpersonatedUser(); ok && id == user.ID {
			r.writePlain("✓ Acting as user %d\n", id)
		}
	}
	return nil
}
