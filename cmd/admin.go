package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
)

// musicDraftFromFlags builds a draft from the flags the user actually set,
// so updates only touch the named fields.
func musicDraftFromFlags(cmd *cli.Command) models.MusicDraft {
	draft := models.MusicDraft{
		Title:  cmd.String("title"),
		Artist: cmd.String("artist"),
	}

	if cmd.IsSet("album") {
		album := cmd.String("album")
		draft.Album = &album
	}
	if cmd.IsSet("genre") {
		genre := cmd.String("genre")
		draft.Genre = &genre
	}
	if cmd.IsSet("year") {
		year := int(cmd.Int("year"))
		draft.Year = &year
	}
	if cmd.IsSet("duration") {
		duration := int(cmd.Int("duration"))
		draft.Duration = &duration
	}

	return draft
}

// adminErr renders a 403 as a denial message instead of a generic failure.
func adminErr(op string, err error) error {
	if api.IsAccessDenied(err) {
		return fmt.Errorf("access denied: %s requires the admin role", op)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// AdminAdd creates a catalog entry.
func (r *Runner) AdminAdd(ctx context.Context, cmd *cli.Command) error {
	draft := musicDraftFromFlags(cmd)

	music := models.Music{Title: draft.Title, Artist: draft.Artist}
	if err := music.Validate(); err != nil {
		return err
	}

	ctrl := r.adminController()
	created, err := ctrl.Create(ctx, draft)
	if err != nil {
		return adminErr("add a catalog entry", err)
	}

	return r.writePlain("✓ Added '%s' (id %d)\n", created.Title, created.ID)
}

// AdminUpdate edits a catalog entry and prints the server's canonical value.
func (r *Runner) AdminUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	ctrl := r.adminController()
	updated, err := ctrl.Update(ctx, id, musicDraftFromFlags(cmd))
	if err != nil {
		return adminErr("update the catalog entry", err)
	}

	return r.writePlain("✓ Updated '%s' (id %d)\n", updated.Title, updated.ID)
}

// AdminDelete removes a catalog entry after confirmation.
func (r *Runner) AdminDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") && !r.confirm(fmt.Sprintf("Delete catalog entry %d?", id)) {
		return r.writePlain("Cancelled\n")
	}

	ctrl := r.adminController()
	if err := ctrl.Delete(ctx, id); err != nil {
		return adminErr("delete the catalog entry", err)
	}

	return r.writePlain("✓ Entry %d deleted\n", id)
}
