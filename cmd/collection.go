package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/formatter"
	"github.com/desertthunder/chorus/internal/models"
)

// CollectionList prints the caller's collection.
func (r *Runner) CollectionList(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.collectionController()
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(ctrl.Entries(), true)
	}

	return r.writePlain("%s", formatter.CollectionTable(ctrl.Entries()))
}

// CollectionAdd adds a catalog entry to the caller's collection.
func (r *Runner) CollectionAdd(ctx context.Context, cmd *cli.Command) error {
	musicID, err := parseIDArg(cmd, "music-id")
	if err != nil {
		return err
	}

	status := models.CollectionStatus(cmd.String("status"))
	entry, err := r.client.AddToCollection(ctx, musicID, status)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	return r.writePlain("✓ Added '%s' to your collection (entry %d)\n", entry.Music.Title, entry.ID)
}

// CollectionSetStatus changes an entry's status and prints the server's value.
func (r *Runner) CollectionSetStatus(ctx context.Context, cmd *cli.Command) error {
	entryID, err := parseIDArg(cmd, "entry-id")
	if err != nil {
		return err
	}

	ctrl := r.collectionController()
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	status := models.CollectionStatus(cmd.StringArg("status"))
	if err := ctrl.ChangeStatus(ctx, entryID, status); err != nil {
		return fmt.Errorf("failed to change status: %w", err)
	}

	return r.writePlain("✓ Entry %d is now %s\n", entryID, status)
}

// CollectionRemove deletes an entry after confirmation.
func (r *Runner) CollectionRemove(ctx context.Context, cmd *cli.Command) error {
	entryID, err := parseIDArg(cmd, "entry-id")
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") && !r.confirm(fmt.Sprintf("Remove entry %d from your collection?", entryID)) {
		return r.writePlain("Cancelled\n")
	}

	ctrl := r.collectionController()
	if err := ctrl.RemoveEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	return r.writePlain("✓ Entry %d removed\n", entryID)
}

// CollectionByUser prints another user's collection. The server limits this
// to admins.
func (r *Runner) CollectionByUser(ctx context.Context, cmd *cli.Command) error {
	userID, err := parseIDArg(cmd, "user-id")
	if err != nil {
		return err
	}

	ctrl := r.collectionController()
	if err := ctrl.LoadForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to load user %d's collection: %w", userID, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(ctrl.Entries(), true)
	}

	r.writePlainHeader(fmt.Sprintf("Collection of user %d", userID))
	return r.writePlain("%s", formatter.CollectionTable(ctrl.Entries()))
}
