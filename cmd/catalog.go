package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/formatter"
	"github.com/desertthunder/chorus/internal/shared"
)

func parseIDArg(cmd *cli.Command, name string) (int64, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", shared.ErrInvalidArgument, name)
	}
	return id, nil
}

// CatalogList prints the catalog, serving the cached listing when the
// service is unreachable.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.catalogController()

	if err := ctrl.Load(ctx); err != nil && !ctrl.Offline() {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if ctrl.Offline() {
		r.writePlain("⚠ Service unreachable; showing cached catalog\n\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(ctrl.Items(), true)
	}

	return r.writePlain("%s", formatter.MusicTable(ctrl.Items()))
}

// CatalogShow prints one catalog entry with its comments.
func (r *Runner) CatalogShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	ctrl := r.detailController(id)
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load entry %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"music":    ctrl.Music(),
			"comments": ctrl.Comments(),
		}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", ctrl.Music().Artist, ctrl.Music().Title))
	r.writePlain("%s", formatter.MusicDetail(ctrl.Music()))

	comments := ctrl.Comments()
	r.writePlainln("Comments (%d):", len(comments))
	return r.writePlain("%s", formatter.CommentList(comments))
}

// CatalogComment posts a comment and echoes the server's canonical record.
func (r *Runner) CatalogComment(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	content := cmd.StringArg("content")
	var rating *int
	if v := int(cmd.Int("rating")); v != 0 {
		rating = &v
	}

	ctrl := r.detailController(id)
	if err := ctrl.AddComment(ctx, content, rating); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}

	return r.writePlain("✓ Comment posted on entry %d\n", id)
}

// CatalogExport writes the catalog listing to a file.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.catalogController()

	if err := ctrl.Load(ctx); err != nil && !ctrl.Offline() {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	path, err := formatter.WriteCatalogExport(ctrl.Items(), cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Catalog exported to %s\n", path)
}
