package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/tasks"
)

// Sync refreshes the offline catalog cache from the remote service.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("no cache database configured; run 'setup database' first")
	}

	engine := tasks.NewSyncEngine(r.client, r.cache)

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Run(ctx, progress, tasks.SyncOpts{
		NumWorkers:   int(cmd.Int("workers")),
		RateLimit:    cmd.Float("rate"),
		WarmComments: cmd.Bool("comments"),
		Prune:        cmd.Bool("prune"),
	})

	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	r.writePlainln("Sync complete: %d entries cached", result.TotalEntries)
	if cmd.Bool("comments") {
		r.writePlain("  Comments warmed: %d\n", result.WarmedEntries)
		if result.FailedEntries > 0 {
			r.writePlain("  Failed: %d\n", result.FailedEntries)
			for _, f := range result.Failures {
				r.writePlain("    ✗ %s: %v\n", f.Title, f.Error)
			}
		}
	}
	if cmd.Bool("prune") {
		r.writePlain("  Pruned: %d\n", result.Pruned)
	}

	return nil
}
