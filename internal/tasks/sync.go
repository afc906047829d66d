package tasks

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

// CatalogFetcher is the slice of the API client the sync engine needs.
// Satisfied by api.Client.
type CatalogFetcher interface {
	ListMusic(ctx context.Context) ([]models.Music, error)
	ListComments(ctx context.Context, musicID int64) ([]models.Comment, error)
}

// CatalogStore is the persistence side of a sync. Satisfied by
// repositories.CatalogCache.
type CatalogStore interface {
	Put(entries []models.Music) error
	SetCommentCount(id int64, count int) error
	Prune(keep []int64) (int, error)
}

// SyncOpts contains configuration for a catalog sync.
type SyncOpts struct {
	NumWorkers   int     // Concurrent comment warmers (default: 4, cap: 8)
	RateLimit    float64 // Requests per second for comment warming (default: 5)
	WarmComments bool    // Also fetch per-entry comment counts
	Prune        bool    // Drop cached entries the server no longer lists
}

// EntryResult records the outcome of warming one catalog entry.
type EntryResult struct {
	MusicID int64
	Title   string
	Count   int
	Error   error
}

// SyncResult summarizes one catalog sync run.
type SyncResult struct {
	TotalEntries  int
	WarmedEntries int
	FailedEntries int
	Pruned        int
	Failures      []EntryResult
}

// SyncEngine refreshes the offline catalog cache from the remote service.
type SyncEngine struct {
	fetcher CatalogFetcher
	store   CatalogStore
}

// NewSyncEngine creates a sync engine over the given fetcher and store.
func NewSyncEngine(fetcher CatalogFetcher, store CatalogStore) *SyncEngine {
	return &SyncEngine{fetcher: fetcher, store: store}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full catalog sync: fetch the listing, refresh the cache,
// optionally warm comment counts through a rate-limited worker pool, and
// optionally prune entries the server dropped.
func (e *SyncEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error) {
	if e.fetcher == nil || e.store == nil {
		return nil, fmt.Errorf("%w: sync engine not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(progress, fetchCatalogUpdate())

	entries, err := e.fetcher.ListMusic(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch catalog: %v", shared.ErrAPIRequest, err)
	}

	if err := e.store.Put(entries); err != nil {
		return nil, fmt.Errorf("failed to refresh catalog cache: %w", err)
	}

	result := &SyncResult{TotalEntries: len(entries)}
	e.sendProgress(progress, catalogFetchedUpdate(len(entries)))

	if opts.WarmComments {
		e.warm(ctx, progress, entries, opts, result)
	}

	if opts.Prune {
		keep := make([]int64, 0, len(entries))
		for _, m := range entries {
			keep = append(keep, m.ID)
		}
		pruned, err := e.store.Prune(keep)
		if err != nil {
			return result, fmt.Errorf("sync completed but prune failed: %w", err)
		}
		result.Pruned = pruned
		e.sendProgress(progress, pruneUpdate(pruned))
	}

	return result, nil
}

// warm fetches comment counts for every entry through a worker pool. A
// single rate limiter is shared across workers so the combined request rate
// stays under opts.RateLimit.
func (e *SyncEngine) warm(ctx context.Context, progress chan<- ProgressUpdate, entries []models.Music, opts SyncOpts, result *SyncResult) {
	total := len(entries)
	jobs := make(chan models.Music, total)
	results := make(chan EntryResult, total)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- EntryResult{MusicID: m.ID, Title: m.Title, Error: err}
					continue
				}

				comments, err := e.fetcher.ListComments(ctx, m.ID)
				if err != nil {
					results <- EntryResult{MusicID: m.ID, Title: m.Title, Error: err}
					continue
				}

				if err := e.store.SetCommentCount(m.ID, len(comments)); err != nil {
					results <- EntryResult{MusicID: m.ID, Title: m.Title, Error: err}
					continue
				}

				results <- EntryResult{MusicID: m.ID, Title: m.Title, Count: len(comments)}
			}
		}()
	}

	for _, m := range entries {
		jobs <- m
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			result.FailedEntries++
			result.Failures = append(result.Failures, res)
			e.sendProgress(progress, warmFailedUpdate(completed, total, res.Title, res.Error))
			continue
		}
		result.WarmedEntries++
		e.sendProgress(progress, warmCommentsUpdate(completed, total, res.Title))
	}
}
