package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

type fakeFetcher struct {
	mu           sync.Mutex
	entries      []models.Music
	listErr      error
	commentsByID map[int64][]models.Comment
	commentErrs  map[int64]error
	commentCalls int
}

func (f *fakeFetcher) ListMusic(ctx context.Context) ([]models.Music, error) {
	return f.entries, f.listErr
}

func (f *fakeFetcher) ListComments(ctx context.Context, musicID int64) ([]models.Comment, error) {
	f.mu.Lock()
	f.commentCalls++
	f.mu.Unlock()
	if err, ok := f.commentErrs[musicID]; ok {
		return nil, err
	}
	return f.commentsByID[musicID], nil
}

type fakeStore struct {
	mu       sync.Mutex
	put      []models.Music
	putErr   error
	counts   map[int64]int
	pruned   []int64
	pruneN   int
	pruneErr error
}

func (s *fakeStore) Put(entries []models.Music) error {
	s.put = entries
	return s.putErr
}

func (s *fakeStore) SetCommentCount(id int64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[int64]int)
	}
	s.counts[id] = count
	return nil
}

func (s *fakeStore) Prune(keep []int64) (int, error) {
	s.pruned = keep
	return s.pruneN, s.pruneErr
}

func TestSyncRun(t *testing.T) {
	catalog := []models.Music{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
		{ID: 3, Title: "Three"},
	}

	t.Run("Refreshes Cache", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: catalog}
		store := &fakeStore{}
		engine := NewSyncEngine(fetcher, store)

		result, err := engine.Run(context.Background(), nil, SyncOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.TotalEntries != 3 {
			t.Errorf("expected 3 entries, got %d", result.TotalEntries)
		}
		if len(store.put) != 3 {
			t.Errorf("expected cache refreshed with 3 entries, got %d", len(store.put))
		}
		if fetcher.commentCalls != 0 {
			t.Errorf("comment warming must be opt-in, saw %d calls", fetcher.commentCalls)
		}
	})

	t.Run("Warms Comment Counts", func(t *testing.T) {
		fetcher := &fakeFetcher{
			entries: catalog,
			commentsByID: map[int64][]models.Comment{
				1: {{ID: 10}, {ID: 11}},
				2: {},
				3: {{ID: 12}},
			},
		}
		store := &fakeStore{}
		engine := NewSyncEngine(fetcher, store)

		progress := make(chan ProgressUpdate, 32)
		result, err := engine.Run(context.Background(), progress, SyncOpts{WarmComments: true, RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.WarmedEntries != 3 || result.FailedEntries != 0 {
			t.Errorf("expected 3 warmed, got warmed=%d failed=%d", result.WarmedEntries, result.FailedEntries)
		}
		if store.counts[1] != 2 || store.counts[3] != 1 {
			t.Errorf("unexpected counts: %v", store.counts)
		}
		if len(progress) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("Partial Warm Failures Are Collected", func(t *testing.T) {
		fetcher := &fakeFetcher{
			entries:     catalog,
			commentErrs: map[int64]error{2: errors.New("boom")},
			commentsByID: map[int64][]models.Comment{
				1: {{ID: 10}},
				3: {},
			},
		}
		store := &fakeStore{}
		engine := NewSyncEngine(fetcher, store)

		result, err := engine.Run(context.Background(), nil, SyncOpts{WarmComments: true, RateLimit: 1000})
		if err != nil {
			t.Fatalf("partial failures must not fail the run, got %v", err)
		}
		if result.WarmedEntries != 2 || result.FailedEntries != 1 {
			t.Errorf("expected 2 warmed and 1 failed, got warmed=%d failed=%d", result.WarmedEntries, result.FailedEntries)
		}
		if len(result.Failures) != 1 || result.Failures[0].MusicID != 2 {
			t.Errorf("unexpected failures: %+v", result.Failures)
		}
	})

	t.Run("Prunes Dropped Entries", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: catalog}
		store := &fakeStore{pruneN: 2}
		engine := NewSyncEngine(fetcher, store)

		result, err := engine.Run(context.Background(), nil, SyncOpts{Prune: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Pruned != 2 {
			t.Errorf("expected 2 pruned, got %d", result.Pruned)
		}
		if len(store.pruned) != 3 {
			t.Errorf("expected keep list of 3 ids, got %v", store.pruned)
		}
	})

	t.Run("Listing Failure Aborts", func(t *testing.T) {
		fetcher := &fakeFetcher{listErr: errors.New("offline")}
		engine := NewSyncEngine(fetcher, &fakeStore{})

		if _, err := engine.Run(context.Background(), nil, SyncOpts{}); !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Uninitialized Engine Fails", func(t *testing.T) {
		engine := NewSyncEngine(nil, nil)
		if _, err := engine.Run(context.Background(), nil, SyncOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Full Progress Channel Does Not Block", func(t *testing.T) {
		fetcher := &fakeFetcher{
			entries:      catalog,
			commentsByID: map[int64][]models.Comment{1: {}, 2: {}, 3: {}},
		}
		engine := NewSyncEngine(fetcher, &fakeStore{})

		// Unbuffered channel with no reader: every send must be dropped.
		progress := make(chan ProgressUpdate)
		if _, err := engine.Run(context.Background(), progress, SyncOpts{WarmComments: true, RateLimit: 1000}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
