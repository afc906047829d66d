package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	WarmComments
	PruneCache
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case WarmComments:
		return "warm_comments"
	case PruneCache:
		return "prune_cache"
	default:
		return ""
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching catalog listing...",
	}
}

func catalogFetchedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cached %d catalog entries", count),
	}
}

func warmCommentsUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WarmComments,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func warmFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WarmComments,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func pruneUpdate(removed int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PruneCache,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Pruned %d stale cache entries", removed),
	}
}
