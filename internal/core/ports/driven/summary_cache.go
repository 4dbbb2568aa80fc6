package driven

import "context"

// SummaryCache stores completed per-interviewee summaries so a retried
// compare request does not redo finished sub-calls. Entries expire on
// their own; a miss is never an error.
type SummaryCache interface {
	// Get returns the cached summary and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a summary under key.
	Set(ctx context.Context, key, summary string) error
}
