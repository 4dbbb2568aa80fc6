package driving

import (
	"context"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

// AskService is the single entry point of the answer pipeline: it selects
// a strategy, retrieves context, composes the answer and appends both
// conversation turns.
type AskService interface {
	Ask(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error)
}
