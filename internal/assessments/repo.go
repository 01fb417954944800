package assessments

import (
	"context"
	"time"
)

// Repo defines persistence operations for assessments. Complete and
// MarkFailed only transition records still in progress; both return
// ErrNotFound when no such record exists.
type Repo interface {
	Create(ctx context.Context, assessment Assessment) error
	GetByID(ctx context.Context, assessmentID string) (Assessment, error)
	Complete(ctx context.Context, assessmentID string, update CompletionUpdate) error
	MarkFailed(ctx context.Context, assessmentID string) error
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
	LatestByUser(ctx context.Context, userID string) (Assessment, error)
	LatestByUserSince(ctx context.Context, userID string, since time.Time) (Assessment, error)
	LatestSince(ctx context.Context, since time.Time) (Assessment, error)
}
