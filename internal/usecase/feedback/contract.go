package feedback

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
)

// ProfileStore is the persistence contract for feedback operations.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// SnapshotProvider supplies the catalog for strain name validation.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}

// EngagementStore records the shared feedback counters and the popularity
// ranking.
type EngagementStore interface {
	AddFeedback(ctx context.Context, strainName string, like bool) error
	BumpPopularity(ctx context.Context, strainName string) error
	FeedbackTotals(ctx context.Context, strainName string) (engagement.Totals, error)
}
