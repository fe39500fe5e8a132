package review

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
)

// ProfileStore is the persistence contract for review submission.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// SnapshotProvider supplies the catalog for strain name validation.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}

// EngagementStore records review counters and the reviewer leaderboard.
type EngagementStore interface {
	AddReviewStats(ctx context.Context, strainName string, rating float64) error
	BumpLeaderboard(ctx context.Context, userID int64) error
	TopReviewers(ctx context.Context, n int) ([]engagement.RankedUser, error)
}
