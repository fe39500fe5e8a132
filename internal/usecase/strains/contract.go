package strains

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
)

// SnapshotProvider supplies the published catalog.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}

// EngagementStore reads the popularity ranking.
type EngagementStore interface {
	TopStrains(ctx context.Context, n int) ([]engagement.RankedStrain, error)
}
