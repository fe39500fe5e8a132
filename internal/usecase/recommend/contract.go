package recommend

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
)

// ProfileReader reads user profiles for signal composition.
type ProfileReader interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
}

// SnapshotProvider returns the published catalog and embedding table. The two
// are validated against each other, so every catalog strain has an embedding.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}
