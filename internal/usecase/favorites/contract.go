package favorites

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
)

// ProfileStore is the persistence contract for favorites.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// SnapshotProvider supplies the catalog for strain name validation.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}
