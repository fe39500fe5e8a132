package account

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
)

// ProfileStore is the persistence contract for account operations.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
	IDByEmail(ctx context.Context, email string) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NextID(ctx context.Context) (int64, error)
}
