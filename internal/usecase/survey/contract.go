package survey

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/usecase/recommend"
)

// ProfileStore is the persistence contract for survey submission.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// Recommender produces recommendations for an already-loaded profile.
type Recommender interface {
	RecommendFor(ctx context.Context, p domain.Profile) ([]recommend.Recommendation, error)
}
