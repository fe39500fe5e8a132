package recommend

import (
	"context"

	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/logger"
	"github.com/verdant-cloud/strainrec/internal/metrics"
)

// Blend weights of the preference vector. The order of the blends matters:
// favorites are folded into the familiar-strain base first, liked reviews
// into that result second.
const (
	baseWeight     = 0.6
	favoriteWeight = 0.4
	signalWeight   = 0.7
	reviewWeight   = 0.3

	// likedReviewMinRating is the rating floor for a review to count as a
	// positive signal.
	likedReviewMinRating = 4
)

// composer builds a user's preference vector from their profile signals.
// Unresolvable strain names are skipped, not errors: the pipeline works with
// whatever signals survive.
type composer struct {
	resolver *match.Resolver
}

// compose returns the preference vector for the profile. It fails only when
// the embedding table itself is unusable.
func (c *composer) compose(
	ctx context.Context, p domain.Profile,
	snap *catalog.Snapshot, table *vector.Table,
) (vector.Vector, error) {
	log := logger.FromContext(ctx)

	familiar := c.resolveAll(p.Preferences.FamiliarStrains, snap, table, "familiar", log)
	base := vector.Mean(familiar)
	if base == nil {
		base = table.MeanAll()
		if base == nil {
			return nil, domain.ErrEmbeddingsUnavailable
		}
		metrics.ColdStartsTotal.Inc()
		log.Warn("no familiar strain resolved, using global mean vector",
			zap.Int64("user_id", p.UserID),
			zap.Int("familiar_strains", len(p.Preferences.FamiliarStrains)))
	}

	v := base
	if favorites := c.lookupAll(p.Favorites, snap, table, "favorite", log); len(favorites) > 0 {
		v = vector.Blend(v, vector.Mean(favorites), baseWeight, favoriteWeight)
	}

	var liked []string
	for _, r := range p.Reviews {
		if r.Rating >= likedReviewMinRating {
			liked = append(liked, r.StrainName)
		}
	}
	if reviews := c.lookupAll(liked, snap, table, "review", log); len(reviews) > 0 {
		v = vector.Blend(v, vector.Mean(reviews), signalWeight, reviewWeight)
	}

	return v, nil
}

// resolveAll fuzzy-resolves free-text names (survey input) to embeddings.
func (c *composer) resolveAll(
	names []string, snap *catalog.Snapshot, table *vector.Table,
	signal string, log *zap.Logger,
) []vector.Vector {
	var out []vector.Vector
	for _, name := range names {
		canonical, score, ok := c.resolver.Resolve(name, snap.Names())
		if !ok {
			metrics.ResolutionMissesTotal.WithLabelValues(signal).Inc()
			log.Debug("strain name did not resolve",
				zap.String("signal", signal),
				zap.String("name", name),
				zap.Int("best_score", score))
			continue
		}
		if v := vectorByName(canonical, snap, table); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// lookupAll maps canonical names (validated at write time) to embeddings.
func (c *composer) lookupAll(
	names []string, snap *catalog.Snapshot, table *vector.Table,
	signal string, log *zap.Logger,
) []vector.Vector {
	var out []vector.Vector
	for _, name := range names {
		v := vectorByName(name, snap, table)
		if v == nil {
			metrics.ResolutionMissesTotal.WithLabelValues(signal).Inc()
			log.Debug("stored strain name no longer in catalog",
				zap.String("signal", signal),
				zap.String("name", name))
			continue
		}
		out = append(out, v)
	}
	return out
}

func vectorByName(name string, snap *catalog.Snapshot, table *vector.Table) vector.Vector {
	s, ok := snap.ByName(name)
	if !ok {
		return nil
	}
	v, ok := table.VectorFor(s.ID)
	if !ok {
		return nil
	}
	return v
}
