// Package recommend implements the recommendation pipeline: compose a
// preference vector from profile signals, filter candidates by desired
// effects, rank by cosine similarity.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/metrics"
)

// DefaultTopK is the number of recommendations returned when not configured.
const DefaultTopK = 10

// Recommendation is a ranked strain with its similarity score, rounded for
// presentation.
type Recommendation struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Effects    []string `json:"effects"`
	Terpenes   []string `json:"terpenes,omitempty"`
	MayRelieve []string `json:"may_relieve,omitempty"`
	Similarity float64  `json:"similarity"`
}

// Service handles recommendation requests.
type Service struct {
	profiles  ProfileReader
	snapshots SnapshotProvider
	composer  composer
	topK      int
}

// New creates a recommendation service. threshold and topK fall back to
// match.DefaultThreshold and DefaultTopK when non-positive.
func New(profiles ProfileReader, snapshots SnapshotProvider, threshold, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		profiles:  profiles,
		snapshots: snapshots,
		composer:  composer{resolver: match.NewResolver(threshold)},
		topK:      topK,
	}
}

// Recommend returns the top-K strains for the user, ranked by cosine
// similarity between the user's preference vector and each candidate's
// embedding. Candidates are strains sharing at least one desired effect.
func (s *Service) Recommend(ctx context.Context, userID int64) ([]Recommendation, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.recommendFor(ctx, p)
}

// RecommendFor ranks for an already-loaded profile. The survey flow uses this
// right after persisting preferences to avoid a reread.
func (s *Service) RecommendFor(ctx context.Context, p domain.Profile) ([]Recommendation, error) {
	return s.recommendFor(ctx, p)
}

func (s *Service) recommendFor(ctx context.Context, p domain.Profile) ([]Recommendation, error) {
	snap, table, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	pref, err := s.composer.compose(ctx, p, snap, table)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("compose preference vector: %w", err)
	}

	candidates := snap.FilterByEffects(p.Preferences.DesiredEffects)
	metrics.RecommendationCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		metrics.RecommendationsTotal.WithLabelValues("no_candidates").Inc()
		return nil, fmt.Errorf("%w: no strain shares a desired effect", domain.ErrNoCandidates)
	}

	type scored struct {
		idx   int
		id    int64
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		v, ok := table.VectorFor(candidates[i].ID)
		if !ok {
			continue
		}
		ranked = append(ranked, scored{
			idx:   i,
			id:    candidates[i].ID,
			score: vector.Cosine(pref, v),
		})
	}

	// Full-precision sort; ties broken by ascending strain id so the order
	// is stable across runs.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > s.topK {
		ranked = ranked[:s.topK]
	}

	out := make([]Recommendation, len(ranked))
	for i, r := range ranked {
		c := candidates[r.idx]
		out[i] = Recommendation{
			Name:       c.Name,
			Type:       c.Type,
			Effects:    c.Effects,
			Terpenes:   c.Terpenes,
			MayRelieve: c.MayRelieve,
			Similarity: vector.Round4(r.score),
		}
	}
	metrics.RecommendationsTotal.WithLabelValues("ok").Inc()
	return out, nil
}
