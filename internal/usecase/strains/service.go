// Package strains exposes read-only catalog views: details, the name list,
// and the like-driven popularity ranking.
package strains

import (
	"context"
	"fmt"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
)

// PopularSize is the number of entries the popularity view returns.
const PopularSize = 10

// PopularStrain is a popularity row: catalog details plus the like score.
type PopularStrain struct {
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Effects []string `json:"effects,omitempty"`
	Likes   int64    `json:"likes"`
}

// Service handles catalog reads.
type Service struct {
	snapshots  SnapshotProvider
	engagement EngagementStore
}

// New creates a strains service.
func New(snapshots SnapshotProvider, eng EngagementStore) *Service {
	return &Service{snapshots: snapshots, engagement: eng}
}

// Details returns a strain by name (normalized lookup, no fuzzing: this is
// the detail endpoint, not search).
func (s *Service) Details(ctx context.Context, name string) (catalog.Strain, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return catalog.Strain{}, fmt.Errorf("load snapshot: %w", err)
	}
	strain, ok := snap.ByName(name)
	if !ok {
		return catalog.Strain{}, fmt.Errorf("%w: %q", domain.ErrStrainNotFound, name)
	}
	return strain, nil
}

// List returns every canonical strain name, sorted.
func (s *Service) List(ctx context.Context) ([]string, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap.Names(), nil
}

// Popular returns the most-liked strains with their catalog details. Strains
// that have dropped out of the catalog keep their ranking row with the bare
// name.
func (s *Service) Popular(ctx context.Context) ([]PopularStrain, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	top, err := s.engagement.TopStrains(ctx, PopularSize)
	if err != nil {
		return nil, fmt.Errorf("top strains: %w", err)
	}

	out := make([]PopularStrain, len(top))
	for i, r := range top {
		out[i] = PopularStrain{Name: r.Name, Likes: r.Score}
		if strain, ok := snap.ByName(r.Name); ok {
			out[i].Type = strain.Type
			out[i].Effects = strain.Effects
		}
	}
	return out, nil
}
