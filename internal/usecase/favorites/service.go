// Package favorites implements the user's favorite strain list.
package favorites

import (
	"context"
	"fmt"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
)

// Service handles favorite strain management.
type Service struct {
	profiles  ProfileStore
	snapshots SnapshotProvider
	resolver  *match.Resolver
}

// New creates a favorites service.
func New(profiles ProfileStore, snapshots SnapshotProvider, threshold int) *Service {
	return &Service{
		profiles:  profiles,
		snapshots: snapshots,
		resolver:  match.NewResolver(threshold),
	}
}

// Add resolves the strain name and appends it to the user's favorites.
// Duplicates are rejected. The "Favorites Collector" badge is awarded at
// five favorites. Returns the canonical strain name.
func (s *Service) Add(ctx context.Context, userID int64, strainName string) (string, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("load snapshot: %w", err)
	}
	canonical, _, ok := s.resolver.Resolve(strainName, snap.Names())
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrStrainNotFound, strainName)
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	if p.IsFavorite(canonical) {
		return "", fmt.Errorf("%w: %q", domain.ErrAlreadyFavorite, canonical)
	}

	p.Favorites = append(p.Favorites, canonical)
	if len(p.Favorites) == domain.BadgeFavoritesCollectorAt {
		p.AwardBadge(domain.BadgeFavoritesCollector)
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	return canonical, nil
}

// Remove deletes a strain from the user's favorites. Removing a strain that
// is not a favorite is an error.
func (s *Service) Remove(ctx context.Context, userID int64, strainName string) error {
	name := match.Normalize(strainName)

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	kept := p.Favorites[:0]
	for _, f := range p.Favorites {
		if f != name {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(p.Favorites) {
		return fmt.Errorf("%w: %q", domain.ErrNotFavorite, name)
	}
	p.Favorites = kept

	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// List returns the user's favorites in insertion order.
func (s *Service) List(ctx context.Context, userID int64) ([]string, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p.Favorites == nil {
		return []string{}, nil
	}
	return p.Favorites, nil
}
