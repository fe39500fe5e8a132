// Package feedback implements like/dislike signals per strain, the shared
// like counters, and the popularity ranking they feed.
package feedback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
	"github.com/verdant-cloud/strainrec/internal/logger"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
)

// Service handles strain feedback.
type Service struct {
	profiles   ProfileStore
	snapshots  SnapshotProvider
	engagement EngagementStore
	resolver   *match.Resolver
}

// New creates a feedback service.
func New(profiles ProfileStore, snapshots SnapshotProvider, eng EngagementStore, threshold int) *Service {
	return &Service{
		profiles:   profiles,
		snapshots:  snapshots,
		engagement: eng,
		resolver:   match.NewResolver(threshold),
	}
}

// Submit records a like or dislike for a strain. Repeat feedback on the same
// strain replaces the previous entry; likes bump the popularity ranking. The
// "Feedback Contributor" badge is awarded at five distinct strains.
func (s *Service) Submit(ctx context.Context, userID int64, strainName string, ft domain.FeedbackType) error {
	if !ft.Valid() {
		return fmt.Errorf("%w: unknown feedback type %q", domain.ErrInvalidInput, ft)
	}

	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	canonical, _, ok := s.resolver.Resolve(strainName, snap.Names())
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrStrainNotFound, strainName)
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	if p.StrainFeedback == nil {
		p.StrainFeedback = map[string]domain.Feedback{}
	}
	p.StrainFeedback[canonical] = domain.Feedback{Type: ft, Date: time.Now().UTC()}
	if len(p.StrainFeedback) == domain.BadgeFeedbackContributorAt {
		p.AwardBadge(domain.BadgeFeedbackContributor)
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	log := logger.FromContext(ctx)
	if err := s.engagement.AddFeedback(ctx, canonical, ft == domain.FeedbackLike); err != nil {
		log.Warn("feedback counters not updated", zap.String("strain", canonical), zap.Error(err))
	}
	if ft == domain.FeedbackLike {
		if err := s.engagement.BumpPopularity(ctx, canonical); err != nil {
			log.Warn("popularity not updated", zap.String("strain", canonical), zap.Error(err))
		}
	}
	return nil
}

// UserFeedback returns the user's per-strain feedback entries.
func (s *Service) UserFeedback(ctx context.Context, userID int64) (map[string]domain.Feedback, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p.StrainFeedback == nil {
		return map[string]domain.Feedback{}, nil
	}
	return p.StrainFeedback, nil
}

// StrainTotals returns a catalog strain's like/dislike counters.
func (s *Service) StrainTotals(ctx context.Context, strainName string) (engagement.Totals, error) {
	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return engagement.Totals{}, fmt.Errorf("load snapshot: %w", err)
	}
	strain, ok := snap.ByName(strainName)
	if !ok {
		return engagement.Totals{}, fmt.Errorf("%w: %q", domain.ErrStrainNotFound, strainName)
	}

	totals, err := s.engagement.FeedbackTotals(ctx, strain.Name)
	if err != nil {
		return engagement.Totals{}, fmt.Errorf("feedback totals: %w", err)
	}
	return totals, nil
}
