// Package review implements strain review submission, the per-strain review
// counters, and the reviewer leaderboard.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
	"github.com/verdant-cloud/strainrec/internal/logger"
)

// LeaderboardSize is the number of reviewers the leaderboard exposes.
const LeaderboardSize = 10

// Input is a raw review submission.
type Input struct {
	StrainName string                `json:"strain_name"`
	Rating     float64               `json:"rating"`
	Text       string                `json:"text"`
	Metrics    *domain.ReviewMetrics `json:"metrics"`
}

// LeaderboardEntry is one reviewer leaderboard row.
type LeaderboardEntry struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Score  int64  `json:"score"`
}

// Service handles review submission and the leaderboard.
type Service struct {
	profiles   ProfileStore
	snapshots  SnapshotProvider
	engagement EngagementStore
	resolver   *match.Resolver
}

// New creates a review service.
func New(profiles ProfileStore, snapshots SnapshotProvider, eng EngagementStore, threshold int) *Service {
	return &Service{
		profiles:   profiles,
		snapshots:  snapshots,
		engagement: eng,
		resolver:   match.NewResolver(threshold),
	}
}

// Submit validates and stores a review, bumps the strain's review counters
// and the user's leaderboard score, and awards review badges.
func (s *Service) Submit(ctx context.Context, userID int64, in Input) (domain.Review, error) {
	if in.Rating < 0 || in.Rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: rating %v out of range 0-5", domain.ErrInvalidInput, in.Rating)
	}
	if err := validateMetrics(in.Metrics); err != nil {
		return domain.Review{}, err
	}

	snap, _, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return domain.Review{}, fmt.Errorf("load snapshot: %w", err)
	}
	canonical, _, ok := s.resolver.Resolve(in.StrainName, snap.Names())
	if !ok {
		return domain.Review{}, fmt.Errorf("%w: %q", domain.ErrStrainNotFound, in.StrainName)
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("get profile: %w", err)
	}

	review := domain.Review{
		StrainName: canonical,
		Rating:     in.Rating,
		Text:       in.Text,
		Metrics:    in.Metrics,
		Date:       time.Now().UTC(),
	}
	p.Reviews = append(p.Reviews, review)

	if len(p.Reviews) == 1 {
		p.AwardBadge(domain.BadgeFirstReview)
	}
	if len(p.Reviews) == domain.BadgeReviewEnthusiastAt {
		p.AwardBadge(domain.BadgeReviewEnthusiast)
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return domain.Review{}, fmt.Errorf("save profile: %w", err)
	}

	// Counter updates are best effort once the review is stored.
	log := logger.FromContext(ctx)
	if err := s.engagement.AddReviewStats(ctx, canonical, in.Rating); err != nil {
		log.Warn("review counters not updated", zap.String("strain", canonical), zap.Error(err))
	}
	if err := s.engagement.BumpLeaderboard(ctx, userID); err != nil {
		log.Warn("leaderboard not updated", zap.Int64("user_id", userID), zap.Error(err))
	}

	return review, nil
}

// Leaderboard returns the top reviewers with their emails resolved.
func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	top, err := s.engagement.TopReviewers(ctx, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("top reviewers: %w", err)
	}

	out := make([]LeaderboardEntry, 0, len(top))
	for _, r := range top {
		entry := LeaderboardEntry{UserID: r.UserID, Score: r.Score}
		p, err := s.profiles.Get(ctx, r.UserID)
		switch {
		case err == nil:
			entry.Email = p.Email
		case errors.Is(err, domain.ErrProfileNotFound):
			// Deleted profile, keep the row with the bare id.
		default:
			return nil, fmt.Errorf("get profile %d: %w", r.UserID, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func validateMetrics(m *domain.ReviewMetrics) error {
	if m == nil {
		return nil
	}
	for name, v := range map[string]int{
		"potency": m.Potency,
		"taste":   m.Taste,
		"aroma":   m.Aroma,
		"value":   m.Value,
	} {
		if v < 1 || v > 10 {
			return fmt.Errorf("%w: metric %s = %d out of range 1-10", domain.ErrInvalidInput, name, v)
		}
	}
	return nil
}
