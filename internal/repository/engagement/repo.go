// Package engagement persists the shared engagement counters: per-strain
// like/dislike and review totals, plus the popularity and reviewer rankings.
package engagement

import (
	"context"
	"fmt"
	"strconv"

	"github.com/verdant-cloud/strainrec/internal/db"
	"github.com/verdant-cloud/strainrec/internal/domain"
)

const (
	popularityKey  = domain.KeyPrefix + "strain_popularity"
	leaderboardKey = domain.KeyPrefix + "leaderboard"
)

// store is the consumer interface for engagement counters (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) error
	HIncrByFloat(ctx context.Context, key, field string, delta float64) error
	ZIncrBy(ctx context.Context, key string, delta float64, member string) error
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]db.ScoredMember, error)
}

// RankedStrain is a strain with its popularity score.
type RankedStrain struct {
	Name  string
	Score int64
}

// RankedUser is a user id with its leaderboard score.
type RankedUser struct {
	UserID int64
	Score  int64
}

// Totals holds a strain's like/dislike counters.
type Totals struct {
	Likes    int64
	Dislikes int64
}

// Repo implements the engagement contracts of the use case layer.
type Repo struct {
	store store
}

// New creates an engagement repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// AddFeedback bumps the strain's like or dislike counter.
func (r *Repo) AddFeedback(ctx context.Context, strainName string, like bool) error {
	field := "dislikes"
	if like {
		field = "likes"
	}
	if err := r.store.HIncrBy(ctx, feedbackKey(strainName), field, 1); err != nil {
		return fmt.Errorf("incr %s for %q: %w", field, strainName, err)
	}
	return nil
}

// BumpPopularity adds one to the strain's popularity ranking.
func (r *Repo) BumpPopularity(ctx context.Context, strainName string) error {
	if err := r.store.ZIncrBy(ctx, popularityKey, 1, strainName); err != nil {
		return fmt.Errorf("bump popularity for %q: %w", strainName, err)
	}
	return nil
}

// FeedbackTotals returns a strain's like/dislike counters. Missing counters
// read as zero.
func (r *Repo) FeedbackTotals(ctx context.Context, strainName string) (Totals, error) {
	m, err := r.store.HGetAll(ctx, feedbackKey(strainName))
	if err != nil {
		return Totals{}, fmt.Errorf("feedback totals for %q: %w", strainName, err)
	}
	return Totals{
		Likes:    parseCount(m["likes"]),
		Dislikes: parseCount(m["dislikes"]),
	}, nil
}

// AddReviewStats bumps the strain's review count and rating sum.
func (r *Repo) AddReviewStats(ctx context.Context, strainName string, rating float64) error {
	key := reviewsKey(strainName)
	if err := r.store.HIncrBy(ctx, key, "review_count", 1); err != nil {
		return fmt.Errorf("incr review count for %q: %w", strainName, err)
	}
	if err := r.store.HIncrByFloat(ctx, key, "rating_sum", rating); err != nil {
		return fmt.Errorf("incr rating sum for %q: %w", strainName, err)
	}
	return nil
}

// BumpLeaderboard adds one to the user's reviewer leaderboard score.
func (r *Repo) BumpLeaderboard(ctx context.Context, userID int64) error {
	member := strconv.FormatInt(userID, 10)
	if err := r.store.ZIncrBy(ctx, leaderboardKey, 1, member); err != nil {
		return fmt.Errorf("bump leaderboard for user %d: %w", userID, err)
	}
	return nil
}

// TopStrains returns the n most popular strains by like count, descending.
func (r *Repo) TopStrains(ctx context.Context, n int) ([]RankedStrain, error) {
	members, err := r.store.ZRevRangeWithScores(ctx, popularityKey, 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("top strains: %w", err)
	}

	out := make([]RankedStrain, len(members))
	for i, m := range members {
		out[i] = RankedStrain{Name: m.Member, Score: int64(m.Score)}
	}
	return out, nil
}

// TopReviewers returns the n highest-scoring reviewers, descending.
func (r *Repo) TopReviewers(ctx context.Context, n int) ([]RankedUser, error) {
	members, err := r.store.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("top reviewers: %w", err)
	}

	out := make([]RankedUser, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m.Member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse leaderboard member %q: %w", m.Member, err)
		}
		out = append(out, RankedUser{UserID: id, Score: int64(m.Score)})
	}
	return out, nil
}

func feedbackKey(strainName string) string {
	return domain.KeyPrefix + "strain_feedback:" + strainName
}

func reviewsKey(strainName string) string {
	return domain.KeyPrefix + "strain_reviews:" + strainName
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
