package redis

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/db"
)

// ZIncrBy increments a sorted-set member's score.
func (s *Store) ZIncrBy(ctx context.Context, key string, delta float64, member string) error {
	cmd := s.b().Zincrby().Key(key).Increment(delta).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZIncrBy, Err: err}
	}
	return nil
}

// ZRevRangeWithScores returns members in [start, stop] by descending score.
func (s *Store) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]db.ScoredMember, error) {
	cmd := s.b().Zrevrange().Key(key).Start(start).Stop(stop).Withscores().Build()
	scores, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRevRange, Err: err}
	}

	out := make([]db.ScoredMember, len(scores))
	for i, z := range scores {
		out[i] = db.ScoredMember{Member: z.Member, Score: z.Score}
	}
	return out, nil
}
