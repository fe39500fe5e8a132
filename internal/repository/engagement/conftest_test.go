package engagement

import (
	"context"
	"sort"
	"strconv"

	"github.com/verdant-cloud/strainrec/internal/db"
)

// mockStore records engagement counter operations in memory.
type mockStore struct {
	hashes map[string]map[string]string
	zsets  map[string]map[string]float64

	hGetAllErr error
	hIncrErr   error
	zIncrErr   error
	zRangeErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes: make(map[string]map[string]string),
		zsets:  make(map[string]map[string]float64),
	}
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.hGetAllErr != nil {
		return nil, m.hGetAllErr
	}
	out := make(map[string]string, len(m.hashes[key]))
	for f, v := range m.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (m *mockStore) HIncrBy(_ context.Context, key, field string, delta int64) error {
	if m.hIncrErr != nil {
		return m.hIncrErr
	}
	cur, _ := strconv.ParseInt(m.field(key, field), 10, 64)
	m.hashes[key][field] = strconv.FormatInt(cur+delta, 10)
	return nil
}

func (m *mockStore) HIncrByFloat(_ context.Context, key, field string, delta float64) error {
	if m.hIncrErr != nil {
		return m.hIncrErr
	}
	cur, _ := strconv.ParseFloat(m.field(key, field), 64)
	m.hashes[key][field] = strconv.FormatFloat(cur+delta, 'f', -1, 64)
	return nil
}

func (m *mockStore) ZIncrBy(_ context.Context, key string, delta float64, member string) error {
	if m.zIncrErr != nil {
		return m.zIncrErr
	}
	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] += delta
	return nil
}

func (m *mockStore) ZRevRangeWithScores(_ context.Context, key string, start, stop int64) ([]db.ScoredMember, error) {
	if m.zRangeErr != nil {
		return nil, m.zRangeErr
	}
	members := make([]db.ScoredMember, 0, len(m.zsets[key]))
	for member, score := range m.zsets[key] {
		members = append(members, db.ScoredMember{Member: member, Score: score})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member < members[j].Member
	})
	if start >= int64(len(members)) {
		return nil, nil
	}
	end := stop + 1
	if stop < 0 || end > int64(len(members)) {
		end = int64(len(members))
	}
	return members[start:end], nil
}

func (m *mockStore) field(key, field string) string {
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	return m.hashes[key][field]
}
