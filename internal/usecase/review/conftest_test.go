package review

import (
	"context"
	"testing"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
)

// mockProfileStore is an in-memory ProfileStore.
type mockProfileStore struct {
	profiles map[int64]domain.Profile
	saveErr  error
}

func newMockProfileStore(seed ...domain.Profile) *mockProfileStore {
	m := &mockProfileStore{profiles: make(map[int64]domain.Profile)}
	for _, p := range seed {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *mockProfileStore) Get(_ context.Context, userID int64) (domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileStore) Save(_ context.Context, p domain.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[p.UserID] = p
	return nil
}

// mockEngagement records engagement calls.
type mockEngagement struct {
	reviewStats  map[string]int
	leaderboard  map[int64]int
	topReviewers []engagement.RankedUser
}

func newMockEngagement() *mockEngagement {
	return &mockEngagement{
		reviewStats: make(map[string]int),
		leaderboard: make(map[int64]int),
	}
}

func (m *mockEngagement) AddReviewStats(_ context.Context, strainName string, _ float64) error {
	m.reviewStats[strainName]++
	return nil
}

func (m *mockEngagement) BumpLeaderboard(_ context.Context, userID int64) error {
	m.leaderboard[userID]++
	return nil
}

func (m *mockEngagement) TopReviewers(context.Context, int) ([]engagement.RankedUser, error) {
	return m.topReviewers, nil
}

// staticSnapshots serves a fixed catalog pair.
type staticSnapshots struct {
	snap  *catalog.Snapshot
	table *vector.Table
}

func (s *staticSnapshots) Snapshot(context.Context) (*catalog.Snapshot, *vector.Table, error) {
	return s.snap, s.table, nil
}

func testSnapshots(t *testing.T) *staticSnapshots {
	t.Helper()
	snap, err := catalog.Build([]catalog.Row{
		{ID: 1, Name: "Blue Dream", Type: "hybrid", Effects: []string{"happy"}},
		{ID: 2, Name: "OG Kush", Type: "indica", Effects: []string{"sleepy"}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	table, err := vector.NewTable(2, map[int64]vector.Vector{
		1: {0.8, 0.4},
		2: {0.1, 0.9},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return &staticSnapshots{snap: snap, table: table}
}
