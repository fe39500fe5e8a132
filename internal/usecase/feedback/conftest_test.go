package feedback

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
	m.profiles[p.UserID] = p
	return nil
}

// mockEngagement records counter calls.
type mockEngagement struct {
	likes      map[string]int64
	dislikes   map[string]int64
	popularity map[string]int64
}

func newMockEngagement() *mockEngagement {
	return &mockEngagement{
		likes:      make(map[string]int64),
		dislikes:   make(map[string]int64),
		popularity: make(map[string]int64),
	}
}

func (m *mockEngagement) AddFeedback(_ context.Context, strainName string, like bool) error {
	if like {
		m.likes[strainName]++
	} else {
		m.dislikes[strainName]++
	}
	return nil
}

func (m *mockEngagement) BumpPopularity(_ context.Context, strainName string) error {
	m.popularity[strainName]++
	return nil
}

func (m *mockEngagement) FeedbackTotals(_ context.Context, strainName string) (engagement.Totals, error) {
	return engagement.Totals{Likes: m.likes[strainName], Dislikes: m.dislikes[strainName]}, nil
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
		{ID: 1, Name: "Blue Dream", Effects: []string{"happy"}},
		{ID: 2, Name: "OG Kush", Effects: []string{"sleepy"}},
		{ID: 3, Name: "Sour Diesel", Effects: []string{"energetic"}},
		{ID: 4, Name: "Granddaddy Purple", Effects: []string{"sleepy"}},
		{ID: 5, Name: "Jack Herer", Effects: []string{"focused"}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	table, err := vector.NewTable(1, map[int64]vector.Vector{
		1: {0.1}, 2: {0.2}, 3: {0.3}, 4: {0.4}, 5: {0.5},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return &staticSnapshots{snap: snap, table: table}
}
