package chi

import (
	"context"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/repository/engagement"
	accountuc "github.com/verdant-cloud/strainrec/internal/usecase/account"
	chatuc "github.com/verdant-cloud/strainrec/internal/usecase/chat"
	favoritesuc "github.com/verdant-cloud/strainrec/internal/usecase/favorites"
	feedbackuc "github.com/verdant-cloud/strainrec/internal/usecase/feedback"
	healthuc "github.com/verdant-cloud/strainrec/internal/usecase/health"
	recommenduc "github.com/verdant-cloud/strainrec/internal/usecase/recommend"
	reviewuc "github.com/verdant-cloud/strainrec/internal/usecase/review"
	strainsuc "github.com/verdant-cloud/strainrec/internal/usecase/strains"
	surveyuc "github.com/verdant-cloud/strainrec/internal/usecase/survey"
)

// memStore is an in-memory profile store satisfying every use case contract.
type memStore struct {
	profiles map[int64]domain.Profile
	emails   map[string]int64
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		profiles: make(map[int64]domain.Profile),
		emails:   make(map[string]int64),
	}
}

func (m *memStore) Get(_ context.Context, userID int64) (domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *memStore) Save(_ context.Context, p domain.Profile) error {
	m.profiles[p.UserID] = p
	m.emails[p.Email] = p.UserID
	return nil
}

func (m *memStore) IDByEmail(_ context.Context, email string) (int64, error) {
	id, ok := m.emails[email]
	if !ok {
		return 0, domain.ErrProfileNotFound
	}
	return id, nil
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.emails[email]
	return ok, nil
}

func (m *memStore) NextID(context.Context) (int64, error) {
	m.nextID++
	return m.nextID, nil
}

// memEngagement is an in-memory engagement store.
type memEngagement struct {
	likes      map[string]int64
	dislikes   map[string]int64
	popularity map[string]int64
	reviews    map[string]int
	board      map[int64]int64
}

func newMemEngagement() *memEngagement {
	return &memEngagement{
		likes:      make(map[string]int64),
		dislikes:   make(map[string]int64),
		popularity: make(map[string]int64),
		reviews:    make(map[string]int),
		board:      make(map[int64]int64),
	}
}

func (m *memEngagement) AddFeedback(_ context.Context, strainName string, like bool) error {
	if like {
		m.likes[strainName]++
	} else {
		m.dislikes[strainName]++
	}
	return nil
}

func (m *memEngagement) BumpPopularity(_ context.Context, strainName string) error {
	m.popularity[strainName]++
	return nil
}

func (m *memEngagement) FeedbackTotals(_ context.Context, strainName string) (engagement.Totals, error) {
	return engagement.Totals{Likes: m.likes[strainName], Dislikes: m.dislikes[strainName]}, nil
}

func (m *memEngagement) AddReviewStats(_ context.Context, strainName string, _ float64) error {
	m.reviews[strainName]++
	return nil
}

func (m *memEngagement) BumpLeaderboard(_ context.Context, userID int64) error {
	m.board[userID]++
	return nil
}

func (m *memEngagement) TopReviewers(context.Context, int) ([]engagement.RankedUser, error) {
	out := make([]engagement.RankedUser, 0, len(m.board))
	for id, score := range m.board {
		out = append(out, engagement.RankedUser{UserID: id, Score: score})
	}
	return out, nil
}

func (m *memEngagement) TopStrains(context.Context, int) ([]engagement.RankedStrain, error) {
	out := make([]engagement.RankedStrain, 0, len(m.popularity))
	for name, score := range m.popularity {
		out = append(out, engagement.RankedStrain{Name: name, Score: score})
	}
	return out, nil
}

// staticSnapshots serves a fixed catalog pair.
type staticSnapshots struct {
	snap  *catalog.Snapshot
	table *vector.Table
}

func (s *staticSnapshots) Snapshot(context.Context) (*catalog.Snapshot, *vector.Table, error) {
	return s.snap, s.table, nil
}

func (s *staticSnapshots) Ready() bool { return s.snap != nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// newTestRouter wires the full API over in-memory stores.
func newTestRouter(t *testing.T) (*gochi.Mux, *memStore) {
	t.Helper()

	snap, err := catalog.Build([]catalog.Row{
		{ID: 1, Name: "Blue Dream", Type: "hybrid", Rating: 4.4, Effects: []string{"relaxed", "happy"}},
		{ID: 2, Name: "OG Kush", Type: "indica", Rating: 4.2, Effects: []string{"sleepy", "relaxed"}},
		{ID: 3, Name: "Sour Diesel", Type: "sativa", Rating: 4.1, Effects: []string{"energetic", "happy"}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	table, err := vector.NewTable(2, map[int64]vector.Vector{
		1: {0.8, 0.4},
		2: {0.1, 0.9},
		3: {0.7, 0.5},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	snaps := &staticSnapshots{snap: snap, table: table}

	store := newMemStore()
	eng := newMemEngagement()
	logger := zap.NewNop()

	accounts := accountuc.New(store)
	recommender := recommenduc.New(store, snaps, 0, 0)
	server := NewServer(
		accounts,
		surveyuc.New(store, recommender),
		recommender,
		reviewuc.New(store, snaps, eng, 0),
		feedbackuc.New(store, snaps, eng, 0),
		favoritesuc.New(store, snaps, 0),
		strainsuc.New(snaps, eng),
		chatuc.New(nil, snaps, 0),
		healthuc.New(okPinger{}, snaps),
		logger,
	)

	r := gochi.NewRouter()
	server.Routes(r)
	return r, store
}
