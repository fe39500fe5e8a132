package survey

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/usecase/recommend"
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

// mockRecommender implements Recommender with a function field.
type mockRecommender struct {
	recommendFn func(ctx context.Context, p domain.Profile) ([]recommend.Recommendation, error)
}

func (m *mockRecommender) RecommendFor(ctx context.Context, p domain.Profile) ([]recommend.Recommendation, error) {
	return m.recommendFn(ctx, p)
}
