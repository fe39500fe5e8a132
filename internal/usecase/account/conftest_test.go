package account

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain"
)

// mockProfileStore is an in-memory ProfileStore.
type mockProfileStore struct {
	profiles map[int64]domain.Profile
	emails   map[string]int64
	nextID   int64

	getErr  error
	saveErr error
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{
		profiles: make(map[int64]domain.Profile),
		emails:   make(map[string]int64),
	}
}

func (m *mockProfileStore) Get(_ context.Context, userID int64) (domain.Profile, error) {
	if m.getErr != nil {
		return domain.Profile{}, m.getErr
	}
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
	m.emails[p.Email] = p.UserID
	return nil
}

func (m *mockProfileStore) IDByEmail(_ context.Context, email string) (int64, error) {
	id, ok := m.emails[email]
	if !ok {
		return 0, domain.ErrProfileNotFound
	}
	return id, nil
}

func (m *mockProfileStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.emails[email]
	return ok, nil
}

func (m *mockProfileStore) NextID(context.Context) (int64, error) {
	m.nextID++
	return m.nextID, nil
}
