// Package profile persists user profiles as JSON blobs in the key-value
// store, with an email index and a numeric id sequence.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/verdant-cloud/strainrec/internal/db"
	"github.com/verdant-cloud/strainrec/internal/domain"
)

// store is the consumer interface for profile persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// Repo implements the profile store contracts of the use case layer.
type Repo struct {
	store store
}

// New creates a profile repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a profile by user id.
func (r *Repo) Get(ctx context.Context, userID int64) (domain.Profile, error) {
	raw, err := r.store.Get(ctx, userKey(userID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile %d: %w", userID, err)
	}

	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("unmarshal profile %d: %w", userID, err)
	}
	return p, nil
}

// Save stores the profile and keeps the email index pointing at it.
func (r *Repo) Save(ctx context.Context, p domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile %d: %w", p.UserID, err)
	}

	if err := r.store.Set(ctx, userKey(p.UserID), data); err != nil {
		return fmt.Errorf("set profile %d: %w", p.UserID, err)
	}
	if p.Email != "" {
		idStr := strconv.FormatInt(p.UserID, 10)
		if err := r.store.Set(ctx, emailKey(p.Email), []byte(idStr)); err != nil {
			return fmt.Errorf("set email index for %d: %w", p.UserID, err)
		}
	}
	return nil
}

// IDByEmail resolves an email to a user id via the index.
func (r *Repo) IDByEmail(ctx context.Context, email string) (int64, error) {
	raw, err := r.store.Get(ctx, emailKey(email))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrProfileNotFound
		}
		return 0, fmt.Errorf("get email index: %w", err)
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id %q: %w", raw, err)
	}
	return id, nil
}

// EmailExists reports whether an email is already registered.
func (r *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.store.Exists(ctx, emailKey(email))
	if err != nil {
		return false, fmt.Errorf("check email index: %w", err)
	}
	return exists, nil
}

// NextID allocates a new numeric user id.
func (r *Repo) NextID(ctx context.Context) (int64, error) {
	id, err := r.store.Incr(ctx, domain.KeyPrefix+"next_user_id")
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return id, nil
}

func userKey(id int64) string {
	return fmt.Sprintf("%suser:%d", domain.KeyPrefix, id)
}

func emailKey(email string) string {
	return domain.KeyPrefix + "email:" + email
}
