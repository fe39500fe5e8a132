package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/verdant-cloud/strainrec/internal/domain"
)

func TestAddResolvesAndStores(t *testing.T) {
	store := newMockProfileStore(domain.NewProfile(1, "jamie@example.com", "hash"))
	svc := New(store, testSnapshots(t), 0)

	got, err := svc.Add(context.Background(), 1, "Blu Dream")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got != "blue dream" {
		t.Errorf("canonical = %q, want blue dream", got)
	}
	stored := store.profiles[1]
	if !stored.IsFavorite("blue dream") {
		t.Error("favorite not stored")
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	store := newMockProfileStore(domain.NewProfile(1, "jamie@example.com", "hash"))
	svc := New(store, testSnapshots(t), 0)
	ctx := context.Background()

	if _, err := svc.Add(ctx, 1, "blue dream"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := svc.Add(ctx, 1, "Blue Dream")
	if !errors.Is(err, domain.ErrAlreadyFavorite) {
		t.Fatalf("err = %v, want ErrAlreadyFavorite", err)
	}
	if len(store.profiles[1].Favorites) != 1 {
		t.Errorf("favorites = %v, want single entry", store.profiles[1].Favorites)
	}
}

func TestAddUnknownStrain(t *testing.T) {
	store := newMockProfileStore(domain.NewProfile(1, "jamie@example.com", "hash"))
	svc := New(store, testSnapshots(t), 0)

	_, err := svc.Add(context.Background(), 1, "xyz123")
	if !errors.Is(err, domain.ErrStrainNotFound) {
		t.Fatalf("err = %v, want ErrStrainNotFound", err)
	}
}

func TestAddCollectorBadge(t *testing.T) {
	store := newMockProfileStore(domain.NewProfile(1, "jamie@example.com", "hash"))
	svc := New(store, testSnapshots(t), 0)
	ctx := context.Background()

	for _, name := range []string{"blue dream", "og kush", "sour diesel", "granddaddy purple", "jack herer"} {
		if _, err := svc.Add(ctx, 1, name); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}

	stored := store.profiles[1]
	if !stored.HasBadge(domain.BadgeFavoritesCollector) {
		t.Error("favorites collector badge not awarded at five favorites")
	}
}

func TestRemove(t *testing.T) {
	p := domain.NewProfile(1, "jamie@example.com", "hash")
	p.Favorites = []string{"blue dream", "og kush"}
	store := newMockProfileStore(p)
	svc := New(store, testSnapshots(t), 0)

	if err := svc.Remove(context.Background(), 1, "Blue Dream"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	saved := store.profiles[1]
	if len(saved.Favorites) != 1 || saved.Favorites[0] != "og kush" {
		t.Errorf("favorites = %v, want [og kush]", saved.Favorites)
	}
}

func TestRemoveNotFavorite(t *testing.T) {
	store := newMockProfileStore(domain.NewProfile(1, "jamie@example.com", "hash"))
	svc := New(store, testSnapshots(t), 0)

	err := svc.Remove(context.Background(), 1, "blue dream")
	if !errors.Is(err, domain.ErrNotFavorite) {
		t.Fatalf("err = %v, want ErrNotFavorite", err)
	}
}

func TestList(t *testing.T) {
	p := domain.NewProfile(1, "jamie@example.com", "hash")
	p.Favorites = []string{"og kush", "blue dream"}
	store := newMockProfileStore(p)
	svc := New(store, testSnapshots(t), 0)

	got, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "og kush" || got[1] != "blue dream" {
		t.Errorf("favorites = %v, want insertion order [og kush blue dream]", got)
	}
}
