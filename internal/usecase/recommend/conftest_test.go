package recommend

import (
	"context"
	"testing"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
)

// mockProfiles implements ProfileReader with a function field.
type mockProfiles struct {
	getFn func(ctx context.Context, userID int64) (domain.Profile, error)
}

func (m *mockProfiles) Get(ctx context.Context, userID int64) (domain.Profile, error) {
	return m.getFn(ctx, userID)
}

func profilesReturning(p domain.Profile) *mockProfiles {
	return &mockProfiles{
		getFn: func(context.Context, int64) (domain.Profile, error) { return p, nil },
	}
}

// staticSnapshots implements SnapshotProvider over a fixed pair.
type staticSnapshots struct {
	snap  *catalog.Snapshot
	table *vector.Table
	err   error
}

func (s *staticSnapshots) Snapshot(context.Context) (*catalog.Snapshot, *vector.Table, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.snap, s.table, nil
}

// testSnapshots builds the shared catalog fixture:
//
//	1 blue dream    [relaxed happy]      [0.8 0.4]
//	2 og kush       [sleepy relaxed]     [0.1 0.9]
//	3 sour diesel   [energetic happy]    [0.7 0.5]
func testSnapshots(t *testing.T) *staticSnapshots {
	t.Helper()
	snap, err := catalog.Build([]catalog.Row{
		{ID: 1, Name: "Blue Dream", Type: "hybrid", Effects: []string{"relaxed", "happy"}},
		{ID: 2, Name: "OG Kush", Type: "indica", Effects: []string{"sleepy", "relaxed"}},
		{ID: 3, Name: "Sour Diesel", Type: "sativa", Effects: []string{"energetic", "happy"}},
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
	return &staticSnapshots{snap: snap, table: table}
}

func surveyedProfile(familiar, desired []string) domain.Profile {
	p := domain.NewProfile(1, "tester@example.com", "")
	p.Preferences = domain.Preferences{
		DesiredEffects:  desired,
		FamiliarStrains: familiar,
	}
	p.SurveyCompleted = true
	return p
}
