// Package catalog provides the in-memory strain catalog: an immutable
// snapshot of every strain with consolidated list-valued attributes,
// indexed by canonical name and by id.
package catalog

import (
	"fmt"
	"sort"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
)

// Strain is a single catalog entry. Name is the canonical (normalized) form;
// the attribute lists hold normalized values consolidated from the source's
// multi-hot columns.
type Strain struct {
	ID         int64
	Name       string
	Type       string
	Rating     float64
	Effects    []string
	Terpenes   []string
	MayRelieve []string
}

// HasAnyEffect reports whether the strain's effect set overlaps the given
// set (OR semantics — one shared effect is enough).
func (s *Strain) HasAnyEffect(effects map[string]struct{}) bool {
	for _, e := range s.Effects {
		if _, ok := effects[e]; ok {
			return true
		}
	}
	return false
}

// Row is a raw catalog row as produced by the source loader, before
// normalization and uniqueness checks.
type Row struct {
	ID         int64
	Name       string
	Type       string
	Rating     float64
	Effects    []string
	Terpenes   []string
	MayRelieve []string
}

// Snapshot is an immutable catalog view. Build once, share freely: no method
// mutates state, so concurrent recommendation calls need no locking.
type Snapshot struct {
	strains []Strain
	byID    map[int64]*Strain
	byName  map[string]*Strain
	names   []string // sorted, for deterministic resolver input
}

// Build normalizes names and attributes, rejects duplicate canonical names,
// and produces an immutable Snapshot.
func Build(rows []Row) (*Snapshot, error) {
	snap := &Snapshot{
		strains: make([]Strain, 0, len(rows)),
		byID:    make(map[int64]*Strain, len(rows)),
		byName:  make(map[string]*Strain, len(rows)),
	}

	for _, r := range rows {
		name := match.Normalize(r.Name)
		if name == "" {
			return nil, fmt.Errorf("strain id %d has an empty name", r.ID)
		}
		if _, exists := snap.byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateStrainName, name)
		}
		if _, exists := snap.byID[r.ID]; exists {
			return nil, fmt.Errorf("duplicate strain id %d in catalog", r.ID)
		}

		snap.strains = append(snap.strains, Strain{
			ID:         r.ID,
			Name:       name,
			Type:       r.Type,
			Rating:     r.Rating,
			Effects:    match.NormalizeAll(r.Effects),
			Terpenes:   match.NormalizeAll(r.Terpenes),
			MayRelieve: match.NormalizeAll(r.MayRelieve),
		})
	}

	for i := range snap.strains {
		s := &snap.strains[i]
		snap.byID[s.ID] = s
		snap.byName[s.Name] = s
		snap.names = append(snap.names, s.Name)
	}
	sort.Strings(snap.names)

	return snap, nil
}

// Len returns the number of strains.
func (s *Snapshot) Len() int { return len(s.strains) }

// All returns every strain.
func (s *Snapshot) All() []Strain { return s.strains }

// ByID looks up a strain by id.
func (s *Snapshot) ByID(id int64) (Strain, bool) {
	st, ok := s.byID[id]
	if !ok {
		return Strain{}, false
	}
	return *st, true
}

// ByName looks up a strain by name, normalizing the input first.
func (s *Snapshot) ByName(name string) (Strain, bool) {
	st, ok := s.byName[match.Normalize(name)]
	if !ok {
		return Strain{}, false
	}
	return *st, true
}

// Names returns the canonical name set, sorted. Callers must not mutate it.
func (s *Snapshot) Names() []string { return s.names }

// FilterByEffects returns every strain whose effects overlap desiredEffects
// (OR semantics). desiredEffects is expected pre-normalized.
func (s *Snapshot) FilterByEffects(desiredEffects []string) []Strain {
	want := make(map[string]struct{}, len(desiredEffects))
	for _, e := range desiredEffects {
		want[e] = struct{}{}
	}

	var out []Strain
	for i := range s.strains {
		if s.strains[i].HasAnyEffect(want) {
			out = append(out, s.strains[i])
		}
	}
	return out
}
