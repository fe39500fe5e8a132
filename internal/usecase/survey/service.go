// Package survey persists onboarding survey answers and returns the first
// set of recommendations computed from them.
package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/match"
	"github.com/verdant-cloud/strainrec/internal/usecase/recommend"
)

// Input is a raw survey submission. All values are free text; normalization
// happens here.
type Input struct {
	DesiredEffects  []string `json:"desired_effects"`
	ExperienceLevel string   `json:"experience_level"`
	FamiliarStrains []string `json:"familiar_strains"`
	Terpenes        []string `json:"terpenes"`
	MayRelieve      []string `json:"may_relieve"`
}

// Service handles survey submission.
type Service struct {
	profiles    ProfileStore
	recommender Recommender
}

// New creates a survey service.
func New(profiles ProfileStore, recommender Recommender) *Service {
	return &Service{profiles: profiles, recommender: recommender}
}

// Submit normalizes and persists the survey answers, marks the survey
// complete, and returns recommendations for the updated preferences. At
// least one desired effect is required.
func (s *Service) Submit(ctx context.Context, userID int64, in Input) ([]recommend.Recommendation, error) {
	effects := match.NormalizeAll(in.DesiredEffects)
	if len(effects) == 0 {
		return nil, fmt.Errorf("%w: at least one desired effect is required", domain.ErrSurveyIncomplete)
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Preferences = domain.Preferences{
		DesiredEffects:  effects,
		ExperienceLevel: match.Normalize(in.ExperienceLevel),
		FamiliarStrains: match.NormalizeAll(in.FamiliarStrains),
		Terpenes:        match.NormalizeAll(in.Terpenes),
		MayRelieve:      match.NormalizeAll(in.MayRelieve),
	}
	p.SurveyCompleted = true

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	recs, err := s.recommender.RecommendFor(ctx, p)
	if err != nil {
		// The survey is saved either way; surface the ranking error only
		// when it is not the empty-candidate case.
		if errors.Is(err, domain.ErrNoCandidates) {
			return []recommend.Recommendation{}, nil
		}
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return recs, nil
}
