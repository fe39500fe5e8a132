// Package domain holds the core types and error taxonomy shared between layers.
package domain

import "time"

// FeedbackType is a like/dislike signal for a strain.
type FeedbackType string

const (
	// FeedbackLike marks positive strain feedback.
	FeedbackLike FeedbackType = "like"
	// FeedbackDislike marks negative strain feedback.
	FeedbackDislike FeedbackType = "dislike"
)

// Valid reports whether the feedback type is one of the known variants.
func (f FeedbackType) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}

// Preferences holds the survey-derived preference fields.
// All string values are stored normalized (lower-cased, trimmed).
type Preferences struct {
	DesiredEffects  []string `json:"desired_effects"`
	ExperienceLevel string   `json:"experience_level"`
	FamiliarStrains []string `json:"familiar_strains"`
	Terpenes        []string `json:"terpenes"`
	MayRelieve      []string `json:"may_relieve"`
}

// ReviewMetrics holds optional 1-10 detail ratings attached to a review.
type ReviewMetrics struct {
	Potency int `json:"potency"`
	Taste   int `json:"taste"`
	Aroma   int `json:"aroma"`
	Value   int `json:"value"`
}

// Review is a single strain review stored on the profile.
type Review struct {
	StrainName string         `json:"strain_name"`
	Rating     float64        `json:"rating"` // 0-5
	Text       string         `json:"text,omitempty"`
	Metrics    *ReviewMetrics `json:"metrics,omitempty"`
	Date       time.Time      `json:"date"`
}

// Feedback is a like/dislike entry keyed by strain name on the profile.
type Feedback struct {
	Type FeedbackType `json:"type"`
	Date time.Time    `json:"date"`
}

// Profile is the per-user aggregate persisted in the profile store.
// The recommendation pipeline reads Preferences, Favorites, and Reviews;
// everything else is account and engagement state.
type Profile struct {
	UserID          int64               `json:"user_id"`
	Email           string              `json:"email"`
	PasswordHash    string              `json:"password"`
	Preferences     Preferences         `json:"preferences"`
	Badges          []string            `json:"badges"`
	Reviews         []Review            `json:"reviews"`
	Notifications   []string            `json:"notifications"`
	Favorites       []string            `json:"favorites"`
	StrainFeedback  map[string]Feedback `json:"strain_feedback"`
	LastLogin       time.Time           `json:"last_login"`
	SurveyCompleted bool                `json:"survey_completed"`
}

// NewProfile creates a profile with initialized collections.
func NewProfile(userID int64, email, passwordHash string) Profile {
	return Profile{
		UserID:         userID,
		Email:          email,
		PasswordHash:   passwordHash,
		Badges:         []string{},
		Reviews:        []Review{},
		Notifications:  []string{},
		Favorites:      []string{},
		StrainFeedback: map[string]Feedback{},
		LastLogin:      time.Now().UTC(),
	}
}

// HasBadge reports whether the badge was already awarded.
func (p *Profile) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// AwardBadge adds a badge and a congratulation notification.
// Returns false if the badge was already awarded.
func (p *Profile) AwardBadge(name string) bool {
	if p.HasBadge(name) {
		return false
	}
	p.Badges = append(p.Badges, name)
	p.Notifications = append(p.Notifications,
		"Congratulations! You've earned the '"+name+"' badge.")
	return true
}

// IsFavorite reports whether the (normalized) strain name is a favorite.
func (p *Profile) IsFavorite(name string) bool {
	for _, f := range p.Favorites {
		if f == name {
			return true
		}
	}
	return false
}

// Sanitized returns a copy safe to expose over the API (password hash elided).
func (p Profile) Sanitized() Profile {
	p.PasswordHash = ""
	return p
}
