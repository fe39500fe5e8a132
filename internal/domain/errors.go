package domain

import "errors"

var (
	// ErrCatalogUnavailable signals a missing or malformed strain catalog artifact.
	ErrCatalogUnavailable = errors.New("strain catalog unavailable")
	// ErrEmbeddingsUnavailable signals a missing or malformed embedding artifact.
	ErrEmbeddingsUnavailable = errors.New("strain embeddings unavailable")
	// ErrNoCandidates signals that no strain overlaps the desired effects.
	// This is a normal "no matches" outcome, not a system failure.
	ErrNoCandidates = errors.New("no strains match the desired effects")
	// ErrDuplicateStrainName signals two catalog rows normalizing to the same name (build-time fatal).
	ErrDuplicateStrainName = errors.New("duplicate strain name in catalog")
	// ErrStrainNotFound signals a lookup miss for a strain name.
	ErrStrainNotFound = errors.New("strain not found")
	// ErrInvalidInput signals request payload values outside their allowed range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProfileNotFound signals a missing user profile.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrEmailTaken signals a signup attempt with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSurveyIncomplete signals a recommendation request before any survey was submitted.
	ErrSurveyIncomplete = errors.New("survey not completed")

	// ErrAlreadyFavorite signals adding a strain that is already a favorite.
	ErrAlreadyFavorite = errors.New("strain is already in favorites")
	// ErrNotFavorite signals removing a strain that is not a favorite.
	ErrNotFavorite = errors.New("strain not found in favorites")

	// ErrChatUnavailable signals that the budtender chat provider is not configured.
	ErrChatUnavailable = errors.New("chat provider not configured")
	// ErrChatProviderError signals an upstream chat completion failure.
	ErrChatProviderError = errors.New("chat provider error")
)
