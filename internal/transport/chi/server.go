// Package chi provides the HTTP transport: hand-written handlers over the
// use case services, with a sentinel-to-status error handler chain.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
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

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeValidationFailed   = "validation_failed"
	CodeProfileNotFound    = "profile_not_found"
	CodeStrainNotFound     = "strain_not_found"
	CodeNoCandidates       = "no_candidates"
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeSurveyIncomplete   = "survey_incomplete"
	CodeAlreadyFavorite    = "already_favorite"
	CodeNotFavorite        = "not_favorite"
	CodeCatalogUnavailable = "catalog_unavailable"
	CodeChatNotConfigured  = "chat_not_configured"
	CodeChatProviderError  = "chat_provider_error"
	CodeInternalError      = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the use case services behind the HTTP API.
type Server struct {
	accounts      *accountuc.Service
	survey        *surveyuc.Service
	recommend     *recommenduc.Service
	reviews       *reviewuc.Service
	feedback      *feedbackuc.Service
	favorites     *favoritesuc.Service
	strains       *strainsuc.Service
	chat          *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	accounts *accountuc.Service,
	survey *surveyuc.Service,
	recommend *recommenduc.Service,
	reviews *reviewuc.Service,
	feedback *feedbackuc.Service,
	favorites *favoritesuc.Service,
	strains *strainsuc.Service,
	chat *chatuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		accounts:  accounts,
		survey:    survey,
		recommend: recommend,
		reviews:   reviews,
		feedback:  feedback,
		favorites: favorites,
		strains:   strains,
		chat:      chat,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, CodeProfileNotFound),
		sentinelHandler(domain.ErrStrainNotFound, http.StatusNotFound, CodeStrainNotFound),
		sentinelHandler(domain.ErrNoCandidates, http.StatusNotFound, CodeNoCandidates),
		sentinelHandler(domain.ErrNotFavorite, http.StatusNotFound, CodeNotFavorite),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmailTaken, http.StatusConflict, CodeEmailTaken),
		sentinelHandler(domain.ErrAlreadyFavorite, http.StatusConflict, CodeAlreadyFavorite),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials),
		sentinelHandler(domain.ErrSurveyIncomplete, http.StatusBadRequest, CodeSurveyIncomplete),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
		sentinelHandler(domain.ErrEmbeddingsUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
		sentinelHandler(domain.ErrChatUnavailable, http.StatusNotImplemented, CodeChatNotConfigured),
		sentinelHandler(domain.ErrChatProviderError, http.StatusBadGateway, CodeChatProviderError),
	}
	return s
}

// Routes mounts every API route on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/onboarding", s.SignUp)
	r.Post("/login", s.LogIn)
	r.Post("/password_reset", s.ResetPassword)

	r.Post("/survey", s.SubmitSurvey)
	r.Get("/recommend/{userID}", s.Recommend)
	r.Get("/profile/{userID}", s.Profile)
	r.Get("/notifications/{userID}", s.Notifications)

	r.Post("/reviews", s.SubmitReview)
	r.Get("/leaderboard", s.Leaderboard)

	r.Post("/feedback", s.SubmitFeedback)
	r.Get("/feedback/user/{userID}", s.UserFeedback)
	r.Get("/feedback/strain/{name}", s.StrainFeedback)

	r.Post("/favorites", s.AddFavorite)
	r.Delete("/favorites", s.RemoveFavorite)
	r.Get("/favorites/{userID}", s.ListFavorites)

	r.Get("/strains", s.ListStrains)
	r.Get("/strains/popular", s.PopularStrains)
	r.Get("/strains/{name}", s.StrainDetails)

	r.Post("/chat", s.Chat)
}

// SignUp handles POST /onboarding.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "email and password are required")
		return
	}

	p, err := s.accounts.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// LogIn handles POST /login.
func (s *Server) LogIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.accounts.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ResetPassword handles POST /password_reset.
func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "new_password is required")
		return
	}

	if err := s.accounts.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitSurvey handles POST /survey.
func (s *Server) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"user_id"`
		surveyuc.Input
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "user_id is required")
		return
	}

	recs, err := s.survey.Submit(r.Context(), req.UserID, req.Input)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// Recommend handles GET /recommend/{userID}.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	recs, err := s.recommend.Recommend(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// Profile handles GET /profile/{userID}.
func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	p, err := s.accounts.Profile(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Notifications handles GET /notifications/{userID}.
func (s *Server) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	notes, err := s.accounts.DrainNotifications(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes})
}

// SubmitReview handles POST /reviews.
func (s *Server) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"user_id"`
		reviewuc.Input
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID <= 0 || req.StrainName == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "user_id and strain_name are required")
		return
	}

	review, err := s.reviews.Submit(r.Context(), req.UserID, req.Input)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// Leaderboard handles GET /leaderboard.
func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.reviews.Leaderboard(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

// SubmitFeedback handles POST /feedback.
func (s *Server) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int64               `json:"user_id"`
		StrainName string              `json:"strain_name"`
		Type       domain.FeedbackType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID <= 0 || req.StrainName == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "user_id and strain_name are required")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, `type must be "like" or "dislike"`)
		return
	}

	if err := s.feedback.Submit(r.Context(), req.UserID, req.StrainName, req.Type); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserFeedback handles GET /feedback/user/{userID}.
func (s *Server) UserFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	fb, err := s.feedback.UserFeedback(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": fb})
}

// StrainFeedback handles GET /feedback/strain/{name}.
func (s *Server) StrainFeedback(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	totals, err := s.feedback.StrainTotals(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"likes":    totals.Likes,
		"dislikes": totals.Dislikes,
	})
}

// AddFavorite handles POST /favorites.
func (s *Server) AddFavorite(w http.ResponseWriter, r *http.Request) {
	req, ok := favoriteRequest(w, r)
	if !ok {
		return
	}

	canonical, err := s.favorites.Add(r.Context(), req.UserID, req.StrainName)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"strain_name": canonical})
}

// RemoveFavorite handles DELETE /favorites.
func (s *Server) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	req, ok := favoriteRequest(w, r)
	if !ok {
		return
	}

	if err := s.favorites.Remove(r.Context(), req.UserID, req.StrainName); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites handles GET /favorites/{userID}.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	favs, err := s.favorites.List(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favs})
}

// ListStrains handles GET /strains.
func (s *Server) ListStrains(w http.ResponseWriter, r *http.Request) {
	names, err := s.strains.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"strains": names})
}

// PopularStrains handles GET /strains/popular.
func (s *Server) PopularStrains(w http.ResponseWriter, r *http.Request) {
	popular, err := s.strains.Popular(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"popular": popular})
}

// StrainDetails handles GET /strains/{name}.
func (s *Server) StrainDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	strain, err := s.strains.Details(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        strain.Name,
		"type":        strain.Type,
		"rating":      strain.Rating,
		"effects":     strain.Effects,
		"terpenes":    strain.Terpenes,
		"may_relieve": strain.MayRelieve,
	})
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question   string `json:"question"`
		StrainName string `json:"strain_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "question is required")
		return
	}

	answer, err := s.chat.Ask(r.Context(), req.Question, req.StrainName)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "userID must be a positive integer")
		return 0, false
	}
	return id, true
}

type favoriteBody struct {
	UserID     int64  `json:"user_id"`
	StrainName string `json:"strain_name"`
}

func favoriteRequest(w http.ResponseWriter, r *http.Request) (favoriteBody, bool) {
	var req favoriteBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return favoriteBody{}, false
	}
	if req.UserID <= 0 || req.StrainName == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "user_id and strain_name are required")
		return favoriteBody{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProfileNotFound,
		domain.ErrStrainNotFound,
		domain.ErrNoCandidates,
		domain.ErrNotFavorite,
		domain.ErrInvalidInput,
		domain.ErrEmailTaken,
		domain.ErrAlreadyFavorite,
		domain.ErrInvalidCredentials,
		domain.ErrSurveyIncomplete,
		domain.ErrCatalogUnavailable,
		domain.ErrEmbeddingsUnavailable,
		domain.ErrChatUnavailable,
		domain.ErrChatProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
