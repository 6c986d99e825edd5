// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"bodydry/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/oauth2"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Auth         *app.AuthService
	Profile      *app.ProfileService
	Foods        *app.FoodService
	Diary        *app.DiaryService
	Water        *app.WaterService
	Weight       *app.WeightService
	Charts       *app.ChartsService
	Subscription *app.SubscriptionService
}

// OIDCConfig holds the SSO provider settings. Enabled is false when SSO is
// not configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc *app.AuthService
	profile *app.ProfileService
	foods   *app.FoodService
	diary   *app.DiaryService
	water   *app.WaterService
	weight  *app.WeightService
	charts  *app.ChartsService
	subs    *app.SubscriptionService

	oidcConfig   OIDCConfig
	adminToken   string
	corsOrigins  []string
	loginLimiter *RateLimiter
	metrics      *metrics
	disableAuth  bool
}

// New creates a Server wired to the given application services.
func New(svc Services) *Server {
	return &Server{
		authSvc:      svc.Auth,
		profile:      svc.Profile,
		foods:        svc.Foods,
		diary:        svc.Diary,
		water:        svc.Water,
		weight:       svc.Weight,
		charts:       svc.Charts,
		subs:         svc.Subscription,
		loginLimiter: NewRateLimiter(defaultLoginPerMinute),
		metrics:      newMetrics(),
	}
}

// WithoutAuth disables session checks. Every request runs as user 1; only
// used by tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithOIDC enables SSO login through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithAdminToken sets the token required by the subscription admin endpoints.
// An empty token disables them.
func (s *Server) WithAdminToken(token string) *Server {
	s.adminToken = token
	return s
}

// WithCORSOrigins allows cross-origin requests from the given origins.
func (s *Server) WithCORSOrigins(origins []string) *Server {
	s.corsOrigins = origins
	return s
}

// WithLoginRateLimit sets how many login and register attempts a client IP
// may make per minute.
func (s *Server) WithLoginRateLimit(perMinute int) *Server {
	if perMinute > 0 {
		s.loginLimiter = NewRateLimiter(perMinute)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metrics.instrument)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)

	api.Handle("/auth/register", s.loginLimiter.Handler(http.HandlerFunc(s.handleRegister))).Methods(http.MethodPost)
	api.Handle("/auth/login", s.loginLimiter.Handler(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	api.Handle("/me", s.authed(s.handleMe)).Methods(http.MethodGet)

	api.Handle("/profile", s.authed(s.handleProfileGet)).Methods(http.MethodGet)
	api.Handle("/profile", s.authed(s.handleProfilePut)).Methods(http.MethodPut)
	api.Handle("/goals", s.authed(s.handleGoals)).Methods(http.MethodGet)

	api.Handle("/foods", s.authed(s.handleFoodSearch)).Methods(http.MethodGet)
	api.Handle("/foods", s.authed(s.requirePremium(s.handleFoodCreate))).Methods(http.MethodPost)
	api.Handle("/foods/barcode/{code}", s.authed(s.handleFoodByBarcode)).Methods(http.MethodGet)
	api.Handle("/foods/{id:[0-9]+}", s.authed(s.handleFoodGet)).Methods(http.MethodGet)

	api.Handle("/diary", s.authed(s.handleDiaryDay)).Methods(http.MethodGet)
	api.Handle("/diary/entries", s.authed(s.handleDiaryAdd)).Methods(http.MethodPost)
	api.Handle("/diary/entries/{id:[0-9]+}", s.authed(s.handleDiaryUpdate)).Methods(http.MethodPatch)
	api.Handle("/diary/entries/{id:[0-9]+}", s.authed(s.handleDiaryDelete)).Methods(http.MethodDelete)

	api.Handle("/weight/today", s.authed(s.handleWeightToday)).Methods(http.MethodGet, http.MethodPut)
	api.Handle("/weight/recent", s.authed(s.handleWeightRecent)).Methods(http.MethodGet)
	api.Handle("/weight/progress", s.authed(s.handleWeightProgress)).Methods(http.MethodGet)
	api.Handle("/weight/undo-last", s.authed(s.handleWeightUndoLast)).Methods(http.MethodPost)

	api.Handle("/water/today", s.authed(s.handleWaterToday)).Methods(http.MethodGet)
	api.Handle("/water/event", s.authed(s.handleWaterEvent)).Methods(http.MethodPost)
	api.Handle("/water/recent", s.authed(s.handleWaterRecent)).Methods(http.MethodGet)
	api.Handle("/water/undo-last", s.authed(s.handleWaterUndoLast)).Methods(http.MethodPost)

	api.Handle("/charts/daily", s.authed(s.handleChartsDaily)).Methods(http.MethodGet)

	api.Handle("/subscription", s.authed(s.handleSubscriptionStatus)).Methods(http.MethodGet)
	api.Handle("/subscription/activate", s.requireAdmin(s.handleSubscriptionActivate)).Methods(http.MethodPost)
	api.Handle("/subscription/cancel", s.requireAdmin(s.handleSubscriptionCancel)).Methods(http.MethodPost)

	var h http.Handler = withNoCache(r)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	if len(s.corsOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: true,
		}).Handler(h)
	}
	return h
}
