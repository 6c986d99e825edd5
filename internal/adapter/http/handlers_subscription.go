package adapthttp

import (
	"errors"
	"net/http"

	"bodydry/internal/domain"
)

func (s *Server) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.subs.Status(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSubscriptionActivate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64       `json:"userId"`
		Plan   domain.Plan `json:"plan"`
		Months int         `json:"months"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.UserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("userId is required"))
		return
	}
	if body.Plan == "" {
		body.Plan = domain.PlanPremium
	}
	status, err := s.subs.Activate(r.Context(), body.UserID, body.Plan, body.Months)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSubscriptionCancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID int64 `json:"userId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.UserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("userId is required"))
		return
	}
	if err := s.subs.Cancel(r.Context(), body.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
