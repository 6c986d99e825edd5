package adapthttp

import (
	"net/http"
	"time"

	"bodydry/internal/app"
)

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	today := app.LocalDay(time.Now())
	progress, err := s.water.Progress(r.Context(), userFromContext(r).ID, today)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"today":       today,
		"totalMl":     progress.TotalML,
		"goalMl":      progress.GoalML,
		"remainingMl": progress.RemainingML,
		"percent":     progress.Percent,
	})
}

func (s *Server) handleWaterEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeltaML int `json:"deltaMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.water.RecordEvent(r.Context(), userFromContext(r).ID, body.DeltaML)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleWaterRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 20)
	items, err := s.water.ListRecent(r.Context(), userFromContext(r).ID, min(limit, 200))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWaterUndoLast(w http.ResponseWriter, r *http.Request) {
	undone, id, err := s.water.UndoLast(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "id": id})
}
