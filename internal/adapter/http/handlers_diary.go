package adapthttp

import (
	"net/http"
	"time"

	"bodydry/internal/app"
)

func (s *Server) handleDiaryDay(w http.ResponseWriter, r *http.Request) {
	summary, err := s.diary.Day(r.Context(), userFromContext(r).ID, dayQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDiaryAdd(w http.ResponseWriter, r *http.Request) {
	var in app.AddEntryInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if in.Day == "" {
		in.Day = app.LocalDay(time.Now())
	}
	entry, err := s.diary.AddEntry(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDiaryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		Grams float64 `json:"grams"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.diary.UpdateEntryGrams(r.Context(), userFromContext(r).ID, id, body.Grams)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDiaryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.diary.DeleteEntry(r.Context(), userFromContext(r).ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}
