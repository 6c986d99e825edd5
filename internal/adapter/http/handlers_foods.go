package adapthttp

import (
	"net/http"

	"bodydry/internal/app"

	"github.com/gorilla/mux"
)

func (s *Server) handleFoodSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	items, err := s.foods.Search(r.Context(), q, intQuery(r, "limit", 0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "items": items})
}

func (s *Server) handleFoodGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := s.foods.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleFoodByBarcode(w http.ResponseWriter, r *http.Request) {
	f, err := s.foods.ByBarcode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleFoodCreate(w http.ResponseWriter, r *http.Request) {
	var in app.FoodInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := s.foods.Create(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}
