package adapthttp

import (
	"net/http"
	"time"

	"bodydry/internal/app"
	"bodydry/internal/domain"
)

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	days := intQuery(r, "days", app.MaxFreeChartDays)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}

	if days > app.MaxFreeChartDays {
		if err := s.checkPremium(r); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	points, err := s.charts.GetDaily(r.Context(), user.ID, days, unit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":  len(points),
		"unit":  unit,
		"today": app.LocalDay(time.Now()),
		"items": points,
	})
}
