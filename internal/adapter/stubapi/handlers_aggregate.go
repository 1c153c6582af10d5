package stubapi

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handlePointsThisWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	week, err := s.db.PointsThisWeek(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func daysParam(r *http.Request, prefix string) (int, bool) {
	days, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, prefix))
	if err != nil || days < 0 {
		return 0, false
	}
	return days, true
}

func (s *Server) handleBloodPressureByDays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	days, ok := daysParam(r, "/bp-by-days/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	agg, err := s.db.BloodPressureByDays(r.Context(), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleWeightByDays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	days, ok := daysParam(r, "/weight-by-days/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	agg, err := s.db.WeightByDays(r.Context(), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleMyPreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	prefs, err := s.db.MyPreferences(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	acct, err := s.db.Account(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
