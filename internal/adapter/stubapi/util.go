package stubapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"healthpoints/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeDomainError maps a store error onto the status a real backend returns.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSearchIndexMissing):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNewEntity):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// sortQuery reads the first "sort=<field>,asc|desc" parameter. Secondary
// sort keys are ignored; the store always breaks ties by id.
func sortQuery(r *http.Request) (string, bool) {
	values := r.URL.Query()["sort"]
	if len(values) == 0 {
		return "id", true
	}
	field, dir, _ := strings.Cut(values[0], ",")
	if field == "" {
		field = "id"
	}
	return field, !strings.EqualFold(dir, "desc")
}

const apiPrefix = "/api"

// linkHeader renders pagination links the way the backend does:
// <url?page=N&size=S>; rel="next", ...
func linkHeader(r *http.Request, links domain.Links, size int) string {
	var parts []string
	for _, rel := range []string{"next", "prev", "last", "first"} {
		page, ok := links[rel]
		if !ok {
			continue
		}
		u := *r.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(size))
		u.RawQuery = q.Encode()
		parts = append(parts, fmt.Sprintf("<%s%s>; rel=%q", apiPrefix, u.RequestURI(), rel))
	}
	return strings.Join(parts, ",")
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
