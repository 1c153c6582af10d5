package stubapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthpoints/internal/adapter/memory"
	"healthpoints/internal/adapter/stubapi"
	"healthpoints/internal/domain"
)

var now = time.Date(2016, 3, 9, 14, 30, 0, 0, time.UTC)

func newServer(t *testing.T, opts ...memory.Option) (*memory.DB, http.Handler) {
	t.Helper()
	db := memory.New(append([]memory.Option{memory.WithClock(func() time.Time { return now })}, opts...)...)
	return db, stubapi.New(db).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateGetUpdateDelete(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodPost, "/api/points", domain.Point{Date: domain.DateOf(now), Exercise: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created domain.Point
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if id, ok := created.ID.Existing(); !ok || id != 1 {
		t.Fatalf("expected id 1, got %v", created.ID)
	}
	if loc := w.Header().Get("Location"); loc != "/api/points/1" {
		t.Errorf("unexpected Location %q", loc)
	}

	created.Notes = "updated"
	w = do(t, h, http.MethodPut, "/api/points/1", created)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/points/1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"notes":"updated"`) {
		t.Errorf("get: %d %s", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodDelete, "/api/points/1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", w.Code)
	}
	w = do(t, h, http.MethodGet, "/api/points/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodPost, "/api/preferences", domain.Preference{WeeklyGoal: 40, WeightUnits: domain.UnitsKg})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	w = do(t, h, http.MethodPost, "/api/weights", map[string]any{"bogus": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown field: expected 400, got %d", w.Code)
	}
}

func TestListHeaders(t *testing.T) {
	db, h := newServer(t)
	for i := 0; i < 3; i++ {
		db.Weights.Create(context.Background(), domain.Weight{Timestamp: domain.DateOf(now).AddDays(-i), Weight: 80})
	}

	w := do(t, h, http.MethodGet, "/api/weights?page=0&size=2&sort=timestamp,desc&sort=id", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Total-Count"); got != "3" {
		t.Errorf("X-Total-Count = %q", got)
	}
	link := w.Header().Get("Link")
	if !strings.Contains(link, `page=1`) || !strings.Contains(link, `rel="next"`) {
		t.Errorf("Link missing next page: %s", link)
	}
	var items []domain.Weight
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Timestamp.String() != "2016-03-09" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestSearch(t *testing.T) {
	db, h := newServer(t)
	db.Points.Create(context.Background(), domain.Point{Date: domain.DateOf(now), Notes: "walk"})

	w := do(t, h, http.MethodGet, "/api/_search/points?query=walk", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "walk") {
		t.Errorf("search: %d %s", w.Code, w.Body.String())
	}

	_, h = newServer(t, memory.WithStoreOptions(memory.WithoutSearchIndex()))
	w = do(t, h, http.MethodGet, "/api/_search/points?query=walk", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("search without index: expected 404, got %d", w.Code)
	}
}

func TestAggregates(t *testing.T) {
	db, h := newServer(t)
	ctx := context.Background()
	db.Points.Create(ctx, domain.Point{Date: domain.DateOf(now), Exercise: 1, Meals: 1})
	db.BloodPressures.Create(ctx, domain.BloodPressure{Timestamp: domain.TimestampOf(now.Add(-time.Hour)), Systolic: 120, Diastolic: 80})

	w := do(t, h, http.MethodGet, "/api/points-this-week", nil)
	if !strings.Contains(w.Body.String(), `"week":"2016-03-07"`) || !strings.Contains(w.Body.String(), `"points":2`) {
		t.Errorf("points-this-week: %s", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/bp-by-days/30", nil)
	if !strings.Contains(w.Body.String(), `"period":"Last 30 Days"`) || !strings.Contains(w.Body.String(), `"systolic":120`) {
		t.Errorf("bp-by-days: %s", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/weight-by-days/x", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("weight-by-days/x: expected 404, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/my-preferences", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("my-preferences: expected 404, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/account", nil)
	if !strings.Contains(w.Body.String(), "ROLE_USER") {
		t.Errorf("account: %s", w.Body.String())
	}
}

func TestTokenRequired(t *testing.T) {
	db := memory.New()
	h := stubapi.New(db, stubapi.WithToken("t0k")).Handler()

	w := do(t, h, http.MethodGet, "/api/account", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
