package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/reports"
	_ "github.com/wellpulse/wellpulse/testing"
)

type stubService struct {
	summary reports.Summary
	err     error
}

func (s *stubService) Summary(ctx context.Context, userID uuid.UUID) (reports.Summary, error) {
	return s.summary, s.err
}

func (s *stubService) Weekly(ctx context.Context, userID uuid.UUID) ([]reports.WeekAverages, error) {
	return []reports.WeekAverages{{Week: "2026-08-02", Mood: 7}}, s.err
}

func (s *stubService) MoodTrend(ctx context.Context, userID uuid.UUID) ([]reports.TrendPoint, error) {
	return []reports.TrendPoint{{Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Mood: 7}}, s.err
}

func (s *stubService) SleepMood(ctx context.Context, userID uuid.UUID) (reports.Correlation, error) {
	return reports.Correlation{Points: []reports.ScatterPoint{}}, s.err
}

func newReportsRouter(t *testing.T, service ReportService) chi.Router {
	t.Helper()
	handler := NewHandler(slog.Default(), service)
	user := &auth.User{ID: uuid.New(), Email: "user@example.com"}
	r := chi.NewRouter()
	r.Route("/api/reports", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.ContextWithUser(req.Context(), user)))
			})
		})
		handler.MountRoutes(r)
	})
	return r
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestReportSummaryEndpoint(t *testing.T) {
	service := &stubService{summary: reports.Summary{TotalEntries: 4}}
	router := newReportsRouter(t, service)

	res := get(t, router, "/api/reports/summary")
	require.Equal(t, http.StatusOK, res.Code)

	var summary reports.Summary
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &summary))
	require.Equal(t, 4, summary.TotalEntries)
}

func TestReportOverviewAggregates(t *testing.T) {
	service := &stubService{summary: reports.Summary{TotalEntries: 2}}
	router := newReportsRouter(t, service)

	res := get(t, router, "/api/reports")
	require.Equal(t, http.StatusOK, res.Code)

	var resp struct {
		Summary   reports.Summary        `json:"summary"`
		Weekly    []reports.WeekAverages `json:"weekly"`
		MoodTrend []reports.TrendPoint   `json:"moodTrend"`
		SleepMood reports.Correlation    `json:"sleepMood"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Summary.TotalEntries)
	require.Len(t, resp.Weekly, 1)
	require.Len(t, resp.MoodTrend, 1)
	require.NotNil(t, resp.SleepMood.Points)
}

func TestReportErrorsStayGeneric(t *testing.T) {
	service := &stubService{err: errors.New("redis exploded")}
	router := newReportsRouter(t, service)

	for _, path := range []string{"/api/reports", "/api/reports/summary", "/api/reports/weekly"} {
		res := get(t, router, path)
		require.Equal(t, http.StatusInternalServerError, res.Code, path)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Equal(t, "Internal server error", body.Error)
	}
}
