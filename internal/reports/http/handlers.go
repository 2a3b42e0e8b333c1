// Package reporthttp exposes the trend report endpoints.
package reporthttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/platform/httpx"
	"github.com/wellpulse/wellpulse/internal/reports"
)

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	Summary(ctx context.Context, userID uuid.UUID) (reports.Summary, error)
	Weekly(ctx context.Context, userID uuid.UUID) ([]reports.WeekAverages, error)
	MoodTrend(ctx context.Context, userID uuid.UUID) ([]reports.TrendPoint, error)
	SleepMood(ctx context.Context, userID uuid.UUID) (reports.Correlation, error)
}

// Handler coordinates HTTP requests for trend reports.
type Handler struct {
	logger  *slog.Logger
	service ReportService
	group   singleflight.Group
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.overview)
	r.Get("/summary", h.summary)
	r.Get("/weekly", h.weekly)
	r.Get("/mood-trend", h.moodTrend)
	r.Get("/sleep-mood", h.sleepMood)
}

// overview aggregates all four reports. The reads are independent, so
// they run concurrently.
type overviewResponse struct {
	Summary   reports.Summary        `json:"summary"`
	Weekly    []reports.WeekAverages `json:"weekly"`
	MoodTrend []reports.TrendPoint   `json:"moodTrend"`
	SleepMood reports.Correlation    `json:"sleepMood"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var resp overviewResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		summary, err := h.service.Summary(ctx, user.ID)
		resp.Summary = summary
		return err
	})
	g.Go(func() error {
		weekly, err := h.service.Weekly(ctx, user.ID)
		resp.Weekly = weekly
		return err
	})
	g.Go(func() error {
		trend, err := h.service.MoodTrend(ctx, user.ID)
		resp.MoodTrend = trend
		return err
	})
	g.Go(func() error {
		corr, err := h.service.SleepMood(ctx, user.ID)
		resp.SleepMood = corr
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondError(w, "load report overview", err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "summary", func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
		return h.service.Summary(ctx, userID)
	})
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "weekly", func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
		return h.service.Weekly(ctx, userID)
	})
}

func (h *Handler) moodTrend(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "mood_trend", func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
		return h.service.MoodTrend(ctx, userID)
	})
}

func (h *Handler) sleepMood(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "sleep_mood", func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
		return h.service.SleepMood(ctx, userID)
	})
}

// respond runs one report, collapsing concurrent identical requests so
// a burst from one user computes the aggregation once.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, kind string, load func(context.Context, uuid.UUID) (interface{}, error)) {
	user := auth.UserFromContext(r.Context())

	result, err, _ := h.group.Do(kind+":"+user.ID.String(), func() (interface{}, error) {
		return load(r.Context(), user.ID)
	})
	if err != nil {
		h.respondError(w, "load report "+kind, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+" failed", slog.Any("error", err))
	httpx.RespondError(w, err)
}
