package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/entries"
	"github.com/wellpulse/wellpulse/internal/observability"
	reporthttp "github.com/wellpulse/wellpulse/internal/reports/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Config         *Config
	AuthHandler    *auth.Handler
	AuthResolver   *auth.Resolver
	Gate           *auth.Gate
	EntriesHandler *entries.Handler
	ReportsHandler *reporthttp.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with wellpulse defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/entries", func(r chi.Router) {
			r.Use(params.AuthResolver.RequireUser)
			params.EntriesHandler.MountRoutes(r)
		})
		if params.ReportsHandler != nil {
			r.Route("/reports", func(r chi.Router) {
				r.Use(params.AuthResolver.RequireUser)
				params.ReportsHandler.MountRoutes(r)
			})
		}
	})

	// Page routes exist so the access gate has something to guard; the
	// journal UI itself is a separate client.
	r.Group(func(r chi.Router) {
		r.Use(params.Gate.Middleware)
		r.Get("/", placeholderPage("wellpulse"))
		r.Get("/login", placeholderPage("Log in"))
		r.Get("/signup", placeholderPage("Sign up"))
		r.Get("/dashboard", placeholderPage("Dashboard"))
		r.Get("/entries", placeholderPage("Entries"))
		r.Get("/entries/*", placeholderPage("Entries"))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func placeholderPage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<!doctype html><title>" + title + "</title>"))
	}
}
