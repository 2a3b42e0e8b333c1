package app_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellpulse/wellpulse/internal/app"
	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/entries"
	"github.com/wellpulse/wellpulse/internal/observability"
	"github.com/wellpulse/wellpulse/internal/platform/httpx"
	"github.com/wellpulse/wellpulse/internal/reports"
	reporthttp "github.com/wellpulse/wellpulse/internal/reports/http"
	_ "github.com/wellpulse/wellpulse/testing"
)

type memUserRepo struct {
	users map[string]*auth.User
}

func (m *memUserRepo) CreateUser(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, httpx.ErrDuplicate
	}
	user := &auth.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[email] = user
	return user, nil
}

func (m *memUserRepo) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, httpx.ErrNotFound
}

type memEntryRepo struct {
	byID map[uuid.UUID]*entries.Entry
}

func (m *memEntryRepo) Create(ctx context.Context, fields entries.EntryFields, userID uuid.UUID) (*entries.Entry, error) {
	now := time.Now()
	entry := &entries.Entry{
		ID: uuid.New(), UserID: userID, Date: fields.Date,
		Sleep: fields.Sleep, Stress: fields.Stress, Symptoms: fields.Symptoms,
		Mood: fields.Mood, Engagement: fields.Engagement,
		Drugs: fields.Drugs, Notes: fields.Notes,
		CreatedAt: now, UpdatedAt: now,
	}
	m.byID[entry.ID] = entry
	return entry, nil
}

func (m *memEntryRepo) List(ctx context.Context, userID uuid.UUID) ([]entries.Entry, error) {
	result := []entries.Entry{}
	for _, e := range m.byID {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *memEntryRepo) Get(ctx context.Context, id, userID uuid.UUID) (*entries.Entry, error) {
	e, ok := m.byID[id]
	if !ok || e.UserID != userID {
		return nil, httpx.ErrNotFound
	}
	return e, nil
}

func (m *memEntryRepo) Update(ctx context.Context, id, userID uuid.UUID, patch entries.EntryPatch) (*entries.Entry, error) {
	e, ok := m.byID[id]
	if !ok || e.UserID != userID {
		return nil, httpx.ErrNotFound
	}
	if patch.Mood != nil {
		e.Mood = *patch.Mood
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (m *memEntryRepo) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	e, ok := m.byID[id]
	if !ok || e.UserID != userID {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &app.Config{AppEnv: "test", AppRequestTimeout: 30 * time.Second}

	tokens := auth.NewTokenManager("router-test-secret", time.Hour)
	userRepo := &memUserRepo{users: make(map[string]*auth.User)}
	authService := auth.NewService(userRepo, tokens, bcrypt.MinCost)

	entryRepo := &memEntryRepo{byID: make(map[uuid.UUID]*entries.Entry)}
	cache := reports.NewCache(nil, time.Minute)
	entriesService := entries.NewService(entryRepo, cache)

	return app.NewRouter(app.RouterParams{
		Config:         cfg,
		AuthHandler:    auth.NewHandler(slog.Default(), authService),
		AuthResolver:   auth.NewResolver(authService),
		Gate:           auth.NewGate(tokens),
		EntriesHandler: entries.NewHandler(slog.Default(), entriesService),
		ReportsHandler: reporthttp.NewHandler(slog.Default(), reports.NewService(entryRepo, cache)),
		Metrics:        observability.NewMetrics(),
	})
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}

func TestRouterAPIRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/entries", "/api/reports", "/api/reports/summary"} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, res.Code, path)
	}
}

func TestRouterGatePages(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/login", res.Header().Get("Location"))

	res = httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, res.Code)
}

func TestRouterEndToEndFlow(t *testing.T) {
	router := newTestRouter(t)

	// Sign up.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"flow@example.com","password":"password1"}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var creds auth.Credentials
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &creds))

	// Create an entry with the issued token.
	req = httptest.NewRequest(http.MethodPost, "/api/entries",
		strings.NewReader(`{"date":"2026-08-15","sleep":7,"stress":4,"symptoms":2,"mood":8,"engagement":6}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	// Reports see the entry.
	req = httptest.NewRequest(http.MethodGet, "/api/reports/summary", nil)
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var summary reports.Summary
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.TotalEntries)

	// Gate lets the authenticated browser through.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: creds.Token})
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	// Metrics endpoint is mounted.
	res = httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "wellpulse_http_requests_total")
}
