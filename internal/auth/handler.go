package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	if len(req.Password) < 6 {
		httpx.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	creds, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, "signup", err)
		return
	}
	httpx.JSON(w, http.StatusOK, creds)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	creds, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, "login", err)
		return
	}
	httpx.JSON(w, http.StatusOK, creds)
}

// decodeCredentials parses and shape-checks the request body. Both auth
// endpoints share the same required-field rule and error message.
func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Email and password are required")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Email and password are required")
		return req, false
	}
	return req, true
}

// respondServiceError logs internal failures and maps everything onto
// the API error envelope without leaking detail to the client.
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrDuplicate) && !errors.Is(err, httpx.ErrUnauthorized) &&
		!errors.Is(err, httpx.ErrValidation) && !errors.Is(err, httpx.ErrNotFound) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
