package entries

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

// Handler wires the journal entry endpoints. All routes run behind the
// auth resolver, so the current user is always present in context.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers entry routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	list, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, "list entries", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req CreateEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Create(r.Context(), req, user.ID)
	if err != nil {
		h.respondError(w, "create entry", err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id, ok := entryID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Entry not found")
		return
	}

	entry, err := h.service.Get(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Entry not found")
			return
		}
		h.respondError(w, "get entry", err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id, ok := entryID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Entry not found or unauthorized")
		return
	}

	// Strict decoding: the allowed field set is fixed, anything else in
	// the payload is a client bug worth rejecting loudly.
	var req UpdateEntryRequest
	if err := httpx.DecodeJSONStrict(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Update(r.Context(), id, user.ID, req)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Entry not found or unauthorized")
			return
		}
		h.respondError(w, "update entry", err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id, ok := entryID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Entry not found or unauthorized")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id, user.ID)
	if err != nil {
		h.respondError(w, "delete entry", err)
		return
	}
	if !deleted {
		httpx.Error(w, http.StatusNotFound, "Entry not found or unauthorized")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// entryID parses the id route parameter. An unparseable id behaves like
// a miss: ids are opaque to clients, so a garbage id and an id belonging
// to someone else must be indistinguishable.
func entryID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrValidation) && !errors.Is(err, httpx.ErrNotFound) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
