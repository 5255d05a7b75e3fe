package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lolocuentaps32/fanscopa/internal/middleware"
	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// StorageService defines the storage facade operations required by the
// RegistrationHandler. Results are best-effort: they may be served from the
// degraded local copy without the handler ever knowing.
type StorageService interface {
	// ListAll returns the full registration list.
	ListAll(ctx context.Context) ([]models.Registration, error)
	// Find returns the registration matching email or DNI.
	Find(ctx context.Context, email, dni string) (*models.Registration, error)
	// Update applies a partial update and returns the post-mutation list.
	Update(ctx context.Context, dni string, patch models.RegistrationPatch) ([]models.Registration, error)
	// Delete removes the matching record and returns the post-mutation list.
	Delete(ctx context.Context, dni string) ([]models.Registration, error)
	// Create inserts a new registration and returns the stored record.
	Create(ctx context.Context, reg models.Registration) (*models.Registration, error)
}

// RegistrationHandler handles HTTP requests for registration records.
type RegistrationHandler struct {
	Storage StorageService
}

// List handles GET /api/registrations (admin only).
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.IsAdmin() {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}
	regs, err := h.Storage.ListAll(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, regs)
}

// Me handles GET /api/registrations/me, returning the session's own record.
func (h *RegistrationHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	reg, err := h.Storage.Find(r.Context(), sess.Email, sess.DNI)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "no registration found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, reg)
}

// Create handles POST /api/registrations. It is the public request form:
// no session is required to submit a registration.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if reg.DNI == "" || reg.Email == "" {
		http.Error(w, "dni and email are required", http.StatusBadRequest)
		return
	}
	if !reg.AceptacionTerm {
		http.Error(w, "terms must be accepted", http.StatusBadRequest)
		return
	}
	if reg.Status == "" {
		reg.Status = models.StatusPending
	}
	if !reg.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	// Server-assigned fields are never taken from the client.
	reg.OrdenRegistro = 0
	reg.FechaRegistro = ""
	reg.HoraRegistro = ""

	created, err := h.Storage.Create(r.Context(), reg)
	if err != nil {
		http.Error(w, "could not create registration", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// Update handles PATCH /api/registrations/{dni}. Admins may update any
// record; users only their own.
func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	dni := chi.URLParam(r, "dni")
	if !sess.IsAdmin() && sess.DNI != dni {
		http.Error(w, "cannot modify another applicant's registration", http.StatusForbidden)
		return
	}

	var patch models.RegistrationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	regs, err := h.Storage.Update(r.Context(), dni, patch)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, regs)
}

// StatusRequest represents the JSON payload for a status change.
type StatusRequest struct {
	Status models.Status `json:"STATUS"`
}

// SetStatus handles PUT /api/registrations/{dni}/status (admin only).
func (h *RegistrationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.IsAdmin() {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	dni := chi.URLParam(r, "dni")
	regs, err := h.Storage.Update(r.Context(), dni, models.RegistrationPatch{Status: &req.Status})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, regs)
}

// Delete handles DELETE /api/registrations/{dni}. Admins may delete any
// record; users only their own.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	dni := chi.URLParam(r, "dni")
	if !sess.IsAdmin() && sess.DNI != dni {
		http.Error(w, "cannot delete another applicant's registration", http.StatusForbidden)
		return
	}

	regs, err := h.Storage.Delete(r.Context(), dni)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, regs)
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
