/**
 * @description
 * HTTP handlers for the public and authenticated-user endpoints: health,
 * country reference, registration, login, and profile retrieval. Handlers
 * parse the request, call the application service, and shape the response
 * envelope; they hold no business logic of their own.
 *
 * @dependencies
 * - encoding/json, net/http, time: Standard Go libraries.
 * - internal/app, internal/domain: Service logic and models.
 */

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/app"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

// Handlers holds the application service the HTTP layer delegates to.
type Handlers struct {
	service *app.Service
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *app.Service) *Handlers {
	return &Handlers{service: service}
}

// Health reports process liveness and database connectivity.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	database := "disconnected"
	if h.service.DatabaseHealthy(r.Context()) {
		database = "connected"
	}
	writeJSON(w, http.StatusOK, envelope{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
		"message":   "Financial Platform Backend is running",
	})
}

// Countries serves the country reference table, falling back to the embedded
// list when the store cannot be read.
func (h *Handlers) Countries(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, envelope{"countries": h.service.Countries(r.Context())})
}

// Register creates a new account and returns its first credential token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": "Registration successful!",
		"token":   result.Token,
		"user":    result.Account,
	})
}

// Login verifies credentials and returns a fresh token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Email and password required")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.Account,
	})
}

// Profile returns the account bound to the verified token.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication token required")
		return
	}

	account, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"user": account})
}
