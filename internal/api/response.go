/**
 * @description
 * JSON response helpers. Every response the platform sends is an envelope with
 * a `success` flag plus either payload fields or a `message` string, so the
 * helpers here are the single place the envelope is shaped.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/app"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/store"
)

// envelope is the response body shape shared by all endpoints.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeSuccess writes a success envelope with the given payload fields.
func writeSuccess(w http.ResponseWriter, status int, payload envelope) {
	body := envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError writes a failure envelope with a caller-facing message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// writeServiceError maps a service-layer failure onto the HTTP error taxonomy.
// Unknown errors become a generic 500; the underlying cause is logged, never
// forwarded.
func writeServiceError(w http.ResponseWriter, err error) {
	var inactive *app.AccountInactiveError
	switch {
	case errors.Is(err, app.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, app.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Invalid amount")
	case errors.Is(err, app.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, app.ErrInvalidTier):
		writeError(w, http.StatusBadRequest, "Invalid tier. Must be tier1, tier2, or tier3")
	case errors.Is(err, app.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "Invalid status transition")
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, store.ErrEmptyUpdate):
		writeError(w, http.StatusBadRequest, "No update data provided")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.As(err, &inactive):
		writeError(w, http.StatusForbidden, inactive.Error())
	case errors.Is(err, app.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
	case errors.Is(err, store.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	default:
		log.Printf("level=error component=api msg=\"unhandled service error\" err=%v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
