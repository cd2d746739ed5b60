/**
 * @description
 * HTTP handlers for the transaction endpoints: listing an account's transfers,
 * creating a transfer request, and the static payment-method catalogue.
 */

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/app"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

// UserTransactions lists up to 50 of an account's most recent transfers.
func (h *Handlers) UserTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID required")
		return
	}

	transactions, err := h.service.ListTransactionsForAccount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"transactions": transactions})
}

// SendMoney records a new transfer request awaiting admin approval.
func (h *Handlers) SendMoney(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.service.CreateTransfer(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message":     "Transaction created successfully. Awaiting admin approval.",
		"transaction": tx,
	})
}

// PaymentMethods serves the static payment method catalogue.
func (h *Handlers) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, envelope{"paymentMethods": domain.PaymentMethods})
}
