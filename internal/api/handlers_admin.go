/**
 * @description
 * HTTP handlers for the admin surface: listing accounts, the four partial
 * account mutations (status, balances, payment details, tier), the global
 * transaction review queue, and transaction disposition.
 */

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

// pathID parses the :id URL parameter of an admin route.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// AdminListUsers returns every account, newest first, hashes stripped.
func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"users": accounts})
}

// AdminUpdateUserStatus overwrites one account's status.
func (h *Handlers) AdminUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.SetAccountStatus(r.Context(), id, body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("User status updated to %s", account.UserStatus),
		"user":    account,
	})
}

// AdminUpdateUserBalance writes only the balance fields present in the body.
func (h *Handlers) AdminUpdateUserBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var update domain.BalanceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.UpdateBalances(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": "User balances updated",
		"user":    account,
	})
}

// AdminUpdateUserPaymentDetails writes only the destination fields present in
// the body.
func (h *Handlers) AdminUpdateUserPaymentDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var update domain.PaymentDetailsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.UpdatePaymentDetails(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": "Payment details updated successfully",
		"user":    account,
	})
}

// AdminUpdateUserTier overwrites one account's tier.
func (h *Handlers) AdminUpdateUserTier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var body struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.SetAccountTier(r.Context(), id, body.Tier)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("User tier updated to %s", account.UserTier),
		"user":    account,
	})
}

// AdminTransactions returns up to 100 of the most recent transfers across all
// accounts, joined with originator email and full name.
func (h *Handlers) AdminTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListAllTransactions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"transactions": transactions})
}

// AdminUpdateTransactionStatus moves a transaction through the review state
// machine and records admin notes.
func (h *Handlers) AdminUpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	var update domain.TransactionStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.service.SetTransactionStatus(r.Context(), id, update.Status, update.AdminNotes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"message":     fmt.Sprintf("Transaction %s", tx.Status),
		"transaction": tx,
	})
}
