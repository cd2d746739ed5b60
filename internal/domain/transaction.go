/**
 * @description
 * This file defines the transaction domain model: the Transaction record, its
 * status state machine, the payment method catalogue, and the DTOs for the
 * send-money and admin review flows.
 *
 * @notes
 * - Transactions are created in StatusPending and only move through the
 *   transitions listed in statusTransitions. Rejected and completed are
 *   terminal; an admin cannot move a settled transaction backwards.
 * - Amounts are accepted as-is. The platform performs no balance debit and no
 *   sufficiency check; disposition is an admin decision.
 */

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transaction statuses.
const (
	TxPending   = "pending"
	TxApproved  = "approved"
	TxRejected  = "rejected"
	TxCompleted = "completed"
)

// TransferType is the only transaction type the exposed flow creates.
const TransferType = "transfer"

// statusTransitions is the admin review state machine. A status maps to the set
// of statuses it may move to. Same-status writes are always allowed so admins
// can amend notes without changing disposition.
var statusTransitions = map[string][]string{
	TxPending:   {TxApproved, TxRejected, TxCompleted},
	TxApproved:  {TxCompleted, TxRejected},
	TxRejected:  {},
	TxCompleted: {},
}

// ValidTransactionStatus reports whether s is a known transaction status.
func ValidTransactionStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a transaction currently in `from` may be moved
// to `to`.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transaction represents a requested money movement awaiting or having received
// admin disposition. It maps to the `transactions` table.
type Transaction struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentMethod   string    `json:"payment_method"`
	RecipientEmail  string    `json:"recipient_email"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	AdminNotes      string    `json:"admin_notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdminTransaction is a transaction joined with the originating account's email
// and full name, as shown in the admin review queue.
type AdminTransaction struct {
	Transaction
	UserEmail    string `json:"user_email"`
	UserFullName string `json:"user_full_name"`
}

// SendMoneyRequest is the DTO for the send-money endpoint. Amount decodes as a
// json.Number so the service can parse it as a floating decimal without bound
// checks.
type SendMoneyRequest struct {
	UserID         string      `json:"userId"`
	Amount         json.Number `json:"amount"`
	Currency       string      `json:"currency"`
	PaymentMethod  string      `json:"paymentMethod"`
	RecipientEmail string      `json:"recipientEmail"`
	Description    string      `json:"description"`
}

// TransactionStatusUpdate is the DTO for the admin status review endpoint.
type TransactionStatusUpdate struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// PaymentMethod is one entry of the static payment method catalogue.
type PaymentMethod struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// PaymentMethods is the catalogue returned by the payment-methods endpoint.
// Informational only: the send-money flow does not validate against it.
var PaymentMethods = []PaymentMethod{
	{Value: "paypal", Label: "PayPal", Icon: "fab fa-paypal"},
	{Value: "bank_transfer", Label: "Bank Transfer", Icon: "fas fa-university"},
	{Value: "crypto", Label: "Cryptocurrency", Icon: "fab fa-bitcoin"},
	{Value: "credit_card", Label: "Credit Card", Icon: "fas fa-credit-card"},
	{Value: "internal", Label: "Internal Transfer", Icon: "fas fa-exchange-alt"},
}
