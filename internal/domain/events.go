/**
 * @description
 * Event payloads published to the message broker. Consumers (notification
 * tooling, audit pipelines) receive these as JSON.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for published events.
const (
	EventUserRegistered   = "user.registered"
	EventTxStatusChanged  = "transaction.status_changed"
	EventPendingTxBacklog = "transaction.pending_backlog"
)

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	CountryCode string    `json:"country_code"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionStatusChangedEvent is published after an admin moves a
// transaction to a new status.
type TransactionStatusChangedEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	UserID        uuid.UUID `json:"user_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	AdminNotes    string    `json:"admin_notes,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

// PendingBacklogEvent is published by the periodic digest job when transfers
// have been waiting for admin review.
type PendingBacklogEvent struct {
	PendingCount int       `json:"pending_count"`
	ObservedAt   time.Time `json:"observed_at"`
}
