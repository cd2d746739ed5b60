/**
 * @description
 * Transaction lifecycle logic: creating transfer requests and driving them
 * through admin-reviewed status changes. Transfers are records of intent only;
 * no balance is debited and no sufficiency check runs. Disposition is entirely
 * an admin decision.
 */

package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/store"
)

const (
	userTransactionLimit  = 50
	adminTransactionLimit = 100
)

// CreateTransfer records a new transfer request with status pending. Amount is
// parsed as a decimal and stored unchanged; negative and zero amounts are
// accepted, matching the platform's long-standing behavior.
func (s *Service) CreateTransfer(ctx context.Context, req domain.SendMoneyRequest) (*domain.Transaction, error) {
	if req.UserID == "" || req.Amount == "" || req.PaymentMethod == "" || req.RecipientEmail == "" {
		return nil, ErrMissingFields
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, store.ErrAccountNotFound
	}

	amount, err := strconv.ParseFloat(req.Amount.String(), 64)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Payment to %s", req.RecipientEmail)
	}

	tx := &domain.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionType: domain.TransferType,
		Amount:          amount,
		Currency:        currency,
		PaymentMethod:   req.PaymentMethod,
		RecipientEmail:  req.RecipientEmail,
		Description:     description,
		Status:          domain.TxPending,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	log.Printf("level=info component=app msg=\"transfer created\" transaction_id=%s user_id=%s amount=%v", tx.ID, tx.UserID, tx.Amount)
	return tx, nil
}

// ListTransactionsForAccount returns up to 50 of the account's most recent
// transfers, newest first.
func (s *Service) ListTransactionsForAccount(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, store.ErrAccountNotFound
	}
	return s.repo.FindTransactionsByUserID(ctx, id, userTransactionLimit)
}

// ListAllTransactions returns up to 100 of the most recent transfers across
// all accounts, joined with the originating account's email and full name.
func (s *Service) ListAllTransactions(ctx context.Context) ([]domain.AdminTransaction, error) {
	return s.repo.ListAllTransactions(ctx, adminTransactionLimit)
}

// SetTransactionStatus moves a transaction to a new status under the review
// state machine. Rejected and completed transactions cannot be moved
// backwards; a same-status write is allowed so admins can amend their notes.
func (s *Service) SetTransactionStatus(ctx context.Context, id uuid.UUID, status, adminNotes string) (*domain.Transaction, error) {
	if !domain.ValidTransactionStatus(status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateTransactionStatus(ctx, id, status, adminNotes)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventTxStatusChanged, domain.TransactionStatusChangedEvent{
		TransactionID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     current.Status,
		NewStatus:     updated.Status,
		AdminNotes:    updated.AdminNotes,
		ChangedAt:     time.Now(),
	})

	log.Printf("level=info component=app msg=\"transaction status updated\" transaction_id=%s old=%s new=%s", id, current.Status, status)
	return updated, nil
}
