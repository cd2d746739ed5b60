/**
 * @description
 * This file defines the `Repository` interface: the contract for all data
 * access the platform backend needs. Keeping the interface separate from the
 * PostgreSQL implementation lets the application layer be tested against
 * in-memory stubs.
 *
 * @dependencies
 * - context: Standard Go library.
 * - github.com/google/uuid: Identifier handling.
 * - internal/domain: Domain models.
 */

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Account methods
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Account, error)
	UpdateAccountBalances(ctx context.Context, id uuid.UUID, update domain.BalanceUpdate) (*domain.Account, error)
	UpdateAccountPaymentDetails(ctx context.Context, id uuid.UUID, update domain.PaymentDetailsUpdate) (*domain.Account, error)
	UpdateAccountTier(ctx context.Context, id uuid.UUID, tier string) (*domain.Account, error)

	// Country reference methods
	ListCountries(ctx context.Context) ([]domain.Country, error)
	FindCurrencyByCountryCode(ctx context.Context, code string) (string, error)

	// Transaction methods
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	FindTransactionsByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
	ListAllTransactions(ctx context.Context, limit int) ([]domain.AdminTransaction, error)
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status, adminNotes string) (*domain.Transaction, error)
	CountPendingTransactions(ctx context.Context) (int, error)

	// Ping probes database connectivity for the health endpoint.
	Ping(ctx context.Context) error
}
