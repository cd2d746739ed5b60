/**
 * @description
 * PostgreSQL implementation of the `Repository` interface. Contains all SQL for
 * the users, countries, and transactions tables.
 *
 * @notes
 * - Email uniqueness is enforced by the database. A unique-violation on insert
 *   is mapped to ErrEmailTaken so registration has no read-then-write race.
 * - The admin partial updates build their SET clause from the fields present in
 *   the request; omitted fields are never touched.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - internal/domain: Domain models.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCountryNotFound     = errors.New("country not found")
	ErrEmptyUpdate         = errors.New("no update data provided")
)

const uniqueViolationCode = "23505"

const accountColumns = `id, email, password_hash, full_name, phone, country_code, currency,
	role, user_status, user_tier, balance, crypto_balance,
	bank_account_details, crypto_address, paypal_address, created_at`

// PostgresRepository is the concrete Repository backed by a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAccount(row pgx.Row, a *domain.Account) error {
	return row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.CountryCode, &a.Currency,
		&a.Role, &a.UserStatus, &a.UserTier, &a.Balance, &a.CryptoBalance,
		&a.BankAccountDetails, &a.CryptoAddress, &a.PaypalAddress, &a.CreatedAt,
	)
}

// CreateAccount inserts a new account row. The database's unique index on email
// is the sole duplicate check.
func (r *PostgresRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, country_code, currency,
			role, user_status, user_tier, balance, crypto_balance,
			bank_account_details, crypto_address, paypal_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.FullName, account.Phone,
		account.CountryCode, account.Currency, account.Role, account.UserStatus, account.UserTier,
		account.Balance, account.CryptoBalance,
		account.BankAccountDetails, account.CryptoAddress, account.PaypalAddress,
	).Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// FindAccountByEmail retrieves an account by exact email match.
func (r *PostgresRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = $1`
	if err := scanAccount(r.db.QueryRow(ctx, query, email), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindAccountByID retrieves an account by its id.
func (r *PostgresRepository) FindAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var a domain.Account
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	if err := scanAccount(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAccounts returns every account, newest first.
func (r *PostgresRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccountStatus overwrites the status field of one account.
func (r *PostgresRepository) UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Account, error) {
	var a domain.Account
	query := `UPDATE users SET user_status = $2 WHERE id = $1 RETURNING ` + accountColumns
	if err := scanAccount(r.db.QueryRow(ctx, query, id, status), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAccountTier overwrites the tier field of one account.
func (r *PostgresRepository) UpdateAccountTier(ctx context.Context, id uuid.UUID, tier string) (*domain.Account, error) {
	var a domain.Account
	query := `UPDATE users SET user_tier = $2 WHERE id = $1 RETURNING ` + accountColumns
	if err := scanAccount(r.db.QueryRow(ctx, query, id, tier), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAccountBalances writes only the balance columns present in the update.
func (r *PostgresRepository) UpdateAccountBalances(ctx context.Context, id uuid.UUID, update domain.BalanceUpdate) (*domain.Account, error) {
	set := []string{}
	args := []interface{}{id}
	if update.Balance != nil {
		args = append(args, *update.Balance)
		set = append(set, fmt.Sprintf("balance = $%d", len(args)))
	}
	if update.CryptoBalance != nil {
		args = append(args, *update.CryptoBalance)
		set = append(set, fmt.Sprintf("crypto_balance = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}

	var a domain.Account
	query := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = $1 RETURNING ` + accountColumns
	if err := scanAccount(r.db.QueryRow(ctx, query, args...), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAccountPaymentDetails writes only the destination columns present in
// the update.
func (r *PostgresRepository) UpdateAccountPaymentDetails(ctx context.Context, id uuid.UUID, update domain.PaymentDetailsUpdate) (*domain.Account, error) {
	set := []string{}
	args := []interface{}{id}
	if update.BankAccountDetails != nil {
		args = append(args, *update.BankAccountDetails)
		set = append(set, fmt.Sprintf("bank_account_details = $%d", len(args)))
	}
	if update.CryptoAddress != nil {
		args = append(args, *update.CryptoAddress)
		set = append(set, fmt.Sprintf("crypto_address = $%d", len(args)))
	}
	if update.PaypalAddress != nil {
		args = append(args, *update.PaypalAddress)
		set = append(set, fmt.Sprintf("paypal_address = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}

	var a domain.Account
	query := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = $1 RETURNING ` + accountColumns
	if err := scanAccount(r.db.QueryRow(ctx, query, args...), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListCountries returns the country reference table ordered by display name.
func (r *PostgresRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	query := `
		SELECT country_code, country_name, phone_code, currency_code, currency_symbol
		FROM countries
		ORDER BY country_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := []domain.Country{}
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.CountryCode, &c.CountryName, &c.PhoneCode, &c.CurrencyCode, &c.CurrencySymbol); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// FindCurrencyByCountryCode resolves a registration country into its currency.
func (r *PostgresRepository) FindCurrencyByCountryCode(ctx context.Context, code string) (string, error) {
	var currency string
	err := r.db.QueryRow(ctx, `SELECT currency_code FROM countries WHERE country_code = $1`, code).Scan(&currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrCountryNotFound
		}
		return "", err
	}
	return currency, nil
}

// CreateTransaction inserts a new transfer record.
func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, transaction_type, amount, currency,
			payment_method, recipient_email, description, status, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		tx.ID, tx.UserID, tx.TransactionType, tx.Amount, tx.Currency,
		tx.PaymentMethod, tx.RecipientEmail, tx.Description, tx.Status, tx.AdminNotes,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves one transaction.
func (r *PostgresRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `
		SELECT id, user_id, transaction_type, amount, currency, payment_method,
			recipient_email, description, status, admin_notes, created_at
		FROM transactions WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Amount, &tx.Currency, &tx.PaymentMethod,
		&tx.RecipientEmail, &tx.Description, &tx.Status, &tx.AdminNotes, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindTransactionsByUserID returns the newest transactions of one account,
// capped at limit.
func (r *PostgresRepository) FindTransactionsByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, transaction_type, amount, currency, payment_method,
			recipient_email, description, status, admin_notes, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Amount, &tx.Currency, &tx.PaymentMethod,
			&tx.RecipientEmail, &tx.Description, &tx.Status, &tx.AdminNotes, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// ListAllTransactions returns the newest transactions across all accounts,
// joined with the originating account's email and full name.
func (r *PostgresRepository) ListAllTransactions(ctx context.Context, limit int) ([]domain.AdminTransaction, error) {
	query := `
		SELECT t.id, t.user_id, t.transaction_type, t.amount, t.currency, t.payment_method,
			t.recipient_email, t.description, t.status, t.admin_notes, t.created_at,
			u.email, u.full_name
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.AdminTransaction{}
	for rows.Next() {
		var tx domain.AdminTransaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Amount, &tx.Currency, &tx.PaymentMethod,
			&tx.RecipientEmail, &tx.Description, &tx.Status, &tx.AdminNotes, &tx.CreatedAt,
			&tx.UserEmail, &tx.UserFullName,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// UpdateTransactionStatus overwrites the status and admin notes of one
// transaction. Transition legality is checked by the service layer.
func (r *PostgresRepository) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status, adminNotes string) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `
		UPDATE transactions SET status = $2, admin_notes = $3
		WHERE id = $1
		RETURNING id, user_id, transaction_type, amount, currency, payment_method,
			recipient_email, description, status, admin_notes, created_at
	`
	err := r.db.QueryRow(ctx, query, id, status, adminNotes).Scan(
		&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Amount, &tx.Currency, &tx.PaymentMethod,
		&tx.RecipientEmail, &tx.Description, &tx.Status, &tx.AdminNotes, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// CountPendingTransactions reports how many transfers are waiting for review.
func (r *PostgresRepository) CountPendingTransactions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM transactions WHERE status = $1`, domain.TxPending).Scan(&count)
	return count, err
}

// Ping probes database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
