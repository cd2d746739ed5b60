/**
 * @description
 * Idempotent schema bootstrap. Run once at startup; safe against tables that
 * already exist. The unique index on users.email is what makes registration
 * race-free.
 */

package store

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    country_code TEXT NOT NULL,
    currency TEXT NOT NULL DEFAULT 'USD',
    role TEXT NOT NULL DEFAULT 'user',
    user_status TEXT NOT NULL DEFAULT 'active',
    user_tier TEXT NOT NULL DEFAULT 'tier1',
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    crypto_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    bank_account_details TEXT NOT NULL DEFAULT 'Not assigned yet',
    crypto_address TEXT NOT NULL DEFAULT 'Not assigned yet',
    paypal_address TEXT NOT NULL DEFAULT 'Not assigned yet',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS countries (
    country_code TEXT PRIMARY KEY,
    country_name TEXT NOT NULL,
    phone_code TEXT NOT NULL,
    currency_code TEXT NOT NULL,
    currency_symbol TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id),
    transaction_type TEXT NOT NULL DEFAULT 'transfer',
    amount DOUBLE PRECISION NOT NULL,
    currency TEXT NOT NULL DEFAULT 'USD',
    payment_method TEXT NOT NULL,
    recipient_email TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending',
    admin_notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_created
    ON transactions (user_id, created_at DESC);
`

// EnsureSchema creates the required tables when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}
