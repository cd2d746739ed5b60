/**
 * @description
 * This file defines the core user-facing domain models for the platform backend:
 * the Account entity, its status/tier/role enumerations, and the request/response
 * DTOs for registration and login.
 *
 * @notes
 * - PasswordHash is never serialized; the json:"-" tag keeps it inside the
 *   component boundary.
 * - Balances are float64 to match the wire format the platform has always used
 *   (decimal JSON numbers, no smallest-unit encoding).
 */

package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account statuses. Only active accounts may log in.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusFrozen    = "frozen"
)

// Account tiers, informational and admin-assignable.
const (
	TierOne   = "tier1"
	TierTwo   = "tier2"
	TierThree = "tier3"
)

// Roles carried in token claims and persisted on the account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminEmail is the designated platform administrator address.
const AdminEmail = "admin@financialplatform.com"

// NotAssigned is the sentinel value for payment destinations an admin has not
// configured yet.
const NotAssigned = "Not assigned yet"

// Account represents a registered platform user and maps to the `users` table.
type Account struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FullName           string    `json:"full_name"`
	Phone              string    `json:"phone"`
	CountryCode        string    `json:"country_code"`
	Currency           string    `json:"currency"`
	Role               string    `json:"role"`
	UserStatus         string    `json:"user_status"`
	UserTier           string    `json:"user_tier"`
	Balance            float64   `json:"balance"`
	CryptoBalance      float64   `json:"crypto_balance"`
	BankAccountDetails string    `json:"bank_account_details"`
	CryptoAddress      string    `json:"crypto_address"`
	PaypalAddress      string    `json:"paypal_address"`
	CreatedAt          time.Time `json:"created_at"`
}

// RoleForEmail derives the role an email address is entitled to. An address is
// admin when it contains the substring "admin" anywhere or equals AdminEmail
// exactly. The substring match is intentionally loose and is resolved once, at
// registration time, into the persisted Role field.
func RoleForEmail(email string) string {
	if strings.Contains(email, "admin") || email == AdminEmail {
		return RoleAdmin
	}
	return RoleUser
}

// ValidStatus reports whether s is one of the account status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusSuspended, StatusFrozen:
		return true
	}
	return false
}

// ValidTier reports whether t is one of the account tier values.
func ValidTier(t string) bool {
	switch t {
	case TierOne, TierTwo, TierThree:
		return true
	}
	return false
}

// RegisterRequest is the DTO for the registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

// LoginRequest is the DTO for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult pairs a freshly issued credential token with the account it is
// bound to.
type AuthResult struct {
	Token   string   `json:"token"`
	Account *Account `json:"user"`
}

// BalanceUpdate carries the optional fields of the admin balance operation.
// Nil pointers leave the corresponding column untouched.
type BalanceUpdate struct {
	Balance       *float64 `json:"balance"`
	CryptoBalance *float64 `json:"crypto_balance"`
}

// UnmarshalJSON accepts each balance field as a JSON number or a numeric
// string, the two encodings clients have historically sent.
func (u *BalanceUpdate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Balance       *json.Number `json:"balance"`
		CryptoBalance *json.Number `json:"crypto_balance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Balance != nil {
		v, err := raw.Balance.Float64()
		if err != nil {
			return err
		}
		u.Balance = &v
	}
	if raw.CryptoBalance != nil {
		v, err := raw.CryptoBalance.Float64()
		if err != nil {
			return err
		}
		u.CryptoBalance = &v
	}
	return nil
}

// PaymentDetailsUpdate carries the optional fields of the admin payment-details
// operation. Nil pointers leave the corresponding column untouched.
type PaymentDetailsUpdate struct {
	BankAccountDetails *string `json:"bank_account_details"`
	CryptoAddress      *string `json:"crypto_address"`
	PaypalAddress      *string `json:"paypal_address"`
}

// Empty reports whether the update would write nothing.
func (u PaymentDetailsUpdate) Empty() bool {
	return u.BankAccountDetails == nil && u.CryptoAddress == nil && u.PaypalAddress == nil
}

// Empty reports whether the update would write nothing.
func (u BalanceUpdate) Empty() bool {
	return u.Balance == nil && u.CryptoBalance == nil
}
