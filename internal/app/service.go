/**
 * @description
 * Core business logic for identity and account administration. The `Service`
 * struct orchestrates registration, login, profile retrieval, the country
 * reference lookup, and the admin-only account mutations, coordinating the
 * database repository, the token issuer, and the event producer.
 *
 * @dependencies
 * - golang.org/x/crypto/bcrypt: One-way password hashing.
 * - github.com/google/uuid: Identifier generation.
 * - internal/domain, internal/store, internal/token, pkg/rabbitmq.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/store"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
	"github.com/greatwilliams57-droid/westmark-bank-backend/pkg/rabbitmq"
)

// bcryptCost matches the cost factor the platform has always used.
const bcryptCost = 10

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTier        = errors.New("invalid tier")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AccountInactiveError is returned when a non-active account attempts to log
// in. It carries the current status so the caller sees "Account is suspended"
// rather than a generic refusal.
type AccountInactiveError struct {
	Status string
}

func (e *AccountInactiveError) Error() string {
	return fmt.Sprintf("Account is %s", e.Status)
}

// Service provides the core business logic of the platform backend.
type Service struct {
	repo     store.Repository
	issuer   *token.Issuer
	producer rabbitmq.Publisher
	limiter  *LoginRateLimiter
}

// NewService creates a new service instance. producer may be a NopPublisher
// and limiter may be nil; both degrade gracefully.
func NewService(repo store.Repository, issuer *token.Issuer, producer rabbitmq.Publisher, limiter *LoginRateLimiter) *Service {
	return &Service{repo: repo, issuer: issuer, producer: producer, limiter: limiter}
}

// Register creates a new account and issues its first credential token.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.CountryCode == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	currency, err := s.repo.FindCurrencyByCountryCode(ctx, req.CountryCode)
	if err != nil {
		currency = domain.DefaultCurrency
	}

	account := &domain.Account{
		ID:                 uuid.New(),
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Phone:              req.Phone,
		CountryCode:        req.CountryCode,
		Currency:           currency,
		Role:               domain.RoleForEmail(req.Email),
		UserStatus:         domain.StatusActive,
		UserTier:           domain.TierOne,
		BankAccountDetails: domain.NotAssigned,
		CryptoAddress:      domain.NotAssigned,
		PaypalAddress:      domain.NotAssigned,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	signed, err := s.issuer.Issue(account.ID.String(), account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.publish(ctx, domain.EventUserRegistered, domain.UserRegisteredEvent{
		UserID:      account.ID,
		Email:       account.Email,
		CountryCode: account.CountryCode,
		Currency:    account.Currency,
		CreatedAt:   account.CreatedAt,
	})

	log.Printf("level=info component=app msg=\"account registered\" user_id=%s", account.ID)
	return &domain.AuthResult{Token: signed, Account: account}, nil
}

// Login verifies a credential pair and issues a fresh token. A missing account
// and a wrong password both surface as ErrInvalidCredentials; callers must not
// be able to tell the two apart.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, req.Email)
		if err != nil {
			log.Printf("level=warn component=app msg=\"login limiter unavailable\" err=%v", err)
		} else if !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if account.UserStatus != domain.StatusActive {
		return nil, &AccountInactiveError{Status: account.UserStatus}
	}

	signed, err := s.issuer.Issue(account.ID.String(), account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Printf("level=info component=app msg=\"login succeeded\" user_id=%s", account.ID)
	return &domain.AuthResult{Token: signed, Account: account}, nil
}

// Profile retrieves the account bound to a verified token.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.Account, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, store.ErrAccountNotFound
	}
	return s.repo.FindAccountByID(ctx, id)
}

// Countries returns the reference table, or the embedded fallback when the
// store is unreachable or empty.
func (s *Service) Countries(ctx context.Context) []domain.Country {
	countries, err := s.repo.ListCountries(ctx)
	if err != nil || len(countries) == 0 {
		if err != nil {
			log.Printf("level=warn component=app msg=\"countries lookup failed, serving fallback\" err=%v", err)
		}
		return domain.FallbackCountries
	}
	return countries
}

// ListAccounts returns all accounts, newest first.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// SetAccountStatus validates and overwrites one account's status.
func (s *Service) SetAccountStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Account, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateAccountStatus(ctx, id, status)
}

// SetAccountTier validates and overwrites one account's tier.
func (s *Service) SetAccountTier(ctx context.Context, id uuid.UUID, tier string) (*domain.Account, error) {
	if !domain.ValidTier(tier) {
		return nil, ErrInvalidTier
	}
	return s.repo.UpdateAccountTier(ctx, id, tier)
}

// UpdateBalances writes only the balance fields present in the update.
func (s *Service) UpdateBalances(ctx context.Context, id uuid.UUID, update domain.BalanceUpdate) (*domain.Account, error) {
	if update.Empty() {
		return nil, store.ErrEmptyUpdate
	}
	return s.repo.UpdateAccountBalances(ctx, id, update)
}

// UpdatePaymentDetails writes only the destination fields present in the
// update.
func (s *Service) UpdatePaymentDetails(ctx context.Context, id uuid.UUID, update domain.PaymentDetailsUpdate) (*domain.Account, error) {
	if update.Empty() {
		return nil, store.ErrEmptyUpdate
	}
	return s.repo.UpdateAccountPaymentDetails(ctx, id, update)
}

// DatabaseHealthy reports whether the store answers a ping.
func (s *Service) DatabaseHealthy(ctx context.Context) bool {
	return s.repo.Ping(ctx) == nil
}

// publish sends an event best-effort; a broker failure never fails the
// operation that triggered it.
func (s *Service) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.producer == nil {
		return
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.producer.Publish(publishCtx, routingKey, body); err != nil {
		log.Printf("level=warn component=app msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}
