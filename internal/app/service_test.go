package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/store"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
)

// repoStub is an in-memory Repository for service tests. Unused methods panic
// via the embedded nil interface.
type repoStub struct {
	store.Repository

	accountsByEmail map[string]*domain.Account
	currencies      map[string]string
	countries       []domain.Country
	countriesErr    error

	created   []*domain.Account
	createErr error
}

func newRepoStub() *repoStub {
	return &repoStub{
		accountsByEmail: map[string]*domain.Account{},
		currencies:      map[string]string{},
	}
}

func (s *repoStub) CreateAccount(ctx context.Context, account *domain.Account) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.accountsByEmail[account.Email]; exists {
		return store.ErrEmailTaken
	}
	s.accountsByEmail[account.Email] = account
	s.created = append(s.created, account)
	return nil
}

func (s *repoStub) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, ok := s.accountsByEmail[email]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

func (s *repoStub) FindAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	for _, account := range s.accountsByEmail {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

func (s *repoStub) FindCurrencyByCountryCode(ctx context.Context, code string) (string, error) {
	currency, ok := s.currencies[code]
	if !ok {
		return "", store.ErrCountryNotFound
	}
	return currency, nil
}

func (s *repoStub) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countries, s.countriesErr
}

// publisherStub records published events.
type publisherStub struct {
	routingKeys []string
	bodies      []interface{}
}

func (p *publisherStub) Publish(ctx context.Context, routingKey string, body interface{}) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *publisherStub) Close() {}

func newTestService(repo store.Repository) (*Service, *publisherStub) {
	producer := &publisherStub{}
	return NewService(repo, token.NewIssuer("test-secret"), producer, nil), producer
}

func validRegistration() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:       "bob@foo.com",
		Password:    "hunter22",
		FullName:    "Bob Foo",
		Phone:       "+1555000111",
		CountryCode: "US",
	}
}

func TestRegister(t *testing.T) {
	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		for _, req := range []domain.RegisterRequest{
			{Password: "x", FullName: "x", CountryCode: "US"},
			{Email: "a@b.c", FullName: "x", CountryCode: "US"},
			{Email: "a@b.c", Password: "x", CountryCode: "US"},
			{Email: "a@b.c", Password: "x", FullName: "x"},
		} {
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		}
	})

	t.Run("creates account with platform defaults", func(t *testing.T) {
		repo := newRepoStub()
		repo.currencies["KE"] = "KES"
		svc, producer := newTestService(repo)

		req := validRegistration()
		req.CountryCode = "KE"
		result, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}

		account := result.Account
		if account.UserStatus != domain.StatusActive {
			t.Errorf("expected active status, got %q", account.UserStatus)
		}
		if account.UserTier != domain.TierOne {
			t.Errorf("expected tier1, got %q", account.UserTier)
		}
		if account.Balance != 0 || account.CryptoBalance != 0 {
			t.Errorf("expected zero balances, got %v / %v", account.Balance, account.CryptoBalance)
		}
		if account.Currency != "KES" {
			t.Errorf("expected currency KES, got %q", account.Currency)
		}
		if account.BankAccountDetails != domain.NotAssigned ||
			account.CryptoAddress != domain.NotAssigned ||
			account.PaypalAddress != domain.NotAssigned {
			t.Error("expected sentinel payment destinations")
		}
		if account.Role != domain.RoleUser {
			t.Errorf("expected user role, got %q", account.Role)
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
			t.Error("stored hash does not match the password")
		}
		if result.Token == "" {
			t.Error("expected a credential token")
		}
		if len(producer.routingKeys) != 1 || producer.routingKeys[0] != domain.EventUserRegistered {
			t.Errorf("expected one user.registered event, got %v", producer.routingKeys)
		}
	})

	t.Run("falls back to USD on country miss", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		result, err := svc.Register(context.Background(), validRegistration())
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if result.Account.Currency != domain.DefaultCurrency {
			t.Fatalf("expected USD fallback, got %q", result.Account.Currency)
		}
	})

	t.Run("resolves admin role at registration", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		req := validRegistration()
		req.Email = "xadminx@foo.com"
		result, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if result.Account.Role != domain.RoleAdmin {
			t.Fatalf("expected admin role, got %q", result.Account.Role)
		}
	})

	t.Run("second registration with same email fails, first persists", func(t *testing.T) {
		repo := newRepoStub()
		svc, _ := newTestService(repo)

		first, err := svc.Register(context.Background(), validRegistration())
		if err != nil {
			t.Fatalf("first register failed: %v", err)
		}
		if _, err := svc.Register(context.Background(), validRegistration()); !errors.Is(err, store.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
		if repo.accountsByEmail["bob@foo.com"].ID != first.Account.ID {
			t.Fatal("expected the first account to persist")
		}
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T, svc *Service, mutate func(*domain.Account)) {
		t.Helper()
		result, err := svc.Register(context.Background(), validRegistration())
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if mutate != nil {
			mutate(result.Account)
		}
	}

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		if _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.c"}); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		register(t, svc, nil)

		_, errUnknown := svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@foo.com", Password: "hunter22"})
		_, errWrongPw := svc.Login(context.Background(), domain.LoginRequest{Email: "bob@foo.com", Password: "wrong"})

		if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrongPw, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrongPw)
		}
		if errUnknown.Error() != errWrongPw.Error() {
			t.Fatalf("failure causes must be indistinguishable: %q vs %q", errUnknown, errWrongPw)
		}
	})

	t.Run("refuses non-active account with its status", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		register(t, svc, func(a *domain.Account) { a.UserStatus = domain.StatusSuspended })

		_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "bob@foo.com", Password: "hunter22"})
		var inactive *AccountInactiveError
		if !errors.As(err, &inactive) {
			t.Fatalf("expected AccountInactiveError, got %v", err)
		}
		if inactive.Status != domain.StatusSuspended {
			t.Fatalf("expected suspended status in error, got %q", inactive.Status)
		}
	})

	t.Run("issues a fresh token on success", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		register(t, svc, nil)

		result, err := svc.Login(context.Background(), domain.LoginRequest{Email: "bob@foo.com", Password: "hunter22"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if result.Token == "" {
			t.Fatal("expected a credential token")
		}
	})
}

func TestCountriesFallback(t *testing.T) {
	t.Run("store error serves embedded list", func(t *testing.T) {
		repo := newRepoStub()
		repo.countriesErr = errors.New("connection refused")
		svc, _ := newTestService(repo)

		countries := svc.Countries(context.Background())
		if len(countries) != 5 {
			t.Fatalf("expected 5 fallback countries, got %d", len(countries))
		}
		byCode := map[string]domain.Country{}
		for _, c := range countries {
			byCode[c.CountryCode] = c
		}
		ke := byCode["KE"]
		if ke.CountryName != "Kenya" || ke.PhoneCode != "+254" || ke.CurrencyCode != "KES" {
			t.Fatalf("unexpected Kenya entry: %+v", ke)
		}
		ng := byCode["NG"]
		if ng.CountryName != "Nigeria" || ng.PhoneCode != "+234" || ng.CurrencyCode != "NGN" {
			t.Fatalf("unexpected Nigeria entry: %+v", ng)
		}
	})

	t.Run("empty store serves embedded list", func(t *testing.T) {
		svc, _ := newTestService(newRepoStub())
		if got := len(svc.Countries(context.Background())); got != 5 {
			t.Fatalf("expected 5 fallback countries, got %d", got)
		}
	})

	t.Run("populated store wins", func(t *testing.T) {
		repo := newRepoStub()
		repo.countries = []domain.Country{{CountryCode: "DE", CountryName: "Germany", PhoneCode: "+49", CurrencyCode: "EUR", CurrencySymbol: "€"}}
		svc, _ := newTestService(repo)
		countries := svc.Countries(context.Background())
		if len(countries) != 1 || countries[0].CountryCode != "DE" {
			t.Fatalf("expected stored list, got %+v", countries)
		}
	})
}
