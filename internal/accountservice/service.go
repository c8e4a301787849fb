// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/internal/domain"
)

// AccountRepo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Upsert(ctx context.Context, account domain.Account) error
	List(ctx context.Context) ([]domain.Account, error)
}

// SettingsRepo provides read access to the application settings.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.AppSettings, error)
}

// Service facilitates account service layer logic.
type Service struct {
	accounts AccountRepo
	settings SettingsRepo
}

// New returns account service struct to manage account bussines logic.
func New(ar AccountRepo, sr SettingsRepo) *Service {
	return &Service{
		accounts: ar,
		settings: sr,
	}
}

// CreateParams is the input data for opening an account.
type CreateParams struct {
	Name     string
	Email    string
	Password string
	Currency string
	Phone    string
}

// Create opens a new account with a zero balance and unverified KYC.
// When no currency is given the application default is used. The email
// must not belong to an existing account.
func (s *Service) Create(ctx context.Context, arg CreateParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	currency := arg.Currency
	if currency == "" {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return domain.Account{}, err
		}

		currency = settings.DefaultCurrency
	}

	id := uuid.NewString()

	account := domain.Account{
		ID:            id,
		Name:          arg.Name,
		Email:         arg.Email,
		Password:      arg.Password,
		Balance:       decimal.Zero,
		Currency:      currency,
		IsVerifiedKYC: false,
		Phone:         arg.Phone,
		CreatedAt:     time.Now().UTC(),
		AccountNumber: accountNumber(id),
	}

	account, err := s.accounts.Create(ctx, account)
	if err != nil {
		l.Info().Err(err).Str("email", arg.Email).Send()
		return domain.Account{}, err
	}

	return account, nil
}

func accountNumber(id string) string {
	n := strings.ReplaceAll(id, "-", "")
	if len(n) > 12 {
		n = n[:12]
	}

	return "BRX-" + strings.ToUpper(n)
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.accounts.Get(ctx, id)
}

// GetByEmail returns the account with the given email, matched exactly.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return s.accounts.GetByEmail(ctx, email)
}

// GetProfile returns the account stripped of credentials.
func (s *Service) GetProfile(ctx context.Context, id string) (domain.AccountProfile, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return domain.AccountProfile{}, err
	}

	return domain.AccountProfile{
		ID:            account.ID,
		Name:          account.Name,
		Email:         account.Email,
		Balance:       account.Balance,
		Currency:      account.Currency,
		IsVerifiedKYC: account.IsVerifiedKYC,
		Phone:         account.Phone,
		CreatedAt:     account.CreatedAt,
		AccountNumber: account.AccountNumber,
		HasPIN:        account.TransferPIN != "",
	}, nil
}

// SetTransferPIN stores the 4-digit transfer PIN on the account,
// replacing any previous one.
func (s *Service) SetTransferPIN(ctx context.Context, id, pin string) error {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return err
	}

	account.TransferPIN = pin

	if err = s.accounts.Upsert(ctx, account); err != nil {
		l.Info().Err(err).Str("account_id", id).Send()
		return err
	}

	return nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}
