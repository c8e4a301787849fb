// Package sessionservice manages business logic layer of sign-in.
package sessionservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
)

// AccountRepo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)
}

// SessionRepo stores who is currently signed in.
type SessionRepo interface {
	Get(ctx context.Context) (domain.Session, error)
	Set(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

// Service facilitates session service layer logic.
type Service struct {
	accounts AccountRepo
	sessions SessionRepo
}

// New returns session service struct to manage sign-in bussines logic.
func New(ar AccountRepo, sr SessionRepo) *Service {
	return &Service{
		accounts: ar,
		sessions: sr,
	}
}

// LoginUser checks the credentials against a stored account and records
// the session. Credentials are compared verbatim; lookup and comparison
// failures are indistinguishable to the caller.
func (s *Service) LoginUser(ctx context.Context, email, password string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		l.Info().Err(err).Str("email", email).Send()
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	if account.Password != password {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	err = s.sessions.Set(ctx, domain.Session{AccountID: account.ID, IsAdmin: false})
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// LoginAdmin checks the credentials against a stored admin and records
// the session.
func (s *Service) LoginAdmin(ctx context.Context, email, password string) (domain.Admin, error) {
	l := zerolog.Ctx(ctx)

	admin, err := s.accounts.GetAdminByEmail(ctx, email)
	if err != nil {
		l.Info().Err(err).Str("email", email).Send()
		return domain.Admin{}, domain.ErrInvalidCredentials
	}

	if admin.Password != password {
		return domain.Admin{}, domain.ErrInvalidCredentials
	}

	err = s.sessions.Set(ctx, domain.Session{AccountID: admin.ID, IsAdmin: true})
	if err != nil {
		return domain.Admin{}, err
	}

	return admin, nil
}

// Current returns who is signed in.
func (s *Service) Current(ctx context.Context) (domain.Session, error) {
	return s.sessions.Get(ctx)
}

// Logout clears the recorded session.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
