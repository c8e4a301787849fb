// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates account repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns account RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Account, error) {
	var a domain.Account

	err := r.db.View(func(s *statestore.State) error {
		i := s.AccountIndex(id)
		if i < 0 {
			return domain.ErrAccountNotFound
		}

		a = s.Accounts[i]

		return nil
	})

	return a, err
}

// GetByEmail returns the account with the given email. The lookup is
// case-sensitive and exact; it is used for recipient verification
// before a transfer.
func (r *RepoMem) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var a domain.Account

	err := r.db.View(func(s *statestore.State) error {
		i := s.AccountIndexByEmail(email)
		if i < 0 {
			return domain.ErrAccountNotFound
		}

		a = s.Accounts[i]

		return nil
	})

	return a, err
}

// Create appends the account and then returns it.
func (r *RepoMem) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	err := r.db.Update(ctx, func(s *statestore.State) error {
		if s.AccountIndexByEmail(account.Email) >= 0 {
			return domain.ErrDuplicateEmail
		}

		s.Accounts = append(s.Accounts, account)

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("email", account.Email).Send()
		return domain.Account{}, err
	}

	return account, nil
}

// Upsert replaces the full account record, inserting it when absent.
// Callers must have validated invariants before calling; the store is a
// dumb keyed collection and does not re-check the balance.
func (r *RepoMem) Upsert(ctx context.Context, account domain.Account) error {
	return r.db.Update(ctx, func(s *statestore.State) error {
		i := s.AccountIndex(account.ID)
		if i < 0 {
			s.Accounts = append(s.Accounts, account)
			return nil
		}

		s.Accounts[i] = account

		return nil
	})
}

// List returns all accounts in creation order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	items := []domain.Account{}

	err := r.db.View(func(s *statestore.State) error {
		items = append(items, s.Accounts...)
		return nil
	})

	return items, err
}

// GetAdminByEmail returns the administrator with the given email.
func (r *RepoMem) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	var a domain.Admin

	err := r.db.View(func(s *statestore.State) error {
		for i := range s.Admins {
			if s.Admins[i].Email == email {
				a = s.Admins[i]
				return nil
			}
		}

		return domain.ErrAccountNotFound
	})

	return a, err
}
