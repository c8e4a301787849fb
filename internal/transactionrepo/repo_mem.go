// Package transactionrepo manages repository layer of ledger records.
//
// The transaction log is written exclusively by ledgerrepo; this
// package only reads it.
package transactionrepo

import (
	"context"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates transaction repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns transaction RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// ListForAccount returns the account's transactions newest-first,
// including transfers where the account is the counterparty.
func (r *RepoMem) ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	items := []domain.Transaction{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Transactions) - 1; i >= 0; i-- {
			t := s.Transactions[i]
			if t.AccountID == accountID || t.ToAccountID == accountID {
				items = append(items, t)
			}
		}

		return nil
	})

	return items, err
}

// List returns all transactions newest-first.
func (r *RepoMem) List(ctx context.Context) ([]domain.Transaction, error) {
	items := []domain.Transaction{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Transactions) - 1; i >= 0; i-- {
			items = append(items, s.Transactions[i])
		}

		return nil
	})

	return items, err
}
