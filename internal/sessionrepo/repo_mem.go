// Package sessionrepo manages repository layer of the current session.
package sessionrepo

import (
	"context"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates session repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns session RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Get returns the current session.
func (r *RepoMem) Get(ctx context.Context) (domain.Session, error) {
	var session domain.Session

	err := r.db.View(func(s *statestore.State) error {
		session = s.Session
		return nil
	})

	return session, err
}

// Set records who is signed in.
func (r *RepoMem) Set(ctx context.Context, session domain.Session) error {
	return r.db.Update(ctx, func(s *statestore.State) error {
		s.Session = session
		return nil
	})
}

// Clear removes the current session.
func (r *RepoMem) Clear(ctx context.Context) error {
	return r.db.Update(ctx, func(s *statestore.State) error {
		s.Session = domain.Session{}
		return nil
	})
}
