// Package statestore holds the whole application state behind one lock
// and persists it as a JSON snapshot after every mutation.
//
// All ledger-affecting operations run inside Update, which serializes
// writers; readers share a consistent view through View. Update closures
// must validate before mutating so that a returned error implies no
// state change.
package statestore

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
)

// State is the complete persisted application state: seven keyed
// collections plus the current session, snapshotted as a unit.
type State struct {
	Accounts      []domain.Account           `json:"accounts"`
	Admins        []domain.Admin             `json:"admins"`
	Transactions  []domain.Transaction       `json:"transactions"`
	Withdrawals   []domain.WithdrawalRequest `json:"withdrawal_requests"`
	KYCRequests   []domain.KYCRequest        `json:"kyc_requests"`
	Notifications []domain.AppNotification   `json:"notifications"`
	Settings      domain.AppSettings         `json:"settings"`
	Session       domain.Session             `json:"session"`
}

// AccountIndex returns the position of the account with the given id or -1.
func (s *State) AccountIndex(id string) int {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return i
		}
	}

	return -1
}

// AccountIndexByEmail returns the position of the account with the given
// email or -1. The match is case-sensitive and exact.
func (s *State) AccountIndexByEmail(email string) int {
	for i := range s.Accounts {
		if s.Accounts[i].Email == email {
			return i
		}
	}

	return -1
}

// WithdrawalIndex returns the position of the withdrawal request with
// the given id or -1.
func (s *State) WithdrawalIndex(id string) int {
	for i := range s.Withdrawals {
		if s.Withdrawals[i].ID == id {
			return i
		}
	}

	return -1
}

// KYCIndexByAccount returns the position of the KYC request owned by the
// given account or -1.
func (s *State) KYCIndexByAccount(accountID string) int {
	for i := range s.KYCRequests {
		if s.KYCRequests[i].AccountID == accountID {
			return i
		}
	}

	return -1
}

// KYCIndex returns the position of the KYC request with the given id or -1.
func (s *State) KYCIndex(id string) int {
	for i := range s.KYCRequests {
		if s.KYCRequests[i].ID == id {
			return i
		}
	}

	return -1
}

// NotificationIndex returns the position of the notification with the
// given id or -1.
func (s *State) NotificationIndex(id string) int {
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			return i
		}
	}

	return -1
}

// DB guards the State with a single writer lock and snapshots it to
// disk after each successful mutation.
type DB struct {
	mu    sync.RWMutex
	path  string
	state State
}

// Open loads the snapshot at path, or starts from seed when no snapshot
// exists yet.
func Open(path string, seed State) (*DB, error) {
	db := &DB{path: path, state: seed}

	loaded, err := loadSnapshot(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return db, nil
		}

		return nil, err
	}

	db.state = loaded

	return db, nil
}

// View runs fn with shared read access to a consistent state.
func (d *DB) View(fn func(s *State) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return fn(&d.state)
}

// Update runs fn with exclusive write access. When fn succeeds the
// snapshot is rewritten; a snapshot write failure is logged but does not
// undo the in-memory mutation (the crash-loss window is accepted).
func (d *DB) Update(ctx context.Context, fn func(s *State) error) error {
	l := zerolog.Ctx(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := fn(&d.state); err != nil {
		return err
	}

	if err := saveSnapshot(d.path, &d.state); err != nil {
		l.Error().Err(err).Str("path", d.path).Msg("cannot write snapshot")
	}

	return nil
}
