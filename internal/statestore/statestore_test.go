package statestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/pkg/currencypkg"
)

func testAccount() domain.Account {
	return domain.Account{
		ID:            "acc-1",
		Name:          "Alice Wonderland",
		Email:         "alice@example.com",
		Balance:       decimal.RequireFromString("100.50"),
		Currency:      currencypkg.USD,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
		AccountNumber: "BRIX-ACC1",
	}
}

func TestOpenWithoutSnapshotUsesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	seed := State{Accounts: []domain.Account{testAccount()}}

	db, err := Open(path, seed)
	require.NoError(t, err)

	err = db.View(func(s *State) error {
		require.Len(t, s.Accounts, 1)
		require.Equal(t, "alice@example.com", s.Accounts[0].Email)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdatePersistsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	db, err := Open(path, State{})
	require.NoError(t, err)

	err = db.Update(context.Background(), func(s *State) error {
		s.Accounts = append(s.Accounts, testAccount())
		s.Session = domain.Session{AccountID: "acc-1"}
		return nil
	})
	require.NoError(t, err)

	reloaded, err := Open(path, State{})
	require.NoError(t, err)

	err = reloaded.View(func(s *State) error {
		require.Len(t, s.Accounts, 1)
		require.True(t, s.Accounts[0].Balance.Equal(decimal.RequireFromString("100.50")))
		require.Equal(t, "acc-1", s.Session.AccountID)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateErrorDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	db, err := Open(path, State{})
	require.NoError(t, err)

	failed := errors.New("validation failed")

	err = db.Update(context.Background(), func(s *State) error {
		return failed
	})
	require.ErrorIs(t, err, failed)

	_, err = Open(path, State{Accounts: []domain.Account{testAccount()}})
	require.NoError(t, err)
}

func TestIndexHelpers(t *testing.T) {
	s := State{
		Accounts: []domain.Account{testAccount()},
		Withdrawals: []domain.WithdrawalRequest{
			{ID: "wd-1", AccountID: "acc-1"},
		},
		KYCRequests: []domain.KYCRequest{
			{ID: "kyc-1", AccountID: "acc-1"},
		},
		Notifications: []domain.AppNotification{
			{ID: "notif-1"},
		},
	}

	require.Equal(t, 0, s.AccountIndex("acc-1"))
	require.Equal(t, -1, s.AccountIndex("missing"))
	require.Equal(t, 0, s.AccountIndexByEmail("alice@example.com"))
	require.Equal(t, -1, s.AccountIndexByEmail("ALICE@EXAMPLE.COM"), "email match must be case-sensitive")
	require.Equal(t, 0, s.WithdrawalIndex("wd-1"))
	require.Equal(t, 0, s.KYCIndex("kyc-1"))
	require.Equal(t, 0, s.KYCIndexByAccount("acc-1"))
	require.Equal(t, 0, s.NotificationIndex("notif-1"))
}
