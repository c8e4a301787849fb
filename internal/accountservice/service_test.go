package accountservice

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/accountrepo"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/settingsrepo"
	"github.com/brixium/brixium-bank/internal/statestore"
)

func newFixture(t *testing.T) *Service {
	t.Helper()

	seed := statestore.State{
		Settings: domain.AppSettings{DefaultCurrency: "USD"},
	}

	db, err := statestore.Open(filepath.Join(t.TempDir(), "state.json"), seed)
	require.NoError(t, err)

	return New(accountrepo.NewRepoMem(db), settingsrepo.NewRepoMem(db))
}

func TestCreate(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	arg := CreateParams{
		Name:     "Alice Carter",
		Email:    "alice@example.com",
		Password: "hunter2",
		Phone:    "+15550100",
	}

	account, err := service.Create(ctx, arg)
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)
	require.Equal(t, arg.Name, account.Name)
	require.Equal(t, arg.Email, account.Email)
	require.True(t, account.Balance.IsZero())
	require.False(t, account.IsVerifiedKYC)
	require.NotZero(t, account.CreatedAt)

	// No currency given, the application default applies.
	require.Equal(t, "USD", account.Currency)

	require.True(t, strings.HasPrefix(account.AccountNumber, "BRX-"))
	require.Len(t, account.AccountNumber, len("BRX-")+12)
	require.Equal(t, strings.ToUpper(account.AccountNumber), account.AccountNumber)

	_, err = service.Create(ctx, arg)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	eur, err := service.Create(ctx, CreateParams{
		Name:     "Bob Stone",
		Email:    "bob@example.com",
		Password: "secret",
		Currency: "EUR",
	})
	require.NoError(t, err)
	require.Equal(t, "EUR", eur.Currency)
}

func TestSetTransferPIN(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	account, err := service.Create(ctx, CreateParams{
		Name:     "Alice Carter",
		Email:    "alice@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	profile, err := service.GetProfile(ctx, account.ID)
	require.NoError(t, err)
	require.False(t, profile.HasPIN)

	require.NoError(t, service.SetTransferPIN(ctx, account.ID, "1234"))

	got, err := service.Get(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "1234", got.TransferPIN)

	profile, err = service.GetProfile(ctx, account.ID)
	require.NoError(t, err)
	require.True(t, profile.HasPIN)

	require.ErrorIs(t, service.SetTransferPIN(ctx, "missing", "1234"), domain.ErrAccountNotFound)
}

func TestGetByEmail(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		Name:     "Alice Carter",
		Email:    "alice@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	got, err := service.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	// The match is exact and case-sensitive.
	_, err = service.GetByEmail(ctx, "Alice@Example.com")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
