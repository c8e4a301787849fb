package sessionservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/accountrepo"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/sessionrepo"
	"github.com/brixium/brixium-bank/internal/statestore"
)

func newFixture(t *testing.T) *Service {
	t.Helper()

	seed := statestore.State{
		Accounts: []domain.Account{{
			ID:       "alice",
			Email:    "alice@example.com",
			Password: "hunter2",
		}},
		Admins: []domain.Admin{{
			ID:       "adm-1",
			Email:    "admin@brixium.com",
			Password: "admin123",
		}},
	}

	db, err := statestore.Open(filepath.Join(t.TempDir(), "state.json"), seed)
	require.NoError(t, err)

	return New(accountrepo.NewRepoMem(db), sessionrepo.NewRepoMem(db))
}

func TestLoginUser(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "OK", email: "alice@example.com", password: "hunter2"},
		{name: "WrongPassword", email: "alice@example.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "UnknownEmail", email: "nobody@example.com", password: "hunter2", wantErr: domain.ErrInvalidCredentials},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service := newFixture(t)
			ctx := context.Background()

			account, err := service.LoginUser(ctx, tc.email, tc.password)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				session, err := service.Current(ctx)
				require.NoError(t, err)
				require.Empty(t, session.AccountID)

				return
			}

			require.NoError(t, err)
			require.Equal(t, "alice", account.ID)

			session, err := service.Current(ctx)
			require.NoError(t, err)
			require.Equal(t, "alice", session.AccountID)
			require.False(t, session.IsAdmin)
		})
	}
}

func TestLoginAdmin(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	admin, err := service.LoginAdmin(ctx, "admin@brixium.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "adm-1", admin.ID)

	session, err := service.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "adm-1", session.AccountID)
	require.True(t, session.IsAdmin)

	_, err = service.LoginAdmin(ctx, "admin@brixium.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// User credentials cannot open an admin session.
	_, err = service.LoginAdmin(ctx, "alice@example.com", "hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	_, err := service.LoginUser(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx))

	session, err := service.Current(ctx)
	require.NoError(t, err)
	require.Empty(t, session.AccountID)
	require.False(t, session.IsAdmin)
}
