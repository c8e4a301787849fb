package notificationservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/notificationrepo"
	"github.com/brixium/brixium-bank/internal/statestore"
)

func newFixture(t *testing.T) *Service {
	t.Helper()

	db, err := statestore.Open(filepath.Join(t.TempDir(), "state.json"), statestore.State{})
	require.NoError(t, err)

	return New(notificationrepo.NewRepoMem(db))
}

func TestNotify(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	// Untyped notifications default to Info.
	n, err := service.Notify(ctx, domain.AppNotification{
		AccountID: "alice",
		Message:   "Welcome to Brixium.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)
	require.Equal(t, domain.NotifInfo, n.Type)
	require.False(t, n.Read)
	require.NotZero(t, n.CreatedAt)

	broadcast, err := service.Notify(ctx, domain.AppNotification{
		AdminOnly: true,
		Type:      domain.NotifNewKYCSubmission,
		Message:   "New KYC submission from Alice Carter.",
	})
	require.NoError(t, err)

	forAlice, err := service.ListForAccount(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	require.Equal(t, n.ID, forAlice[0].ID)

	forAdmins, err := service.ListForAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, forAdmins, 1)
	require.Equal(t, broadcast.ID, forAdmins[0].ID)
}

func TestMarkRead(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	n, err := service.Notify(ctx, domain.AppNotification{
		AccountID: "alice",
		Message:   "Welcome to Brixium.",
	})
	require.NoError(t, err)

	require.NoError(t, service.MarkRead(ctx, n.ID))

	listed, err := service.ListForAccount(ctx, "alice")
	require.NoError(t, err)
	require.True(t, listed[0].Read)

	require.ErrorIs(t, service.MarkRead(ctx, "missing"), domain.ErrRequestNotFound)
}

func TestListOrder(t *testing.T) {
	service := newFixture(t)
	ctx := context.Background()

	first, err := service.Notify(ctx, domain.AppNotification{AccountID: "alice", Message: "first"})
	require.NoError(t, err)

	second, err := service.Notify(ctx, domain.AppNotification{AccountID: "alice", Message: "second"})
	require.NoError(t, err)

	listed, err := service.ListForAccount(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, second.ID, listed[0].ID)
	require.Equal(t, first.ID, listed[1].ID)
}
