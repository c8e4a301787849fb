package kycservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/accountrepo"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/kycrepo"
	"github.com/brixium/brixium-bank/internal/statestore"
)

func newFixture(t *testing.T) (*Service, *statestore.DB) {
	t.Helper()

	seed := statestore.State{
		Accounts: []domain.Account{{
			ID:    "alice",
			Name:  "Alice Carter",
			Email: "alice@example.com",
		}},
	}

	db, err := statestore.Open(filepath.Join(t.TempDir(), "state.json"), seed)
	require.NoError(t, err)

	return New(accountrepo.NewRepoMem(db), kycrepo.NewRepoMem(db)), db
}

func TestSubmit(t *testing.T) {
	service, db := newFixture(t)
	ctx := context.Background()

	docs := []string{"https://cdn.example.com/id-front.png", "https://cdn.example.com/id-back.png"}

	req, err := service.Submit(ctx, "alice", docs)
	require.NoError(t, err)
	require.Equal(t, domain.KYCPending, req.Status)
	require.Equal(t, docs, req.DocumentURLs)

	err = db.View(func(s *statestore.State) error {
		require.Len(t, s.Notifications, 1)
		require.True(t, s.Notifications[0].AdminOnly)
		require.Equal(t, domain.NotifNewKYCSubmission, s.Notifications[0].Type)
		require.Equal(t, "New KYC submission from Alice Carter.", s.Notifications[0].Message)
		return nil
	})
	require.NoError(t, err)

	// A second submission while one is pending is a no-op returning the
	// existing request.
	again, err := service.Submit(ctx, "alice", []string{"https://cdn.example.com/other.png"})
	require.NoError(t, err)
	require.Equal(t, req.ID, again.ID)
	require.Equal(t, docs, again.DocumentURLs)

	err = db.View(func(s *statestore.State) error {
		require.Len(t, s.KYCRequests, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestSubmitUnknownAccount(t *testing.T) {
	service, _ := newFixture(t)

	_, err := service.Submit(context.Background(), "missing", nil)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestReview(t *testing.T) {
	testCases := []struct {
		name         string
		approve      bool
		wantStatus   domain.KYCStatus
		wantVerified bool
		wantNotif    domain.NotificationType
		wantMsg      string
	}{
		{
			name:         "Approved",
			approve:      true,
			wantStatus:   domain.KYCApproved,
			wantVerified: true,
			wantNotif:    domain.NotifKYCApproved,
			wantMsg:      "Congratulations! Your KYC verification has been approved.",
		},
		{
			name:       "Rejected",
			approve:    false,
			wantStatus: domain.KYCRejected,
			wantNotif:  domain.NotifKYCRejected,
			wantMsg:    "Your KYC verification was rejected. Please review your documents and submit again.",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, db := newFixture(t)
			ctx := context.Background()

			req, err := service.Submit(ctx, "alice", nil)
			require.NoError(t, err)

			reviewed, err := service.Review(ctx, req.ID, tc.approve, "adm-1")
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, reviewed.Status)
			require.Equal(t, "adm-1", reviewed.ReviewerID)
			require.NotNil(t, reviewed.ReviewedAt)

			err = db.View(func(s *statestore.State) error {
				require.Equal(t, tc.wantVerified, s.Accounts[0].IsVerifiedKYC)

				last := s.Notifications[len(s.Notifications)-1]
				require.Equal(t, "alice", last.AccountID)
				require.Equal(t, tc.wantNotif, last.Type)
				require.Equal(t, tc.wantMsg, last.Message)
				return nil
			})
			require.NoError(t, err)

			// Only Pending requests can be reviewed.
			_, err = service.Review(ctx, req.ID, tc.approve, "adm-1")
			require.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		})
	}
}

func TestResubmitAfterRejection(t *testing.T) {
	service, db := newFixture(t)
	ctx := context.Background()

	first, err := service.Submit(ctx, "alice", nil)
	require.NoError(t, err)

	_, err = service.Review(ctx, first.ID, false, "adm-1")
	require.NoError(t, err)

	second, err := service.Submit(ctx, "alice", nil)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, domain.KYCPending, second.Status)

	// The rejected request is superseded, not kept alongside.
	err = db.View(func(s *statestore.State) error {
		require.Len(t, s.KYCRequests, 1)
		require.Equal(t, second.ID, s.KYCRequests[0].ID)
		return nil
	})
	require.NoError(t, err)
}
