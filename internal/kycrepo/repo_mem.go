// Package kycrepo manages repository layer of KYC requests.
//
// It is the only writer of KYC status and of the account's verified
// flag; both always change in the same update.
package kycrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates KYC repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns KYC RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Get returns the KYC request with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.KYCRequest, error) {
	var req domain.KYCRequest

	err := r.db.View(func(s *statestore.State) error {
		i := s.KYCIndex(id)
		if i < 0 {
			return domain.ErrRequestNotFound
		}

		req = s.KYCRequests[i]

		return nil
	})

	return req, err
}

// GetForAccount returns the account's KYC request.
func (r *RepoMem) GetForAccount(ctx context.Context, accountID string) (domain.KYCRequest, error) {
	var req domain.KYCRequest

	err := r.db.View(func(s *statestore.State) error {
		i := s.KYCIndexByAccount(accountID)
		if i < 0 {
			return domain.ErrRequestNotFound
		}

		req = s.KYCRequests[i]

		return nil
	})

	return req, err
}

// SubmitTx creates a Pending request for the account, superseding any
// terminal one, defensively clears the verified flag and appends the
// admin broadcast, all atomically. When an active (Pending or Approved)
// request already exists it is returned unchanged with an informational
// notice to the caller only; no second request is created.
func (r *RepoMem) SubmitTx(ctx context.Context, accountID string, documentURLs []string, adminMsg string) (domain.KYCRequest, error) {
	l := zerolog.Ctx(ctx)

	var req domain.KYCRequest

	err := r.db.Update(ctx, func(s *statestore.State) error {
		ai := s.AccountIndex(accountID)
		if ai < 0 {
			return domain.ErrAccountNotFound
		}

		now := time.Now().UTC()

		if ki := s.KYCIndexByAccount(accountID); ki >= 0 && s.KYCRequests[ki].Status.Active() {
			req = s.KYCRequests[ki]

			s.Notifications = append(s.Notifications, domain.AppNotification{
				ID:        uuid.NewString(),
				AccountID: accountID,
				Type:      domain.NotifInfo,
				Message:   "KYC request already pending or approved.",
				CreatedAt: now,
			})

			return nil
		}

		req = domain.KYCRequest{
			ID:           uuid.NewString(),
			AccountID:    accountID,
			DocumentURLs: documentURLs,
			Status:       domain.KYCPending,
			SubmittedAt:  now,
		}

		// Drop any terminal request for this account before appending.
		kept := s.KYCRequests[:0]
		for _, k := range s.KYCRequests {
			if k.AccountID != accountID {
				kept = append(kept, k)
			}
		}

		s.KYCRequests = append(kept, req)

		s.Accounts[ai].IsVerifiedKYC = false

		s.Notifications = append(s.Notifications, domain.AppNotification{
			ID:        uuid.NewString(),
			AdminOnly: true,
			Type:      domain.NotifNewKYCSubmission,
			Message:   adminMsg,
			CreatedAt: now,
			LinkTo:    "/admin/kyc",
		})

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("account_id", accountID).Send()
		return domain.KYCRequest{}, err
	}

	return req, nil
}

// ReviewTx sets the review outcome, reviewer and timestamps, aligns the
// account's verified flag with the decision and appends the
// outcome-specific owner notification, all atomically.
func (r *RepoMem) ReviewTx(ctx context.Context, requestID string, approve bool, adminID, ownerMsg string) (domain.KYCRequest, error) {
	l := zerolog.Ctx(ctx)

	var req domain.KYCRequest

	err := r.db.Update(ctx, func(s *statestore.State) error {
		ki := s.KYCIndex(requestID)
		if ki < 0 {
			return domain.ErrRequestNotFound
		}

		if !s.KYCRequests[ki].Status.Active() || s.KYCRequests[ki].Status == domain.KYCApproved {
			return domain.ErrAlreadyProcessed
		}

		ai := s.AccountIndex(s.KYCRequests[ki].AccountID)
		if ai < 0 {
			return domain.ErrAccountNotFound
		}

		now := time.Now().UTC()

		status := domain.KYCRejected
		notifType := domain.NotifKYCRejected

		if approve {
			status = domain.KYCApproved
			notifType = domain.NotifKYCApproved
		}

		s.KYCRequests[ki].Status = status
		s.KYCRequests[ki].ReviewedAt = &now
		s.KYCRequests[ki].ReviewerID = adminID

		s.Accounts[ai].IsVerifiedKYC = approve

		s.Notifications = append(s.Notifications, domain.AppNotification{
			ID:        uuid.NewString(),
			AccountID: s.KYCRequests[ki].AccountID,
			Type:      notifType,
			Message:   ownerMsg,
			CreatedAt: now,
		})

		req = s.KYCRequests[ki]

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("request_id", requestID).Send()
		return domain.KYCRequest{}, err
	}

	return req, nil
}

// List returns all KYC requests newest-first.
func (r *RepoMem) List(ctx context.Context) ([]domain.KYCRequest, error) {
	items := []domain.KYCRequest{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.KYCRequests) - 1; i >= 0; i-- {
			items = append(items, s.KYCRequests[i])
		}

		return nil
	})

	return items, err
}
