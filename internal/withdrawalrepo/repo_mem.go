// Package withdrawalrepo manages repository layer of withdrawal requests.
//
// It is the only writer of withdrawal request status; the settlement of
// an approval (debit + ledger record) is committed in the same update
// as the status flip.
package withdrawalrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates withdrawal repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns withdrawal RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Get returns the withdrawal request with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest

	err := r.db.View(func(s *statestore.State) error {
		i := s.WithdrawalIndex(id)
		if i < 0 {
			return domain.ErrRequestNotFound
		}

		req = s.Withdrawals[i]

		return nil
	})

	return req, err
}

// CreateTx appends a Pending request and the admin broadcast
// notification atomically, and returns the stored request.
func (r *RepoMem) CreateTx(ctx context.Context, req domain.WithdrawalRequest, adminMsg string) (domain.WithdrawalRequest, error) {
	now := time.Now().UTC()

	req.ID = uuid.NewString()
	req.Status = domain.StatusPending
	req.RequestedAt = now

	err := r.db.Update(ctx, func(s *statestore.State) error {
		s.Withdrawals = append(s.Withdrawals, req)

		s.Notifications = append(s.Notifications, domain.AppNotification{
			ID:        uuid.NewString(),
			AdminOnly: true,
			Type:      domain.NotifNewWithdrawalRequest,
			Message:   adminMsg,
			CreatedAt: now,
			LinkTo:    "/admin/withdrawals",
		})

		return nil
	})

	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	return req, nil
}

// ProcessParams is the input data for settling a Pending request.
// Message texts cover each possible outcome because the outcome is only
// decided under the lock.
type ProcessParams struct {
	RequestID    string
	Approve      bool
	AdminID      string
	TxDesc       string
	ApprovedMsg  string
	RejectedMsg  string
	ShortfallMsg string
}

// ProcessTx settles a Pending request. Approval re-validates the balance
// under the lock: a shortfall flips the request to Rejected, notifies
// the owner and reports ErrInsufficientFunds while still committing the
// state change. A request that already left Pending fails with
// ErrAlreadyProcessed.
func (r *RepoMem) ProcessTx(ctx context.Context, arg ProcessParams) (domain.WithdrawalRequest, error) {
	l := zerolog.Ctx(ctx)

	var (
		req       domain.WithdrawalRequest
		shortfall bool
	)

	err := r.db.Update(ctx, func(s *statestore.State) error {
		wi := s.WithdrawalIndex(arg.RequestID)
		if wi < 0 {
			return domain.ErrRequestNotFound
		}

		if s.Withdrawals[wi].Status != domain.StatusPending {
			return domain.ErrAlreadyProcessed
		}

		ai := s.AccountIndex(s.Withdrawals[wi].AccountID)
		if ai < 0 {
			return domain.ErrAccountNotFound
		}

		now := time.Now().UTC()

		s.Withdrawals[wi].ProcessedAt = &now
		s.Withdrawals[wi].AdminID = arg.AdminID

		owner := s.Withdrawals[wi].AccountID

		switch {
		case arg.Approve && s.Accounts[ai].Balance.LessThan(s.Withdrawals[wi].Amount):
			shortfall = true

			s.Withdrawals[wi].Status = domain.StatusRejected

			s.Notifications = append(s.Notifications, domain.AppNotification{
				ID:        uuid.NewString(),
				AccountID: owner,
				Type:      domain.NotifWithdrawalRejected,
				Message:   arg.ShortfallMsg,
				CreatedAt: now,
			})

		case arg.Approve:
			s.Withdrawals[wi].Status = domain.StatusCompleted

			s.Accounts[ai].Balance = s.Accounts[ai].Balance.Sub(s.Withdrawals[wi].Amount)

			s.Transactions = append(s.Transactions, domain.Transaction{
				ID:          uuid.NewString(),
				AccountID:   owner,
				Type:        domain.TypeWithdrawal,
				Status:      domain.StatusCompleted,
				Amount:      s.Withdrawals[wi].Amount,
				Currency:    s.Withdrawals[wi].Currency,
				CreatedAt:   now,
				Description: arg.TxDesc,
				ToAddress:   s.Withdrawals[wi].Address,
				RelatedTxID: s.Withdrawals[wi].ID,
			})

			s.Notifications = append(s.Notifications, domain.AppNotification{
				ID:        uuid.NewString(),
				AccountID: owner,
				Type:      domain.NotifWithdrawalApproved,
				Message:   arg.ApprovedMsg,
				CreatedAt: now,
			})

		default:
			s.Withdrawals[wi].Status = domain.StatusRejected

			s.Notifications = append(s.Notifications, domain.AppNotification{
				ID:        uuid.NewString(),
				AccountID: owner,
				Type:      domain.NotifWithdrawalRejected,
				Message:   arg.RejectedMsg,
				CreatedAt: now,
			})
		}

		req = s.Withdrawals[wi]

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("request_id", arg.RequestID).Send()
		return domain.WithdrawalRequest{}, err
	}

	if shortfall {
		return req, domain.ErrInsufficientFunds
	}

	return req, nil
}

// ListForAccount returns the account's withdrawal requests newest-first.
func (r *RepoMem) ListForAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error) {
	items := []domain.WithdrawalRequest{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Withdrawals) - 1; i >= 0; i-- {
			if s.Withdrawals[i].AccountID == accountID {
				items = append(items, s.Withdrawals[i])
			}
		}

		return nil
	})

	return items, err
}

// List returns all withdrawal requests newest-first.
func (r *RepoMem) List(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	items := []domain.WithdrawalRequest{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Withdrawals) - 1; i >= 0; i-- {
			items = append(items, s.Withdrawals[i])
		}

		return nil
	})

	return items, err
}
