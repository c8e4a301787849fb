// Package ledgerrepo commits multi-record ledger mutations atomically.
//
// Every method runs inside a single state-store update, so the balance
// change, the transaction records and the contracted notifications are
// visible to readers all-or-nothing.
package ledgerrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates ledger repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns ledger RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

func stamp(tx domain.Transaction, now time.Time) domain.Transaction {
	tx.ID = uuid.NewString()
	tx.CreatedAt = now

	return tx
}

func note(n domain.AppNotification, now time.Time) domain.AppNotification {
	n.ID = uuid.NewString()
	n.CreatedAt = now
	n.Read = false

	return n
}

// TransferTx debits the sender, credits the recipient by the same
// numeric amount and appends the two cross-linked transaction records
// plus the sent/received notifications, all under one lock. The sender
// balance is re-checked here so a concurrent debit cannot drive it
// negative.
func (r *RepoMem) TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	err := r.db.Update(ctx, func(s *statestore.State) error {
		si := s.AccountIndex(arg.SenderID)
		if si < 0 {
			return domain.ErrAccountNotFound
		}

		ri := s.AccountIndex(arg.RecipientID)
		if ri < 0 {
			return domain.ErrRecipientNotFound
		}

		if s.Accounts[si].Balance.LessThan(arg.Amount) {
			return domain.ErrInsufficientFunds
		}

		now := time.Now().UTC()

		s.Accounts[si].Balance = s.Accounts[si].Balance.Sub(arg.Amount)
		s.Accounts[ri].Balance = s.Accounts[ri].Balance.Add(arg.Amount)

		senderTx := stamp(domain.Transaction{
			AccountID:   arg.SenderID,
			Type:        domain.TypeTransfer,
			Status:      domain.StatusCompleted,
			Amount:      arg.Amount,
			Currency:    arg.Currency,
			Description: arg.SenderDesc,
			ToAccountID: arg.RecipientID,
			NetworkFee:  arg.NetworkFee,
		}, now)

		recipientTx := stamp(domain.Transaction{
			AccountID:     arg.RecipientID,
			Type:          domain.TypeTransfer,
			Status:        domain.StatusCompleted,
			Amount:        arg.Amount,
			Currency:      arg.Currency,
			Description:   arg.RecipientDesc,
			FromAccountID: arg.SenderID,
		}, now)

		s.Transactions = append(s.Transactions, senderTx, recipientTx)

		s.Notifications = append(s.Notifications,
			note(domain.AppNotification{
				AccountID: arg.SenderID,
				Type:      domain.NotifTransferSent,
				Message:   arg.SenderMsg,
			}, now),
			note(domain.AppNotification{
				AccountID: arg.RecipientID,
				Type:      domain.NotifTransferReceived,
				Message:   arg.RecipientMsg,
			}, now),
		)

		result = domain.TransferTxResult{
			SenderTx:    senderTx,
			RecipientTx: recipientTx,
			Sender:      s.Accounts[si],
			Recipient:   s.Accounts[ri],
		}

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("sender_id", arg.SenderID).Send()
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// AdjustBalanceTx applies a signed balance delta and appends the given
// transaction record and owner notification atomically. A negative
// delta that would overdraw the account fails with ErrInsufficientFunds
// and leaves the state untouched.
func (r *RepoMem) AdjustBalanceTx(
	ctx context.Context,
	accountID string,
	delta decimal.Decimal,
	tx domain.Transaction,
	notif domain.AppNotification,
) (domain.Account, domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var (
		account   domain.Account
		committed domain.Transaction
	)

	err := r.db.Update(ctx, func(s *statestore.State) error {
		i := s.AccountIndex(accountID)
		if i < 0 {
			return domain.ErrAccountNotFound
		}

		balance := s.Accounts[i].Balance.Add(delta)
		if balance.IsNegative() {
			return domain.ErrInsufficientFunds
		}

		now := time.Now().UTC()

		s.Accounts[i].Balance = balance

		committed = stamp(tx, now)
		s.Transactions = append(s.Transactions, committed)
		s.Notifications = append(s.Notifications, note(notif, now))

		account = s.Accounts[i]

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("account_id", accountID).Send()
		return domain.Account{}, domain.Transaction{}, err
	}

	return account, committed, nil
}

// ExchangeTx replaces the account's currency and balance and appends the
// exchange transaction record and owner notification atomically.
func (r *RepoMem) ExchangeTx(
	ctx context.Context,
	accountID, newCurrency string,
	newBalance decimal.Decimal,
	tx domain.Transaction,
	notif domain.AppNotification,
) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	err := r.db.Update(ctx, func(s *statestore.State) error {
		i := s.AccountIndex(accountID)
		if i < 0 {
			return domain.ErrAccountNotFound
		}

		now := time.Now().UTC()

		s.Accounts[i].Currency = newCurrency
		s.Accounts[i].Balance = newBalance

		s.Transactions = append(s.Transactions, stamp(tx, now))
		s.Notifications = append(s.Notifications, note(notif, now))

		account = s.Accounts[i]

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("account_id", accountID).Send()
		return domain.Account{}, err
	}

	return account, nil
}
