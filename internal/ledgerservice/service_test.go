package ledgerservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brixium/brixium-bank/internal/accountrepo"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/ledgerrepo"
	"github.com/brixium/brixium-bank/internal/settingsrepo"
	"github.com/brixium/brixium-bank/internal/statestore"
	"github.com/brixium/brixium-bank/internal/transactionrepo"
)

func newFixture(t *testing.T, accounts ...domain.Account) (*Service, *statestore.DB) {
	t.Helper()

	seed := statestore.State{
		Accounts: accounts,
		Settings: domain.AppSettings{
			DefaultNetworkFee: decimal.NewFromInt(5),
			NetworkFeeType:    domain.FeeTypeFixed,
			DefaultCurrency:   "USD",
		},
	}

	db, err := statestore.Open(filepath.Join(t.TempDir(), "state.json"), seed)
	require.NoError(t, err)

	service := New(
		accountrepo.NewRepoMem(db),
		ledgerrepo.NewRepoMem(db),
		transactionrepo.NewRepoMem(db),
		settingsrepo.NewRepoMem(db),
	)

	return service, db
}

func alice() domain.Account {
	return domain.Account{
		ID:            "alice",
		Name:          "Alice Carter",
		Email:         "alice@example.com",
		Balance:       decimal.NewFromInt(500),
		Currency:      "USD",
		IsVerifiedKYC: true,
		TransferPIN:   "1234",
	}
}

func bob() domain.Account {
	return domain.Account{
		ID:            "bob",
		Name:          "Bob Stone",
		Email:         "bob@example.com",
		Balance:       decimal.NewFromInt(20),
		Currency:      "EUR",
		IsVerifiedKYC: true,
	}
}

func TestTransfer(t *testing.T) {
	testCases := []struct {
		name           string
		sender         func() domain.Account
		recipientEmail string
		amount         string
		currency       string
		pin            string
		wantErr        error
	}{
		{
			name:           "OK",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "100",
			pin:            "1234",
		},
		{
			name:           "ExplicitSenderCurrency",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "100",
			currency:       "USD",
			pin:            "1234",
		},
		{
			name:           "CurrencyMismatch",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "100",
			currency:       "EUR",
			pin:            "1234",
			wantErr:        domain.ErrCurrencyMismatch,
		},
		{
			name:           "RecipientNotFound",
			sender:         alice,
			recipientEmail: "nobody@example.com",
			amount:         "100",
			pin:            "1234",
			wantErr:        domain.ErrRecipientNotFound,
		},
		{
			name:           "SelfTransfer",
			sender:         alice,
			recipientEmail: "alice@example.com",
			amount:         "100",
			pin:            "1234",
			wantErr:        domain.ErrSelfTransfer,
		},
		{
			name:           "NegativeAmount",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "-100",
			pin:            "1234",
			wantErr:        domain.ErrInvalidAmount,
		},
		{
			name:           "UnparsableAmount",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "one hundred",
			pin:            "1234",
			wantErr:        domain.ErrInvalidAmount,
		},
		{
			name: "InsufficientFunds",
			sender: func() domain.Account {
				a := alice()
				a.Balance = decimal.NewFromInt(50)
				return a
			},
			recipientEmail: "bob@example.com",
			amount:         "100",
			pin:            "1234",
			wantErr:        domain.ErrInsufficientFunds,
		},
		{
			name:           "WrongPIN",
			sender:         alice,
			recipientEmail: "bob@example.com",
			amount:         "100",
			pin:            "9999",
			wantErr:        domain.ErrInvalidPIN,
		},
		{
			name: "KYCRequired",
			sender: func() domain.Account {
				a := alice()
				a.IsVerifiedKYC = false
				return a
			},
			recipientEmail: "bob@example.com",
			amount:         "100",
			pin:            "1234",
			wantErr:        domain.ErrKYCRequired,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, db := newFixture(t, tc.sender(), bob())
			ctx := context.Background()

			result, err := service.Transfer(ctx, "alice", tc.recipientEmail, tc.amount, tc.currency, tc.pin)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				// Failed transfers must not move money or leave records.
				err = db.View(func(s *statestore.State) error {
					require.True(t, s.Accounts[s.AccountIndex("alice")].Balance.Equal(tc.sender().Balance))
					require.True(t, s.Accounts[s.AccountIndex("bob")].Balance.Equal(decimal.NewFromInt(20)))
					require.Empty(t, s.Transactions)
					require.Empty(t, s.Notifications)
					return nil
				})
				require.NoError(t, err)

				return
			}

			require.NoError(t, err)

			require.True(t, result.Sender.Balance.Equal(decimal.NewFromInt(400)))
			require.True(t, result.Recipient.Balance.Equal(decimal.NewFromInt(120)))

			// The credit keeps the sender's currency and numeric amount;
			// the recipient account currency is untouched.
			require.Equal(t, "EUR", result.Recipient.Currency)
			require.Equal(t, "USD", result.RecipientTx.Currency)
			require.True(t, result.RecipientTx.Amount.Equal(decimal.NewFromInt(100)))

			require.Equal(t, domain.TypeTransfer, result.SenderTx.Type)
			require.Equal(t, domain.StatusCompleted, result.SenderTx.Status)
			require.Equal(t, "Transfer to Bob Stone (bob@example.com)", result.SenderTx.Description)
			require.Equal(t, "Received from Alice Carter (alice@example.com)", result.RecipientTx.Description)
			require.Equal(t, "bob", result.SenderTx.ToAccountID)
			require.Equal(t, "alice", result.RecipientTx.FromAccountID)

			err = db.View(func(s *statestore.State) error {
				require.Len(t, s.Transactions, 2)
				require.Len(t, s.Notifications, 2)
				require.Equal(t, domain.NotifTransferSent, s.Notifications[0].Type)
				require.Equal(t, "You sent 100 USD to Bob Stone.", s.Notifications[0].Message)
				require.Equal(t, domain.NotifTransferReceived, s.Notifications[1].Type)
				require.Equal(t, "You received 100 USD from Alice Carter.", s.Notifications[1].Message)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestFund(t *testing.T) {
	service, _ := newFixture(t, alice())
	ctx := context.Background()

	_, err := service.Fund(ctx, "alice", "100", "EUR")
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = service.Fund(ctx, "alice", "0", "USD")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	account, err := service.Fund(ctx, "alice", "250.50", "USD")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.RequireFromString("750.5")))

	history, err := service.ListTransactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, domain.TypeDeposit, history[0].Type)
	require.Equal(t, "Account funded by admin.", history[0].Description)
}

func TestDeduct(t *testing.T) {
	service, _ := newFixture(t, alice())
	ctx := context.Background()

	_, err := service.Deduct(ctx, "alice", "600", "USD")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = service.Deduct(ctx, "alice", "100", "EUR")
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	account, err := service.Deduct(ctx, "alice", "500", "USD")
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero())

	history, err := service.ListTransactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, domain.TypeWithdrawal, history[0].Type)
	require.Equal(t, "Balance deducted by admin.", history[0].Description)
}

func TestChangeAccountCurrency(t *testing.T) {
	t.Run("ConvertsWholeBalance", func(t *testing.T) {
		a := alice()
		a.Balance = decimal.NewFromInt(100)

		service, db := newFixture(t, a)
		ctx := context.Background()

		account, err := service.ChangeAccountCurrency(ctx, "alice", "EUR")
		require.NoError(t, err)
		require.Equal(t, "EUR", account.Currency)
		require.True(t, account.Balance.Equal(decimal.RequireFromString("93")))

		err = db.View(func(s *statestore.State) error {
			require.Len(t, s.Transactions, 1)
			tx := s.Transactions[0]
			require.Equal(t, domain.TypeExchange, tx.Type)
			require.Equal(t, "USD", tx.Currency)
			require.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
			require.Equal(t,
				"Account currency changed from USD to EUR. Balance converted: 100.00 USD to 93.00 EUR.",
				tx.Description)

			require.Len(t, s.Notifications, 1)
			require.Equal(t, domain.NotifAccountCurrencyChanged, s.Notifications[0].Type)
			require.Equal(t,
				"Your account currency has been changed to EUR. New balance: 93.00 EUR.",
				s.Notifications[0].Message)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("SameCurrencyIsNoop", func(t *testing.T) {
		service, db := newFixture(t, alice())

		account, err := service.ChangeAccountCurrency(context.Background(), "alice", "USD")
		require.NoError(t, err)
		require.Equal(t, "USD", account.Currency)
		require.True(t, account.Balance.Equal(decimal.NewFromInt(500)))

		err = db.View(func(s *statestore.State) error {
			require.Empty(t, s.Transactions)
			require.Empty(t, s.Notifications)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("RateUnavailable", func(t *testing.T) {
		service, _ := newFixture(t, alice())

		_, err := service.ChangeAccountCurrency(context.Background(), "alice", "XXX")
		require.ErrorIs(t, err, domain.ErrRateUnavailable)
	})

	t.Run("ZeroBalanceNeedsNoRate", func(t *testing.T) {
		a := alice()
		a.Balance = decimal.Zero

		service, _ := newFixture(t, a)

		account, err := service.ChangeAccountCurrency(context.Background(), "alice", "NGN")
		require.NoError(t, err)
		require.Equal(t, "NGN", account.Currency)
		require.True(t, account.Balance.IsZero())
	})
}

func TestPerformExchange(t *testing.T) {
	t.Run("ConvertsWholeBalanceEvenForPartialAmount", func(t *testing.T) {
		a := alice()
		a.Balance = decimal.NewFromInt(100)

		service, _ := newFixture(t, a)

		account, err := service.PerformExchange(context.Background(), "alice", "USD", "EUR", "40")
		require.NoError(t, err)
		require.Equal(t, "EUR", account.Currency)
		require.True(t, account.Balance.Equal(decimal.RequireFromString("93")))
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		service, _ := newFixture(t, alice())

		_, err := service.PerformExchange(context.Background(), "alice", "EUR", "GBP", "40")
		require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		service, _ := newFixture(t, alice())

		_, err := service.PerformExchange(context.Background(), "alice", "USD", "EUR", "600")
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func TestGetExchangeRate(t *testing.T) {
	service, _ := newFixture(t)

	require.True(t, service.GetExchangeRate("USD", "EUR").Equal(decimal.RequireFromString("0.93")))
	require.True(t, service.GetExchangeRate("EUR", "USD").Equal(decimal.RequireFromString("1.08")))
	require.True(t, service.GetExchangeRate("USD", "XXX").IsZero())
}
