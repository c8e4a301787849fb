// Package ledgerservice manages business logic layer of money movement.
//
// It is the only component that validates money-movement invariants:
// balance non-negativity, currency matching, transfer preconditions and
// account currency conversion. The repositories it drives commit each
// operation's records and notifications atomically.
package ledgerservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/pkg/currencypkg"
)

// AccountRepo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// LedgerRepo commits ledger mutations atomically.
type LedgerRepo interface {
	TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
	AdjustBalanceTx(ctx context.Context, accountID string, delta decimal.Decimal, tx domain.Transaction, notif domain.AppNotification) (domain.Account, domain.Transaction, error)
	ExchangeTx(ctx context.Context, accountID, newCurrency string, newBalance decimal.Decimal, tx domain.Transaction, notif domain.AppNotification) (domain.Account, error)
}

// TransactionRepo provides read access to the recorded transactions.
type TransactionRepo interface {
	ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

// SettingsRepo provides read access to the application settings.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.AppSettings, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	accounts     AccountRepo
	ledger       LedgerRepo
	transactions TransactionRepo
	settings     SettingsRepo
}

// New returns ledger service struct to manage money movement bussines logic.
func New(ar AccountRepo, lr LedgerRepo, tr TransactionRepo, sr SettingsRepo) *Service {
	return &Service{
		accounts:     ar,
		ledger:       lr,
		transactions: tr,
		settings:     sr,
	}
}

func parseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	return d, nil
}

// Transfer moves money between two accounts. Preconditions are checked
// in order: recipient resolvable and distinct from the sender, amount
// positive, amount covered by the sender balance, transfer PIN match
// when the sender has one configured, sender KYC-verified. An empty
// currency defaults to the sender's; a different one is refused. On
// success the debit and credit are committed together with both
// transaction records and both notifications.
//
// No currency conversion happens: the recipient is credited the same
// numeric amount tagged with the sender's currency, and reconciliation
// is the recipient's responsibility.
func (s *Service) Transfer(ctx context.Context, senderID, recipientEmail, amount, currency, pin string) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	sender, err := s.accounts.Get(ctx, senderID)
	if err != nil {
		return result, err
	}

	recipient, err := s.accounts.GetByEmail(ctx, recipientEmail)
	if err != nil {
		l.Info().Err(err).Str("recipient_email", recipientEmail).Send()
		return result, domain.ErrRecipientNotFound
	}

	if recipient.ID == sender.ID {
		return result, domain.ErrSelfTransfer
	}

	amountDec, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return result, err
	}

	if currency != "" && currency != sender.Currency {
		return result, domain.ErrCurrencyMismatch
	}

	if sender.Balance.LessThan(amountDec) {
		return result, domain.ErrInsufficientFunds
	}

	if sender.TransferPIN != "" && pin != sender.TransferPIN {
		return result, domain.ErrInvalidPIN
	}

	if !sender.IsVerifiedKYC {
		return result, domain.ErrKYCRequired
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return result, err
	}

	arg := domain.TransferTxParams{
		SenderID:      sender.ID,
		RecipientID:   recipient.ID,
		Amount:        amountDec,
		Currency:      sender.Currency,
		NetworkFee:    settings.DefaultNetworkFee,
		SenderDesc:    fmt.Sprintf("Transfer to %s (%s)", recipient.Name, recipient.Email),
		RecipientDesc: fmt.Sprintf("Received from %s (%s)", sender.Name, sender.Email),
		SenderMsg:     fmt.Sprintf("You sent %s %s to %s.", amountDec, sender.Currency, recipient.Name),
		RecipientMsg:  fmt.Sprintf("You received %s %s from %s.", amountDec, sender.Currency, sender.Name),
	}

	return s.ledger.TransferTx(ctx, arg)
}

// Fund credits the account by the given amount. The currency must equal
// the account's current currency; funding does not convert.
func (s *Service) Fund(ctx context.Context, accountID, amount, currency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amountDec, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Account{}, err
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Currency != currency {
		return domain.Account{}, domain.ErrCurrencyMismatch
	}

	tx := domain.Transaction{
		AccountID:   accountID,
		Type:        domain.TypeDeposit,
		Status:      domain.StatusCompleted,
		Amount:      amountDec,
		Currency:    currency,
		Description: "Account funded by admin.",
	}

	notif := domain.AppNotification{
		AccountID: accountID,
		Type:      domain.NotifBalanceFunded,
		Message:   fmt.Sprintf("Your account has been funded with %s %s.", amountDec, currency),
	}

	account, _, err = s.ledger.AdjustBalanceTx(ctx, accountID, amountDec, tx, notif)

	return account, err
}

// Deduct debits the account by the given amount. The currency must
// equal the account's current currency and the balance must cover the
// amount.
func (s *Service) Deduct(ctx context.Context, accountID, amount, currency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amountDec, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Account{}, err
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Currency != currency {
		return domain.Account{}, domain.ErrCurrencyMismatch
	}

	if account.Balance.LessThan(amountDec) {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	tx := domain.Transaction{
		AccountID:   accountID,
		Type:        domain.TypeWithdrawal,
		Status:      domain.StatusCompleted,
		Amount:      amountDec,
		Currency:    currency,
		Description: "Balance deducted by admin.",
	}

	notif := domain.AppNotification{
		AccountID: accountID,
		Type:      domain.NotifBalanceDeducted,
		Message:   fmt.Sprintf("An amount of %s %s has been deducted from your account by an admin.", amountDec, currency),
	}

	account, _, err = s.ledger.AdjustBalanceTx(ctx, accountID, amountDec.Neg(), tx, notif)

	return account, err
}

// ListTransactions returns the account's transaction history
// newest-first, covering both legs it participated in.
func (s *Service) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.transactions.ListForAccount(ctx, accountID)
}

// ListAllTransactions returns every recorded transaction newest-first.
func (s *Service) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.List(ctx)
}

// GetExchangeRate returns the directed rate between two currencies, or
// a zero decimal when no rate is configured.
func (s *Service) GetExchangeRate(from, to string) decimal.Decimal {
	return currencypkg.Rate(from, to)
}

// ChangeAccountCurrency converts the account's entire balance to the
// new currency at the configured directed rate. Changing to the current
// currency is a no-op success. One Exchange transaction is recorded
// with the pre-conversion amount and currency.
func (s *Service) ChangeAccountCurrency(ctx context.Context, accountID, newCurrency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Currency == newCurrency {
		return account, nil
	}

	oldCurrency := account.Currency
	oldBalance := account.Balance
	newBalance := oldBalance

	if oldBalance.IsPositive() {
		rate := currencypkg.Rate(oldCurrency, newCurrency)
		if !rate.IsPositive() {
			l.Info().Str("from", oldCurrency).Str("to", newCurrency).Msg("no exchange rate configured")
			return domain.Account{}, domain.ErrRateUnavailable
		}

		newBalance = oldBalance.Mul(rate)
	}

	tx := domain.Transaction{
		AccountID: accountID,
		Type:      domain.TypeExchange,
		Status:    domain.StatusCompleted,
		Amount:    oldBalance,
		Currency:  oldCurrency,
		Description: fmt.Sprintf(
			"Account currency changed from %s to %s. Balance converted: %s %s to %s %s.",
			oldCurrency, newCurrency,
			oldBalance.StringFixed(2), oldCurrency,
			newBalance.StringFixed(2), newCurrency,
		),
	}

	notif := domain.AppNotification{
		AccountID: accountID,
		Type:      domain.NotifAccountCurrencyChanged,
		Message: fmt.Sprintf(
			"Your account currency has been changed to %s. New balance: %s %s.",
			newCurrency, newBalance.StringFixed(2), newCurrency,
		),
	}

	return s.ledger.ExchangeTx(ctx, accountID, newCurrency, newBalance, tx, notif)
}

// PerformExchange validates that fromCurrency matches the account and
// that fromAmount is positive and covered by the balance, then performs
// a whole-balance currency change.
//
// The requested amount is only a pre-flight check: the system models
// one currency per account, so any exchange converts the entire
// balance, not the requested sub-amount.
func (s *Service) PerformExchange(ctx context.Context, accountID, fromCurrency, toCurrency, fromAmount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Currency != fromCurrency {
		return domain.Account{}, domain.ErrCurrencyMismatch
	}

	amountDec, err := parseAmount(fromAmount)
	if err != nil {
		l.Info().Err(err).Str("amount", fromAmount).Send()
		return domain.Account{}, err
	}

	if account.Balance.LessThan(amountDec) {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	return s.ChangeAccountCurrency(ctx, accountID, toCurrency)
}
