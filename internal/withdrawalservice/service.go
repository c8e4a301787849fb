// Package withdrawalservice manages business logic layer of withdrawal
// requests.
package withdrawalservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/withdrawalrepo"
)

// AccountRepo provides data access layer interface needed by withdrawal service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package withdrawalservice
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
}

// WithdrawalRepo commits withdrawal request mutations atomically.
type WithdrawalRepo interface {
	Get(ctx context.Context, id string) (domain.WithdrawalRequest, error)
	CreateTx(ctx context.Context, req domain.WithdrawalRequest, adminMsg string) (domain.WithdrawalRequest, error)
	ProcessTx(ctx context.Context, arg withdrawalrepo.ProcessParams) (domain.WithdrawalRequest, error)
	ListForAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error)
	List(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// SettingsRepo provides read access to the application settings.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.AppSettings, error)
}

// Service facilitates withdrawal service layer logic.
type Service struct {
	accounts    AccountRepo
	withdrawals WithdrawalRepo
	settings    SettingsRepo
}

// New returns withdrawal service struct to manage withdrawal bussines logic.
func New(ar AccountRepo, wr WithdrawalRepo, sr SettingsRepo) *Service {
	return &Service{
		accounts:    ar,
		withdrawals: wr,
		settings:    sr,
	}
}

// RequestParams is the input data for requesting a withdrawal.
type RequestParams struct {
	AccountID string
	Amount    string
	Currency  string
	Address   string
	Network   string
}

// Request records a Pending withdrawal. No funds are reserved; the
// balance check here is advisory and is repeated when an admin settles
// the request. Requests are refused while maintenance mode is on and
// for accounts that have not passed KYC.
func (s *Service) Request(ctx context.Context, arg RequestParams) (domain.WithdrawalRequest, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, arg.AccountID)
	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	amountDec, err := decimal.NewFromString(arg.Amount)
	if err != nil || amountDec.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount).Msg("invalid withdrawal amount")
		return domain.WithdrawalRequest{}, domain.ErrInvalidAmount
	}

	if account.Currency != arg.Currency {
		return domain.WithdrawalRequest{}, domain.ErrCurrencyMismatch
	}

	if account.Balance.LessThan(amountDec) {
		return domain.WithdrawalRequest{}, domain.ErrInsufficientFunds
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	if settings.MaintenanceMode {
		return domain.WithdrawalRequest{}, domain.ErrMaintenanceMode
	}

	if !account.IsVerifiedKYC {
		return domain.WithdrawalRequest{}, domain.ErrKYCRequired
	}

	req := domain.WithdrawalRequest{
		AccountID: account.ID,
		Amount:    amountDec,
		Currency:  arg.Currency,
		Address:   arg.Address,
		Network:   arg.Network,
	}

	adminMsg := fmt.Sprintf("New withdrawal request of %s %s from %s.", amountDec, arg.Currency, account.Name)

	return s.withdrawals.CreateTx(ctx, req, adminMsg)
}

// Process settles a Pending request on behalf of an admin. Approval
// re-validates the owner's balance at settlement time; if it no longer
// covers the amount the request is auto-rejected and the updated
// request is returned alongside ErrInsufficientFunds.
func (s *Service) Process(ctx context.Context, requestID string, approve bool, adminID string) (domain.WithdrawalRequest, error) {
	req, err := s.withdrawals.Get(ctx, requestID)
	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	arg := withdrawalrepo.ProcessParams{
		RequestID: requestID,
		Approve:   approve,
		AdminID:   adminID,
		TxDesc:    fmt.Sprintf("Withdrawal to %s", req.Address),
		ApprovedMsg: fmt.Sprintf(
			"Your withdrawal of %s %s has been approved and processed.", req.Amount, req.Currency),
		RejectedMsg: fmt.Sprintf(
			"Your withdrawal of %s %s was rejected.", req.Amount, req.Currency),
		ShortfallMsg: fmt.Sprintf(
			"Your withdrawal of %s %s was rejected due to insufficient funds.", req.Amount, req.Currency),
	}

	return s.withdrawals.ProcessTx(ctx, arg)
}

// ListForAccount returns the account's withdrawal requests newest-first.
func (s *Service) ListForAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error) {
	return s.withdrawals.ListForAccount(ctx, accountID)
}

// List returns all withdrawal requests newest-first.
func (s *Service) List(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	return s.withdrawals.List(ctx)
}
