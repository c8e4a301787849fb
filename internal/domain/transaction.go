package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a zero, negative or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrCurrencyMismatch indicates that the operation currency differs from the account currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrRateUnavailable indicates that no exchange rate is configured for the currency pair.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

// TransactionType enumerates the kinds of ledger records.
type TransactionType string

// All transaction types.
const (
	TypeTransfer   TransactionType = "Transfer"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypeDeposit    TransactionType = "Deposit"
	TypeFee        TransactionType = "Fee"
	TypeExchange   TransactionType = "Exchange"
)

// TransactionStatus enumerates the states of a ledger record.
type TransactionStatus string

// All transaction statuses.
const (
	StatusPending    TransactionStatus = "Pending"
	StatusCompleted  TransactionStatus = "Completed"
	StatusRejected   TransactionStatus = "Rejected"
	StatusFeePending TransactionStatus = "Fee Pending"
)

// Transaction holds one ledger record. A completed transfer always
// produces exactly two Transaction records (debit and credit) that share
// amount and currency and are cross-linked via FromAccountID/ToAccountID.
type Transaction struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"` // must be positive
	Currency      string            `json:"currency"`
	CreatedAt     time.Time         `json:"created_at"`
	Description   string            `json:"description"`
	FromAccountID string            `json:"from_account_id,omitempty"`
	ToAccountID   string            `json:"to_account_id,omitempty"`
	ToAddress     string            `json:"to_address,omitempty"`
	NetworkFee    decimal.Decimal   `json:"network_fee,omitempty"`
	RelatedTxID   string            `json:"related_tx_id,omitempty"`
}

// TransferTxResult is the result of a completed transfer.
type TransferTxResult struct {
	SenderTx    Transaction `json:"sender_tx"`
	RecipientTx Transaction `json:"recipient_tx"`
	Sender      Account     `json:"sender"`
	Recipient   Account     `json:"recipient"`
}

// TransferTxParams is the input data for the atomic transfer commit.
// Descriptions and notification messages are composed by the ledger
// service, which has already resolved both parties.
type TransferTxParams struct {
	SenderID      string
	RecipientID   string
	Amount        decimal.Decimal
	Currency      string // sender's currency; the credit keeps it
	NetworkFee    decimal.Decimal
	SenderDesc    string
	RecipientDesc string
	SenderMsg     string
	RecipientMsg  string
}
