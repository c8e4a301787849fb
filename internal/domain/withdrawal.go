package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequestNotFound indicates that the withdrawal or KYC request is not found.
	ErrRequestNotFound = errors.New("request not found")
	// ErrAlreadyProcessed indicates that the request has already left the Pending state.
	ErrAlreadyProcessed = errors.New("request already processed")
	// ErrMaintenanceMode indicates that withdrawals are disabled for maintenance.
	ErrMaintenanceMode = errors.New("withdrawals are temporarily disabled due to system maintenance")
)

// WithdrawalRequest tracks a user's request to move funds to an external
// address. Status only ever moves Pending -> Completed or
// Pending -> Rejected. Funds are not reserved at request time; the
// balance is debited on approval only.
type WithdrawalRequest struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"account_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Address     string            `json:"address"`
	Network     string            `json:"network,omitempty"`
	Status      TransactionStatus `json:"status"`
	RequestedAt time.Time         `json:"requested_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
	AdminID     string            `json:"admin_id,omitempty"`
}
