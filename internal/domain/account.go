// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRecipientNotFound indicates that no account matches the recipient email.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrSelfTransfer indicates an attempt to transfer to the sending account.
	ErrSelfTransfer = errors.New("cannot transfer to yourself")
	// ErrDuplicateEmail indicates that an account with the given email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPIN indicates that the supplied transfer PIN does not match.
	ErrInvalidPIN = errors.New("invalid transfer PIN")
	// ErrKYCRequired indicates that the account has not passed KYC verification.
	ErrKYCRequired = errors.New("KYC verification required")
)

// Account holds a user's single-currency balance plus identity and
// compliance attributes. Balance is always non-negative and Currency is
// always one of the supported currencies; the ledger engine owns both
// invariants, the store does not re-check them.
type Account struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Password      string          `json:"password,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsVerifiedKYC bool            `json:"is_verified_kyc"`
	TransferPIN   string          `json:"transfer_pin,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	AccountNumber string          `json:"account_number"`
}

// Admin holds an administrator's credentials.
type Admin struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AccountProfile is Account data excluding credentials.
type AccountProfile struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsVerifiedKYC bool            `json:"is_verified_kyc"`
	Phone         string          `json:"phone,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	AccountNumber string          `json:"account_number"`
	HasPIN        bool            `json:"has_pin"`
}

// Session identifies who is currently signed in. It is part of the
// persisted snapshot so a restarted process resumes the same session.
type Session struct {
	AccountID string `json:"account_id,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}
