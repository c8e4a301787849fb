// Package tokenpkg provides access token creation and verification.
package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrExpiredToken indicates that the token has expired.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidToken indicates that the token could not be verified.
	ErrInvalidToken = errors.New("token is invalid")
)

// Payload contains the payload data of the token. AccountID and IsAdmin
// together form the session context threaded into every call.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	IsAdmin   bool      `json:"is_admin"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NewPayload creates a token payload for the given account.
func NewPayload(accountID string, isAdmin bool, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		ID:        tokenID,
		AccountID: accountID,
		IsAdmin:   isAdmin,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	return payload, nil
}

// Valid returns an error if the token payload has expired.
func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}

// Maker is an interface for managing access tokens.
type Maker interface {
	// CreateToken creates a token for the given account and duration.
	CreateToken(accountID string, isAdmin bool, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid.
	VerifyToken(token string) (*Payload, error)
}
