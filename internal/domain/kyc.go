package domain

import "time"

// KYCStatus enumerates the states of a KYC request.
type KYCStatus string

// All KYC statuses.
const (
	KYCNotSubmitted KYCStatus = "Not Submitted"
	KYCPending      KYCStatus = "Pending"
	KYCApproved     KYCStatus = "Approved"
	KYCRejected     KYCStatus = "Rejected"
)

// Active reports whether the status blocks a new submission. At most one
// Pending or Approved request may exist per account.
func (s KYCStatus) Active() bool {
	return s == KYCPending || s == KYCApproved
}

// KYCRequest tracks an identity verification submission.
type KYCRequest struct {
	ID           string     `json:"id"`
	AccountID    string     `json:"account_id"`
	DocumentURLs []string   `json:"document_urls"`
	Status       KYCStatus  `json:"status"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewerID   string     `json:"reviewer_id,omitempty"`
}
