// Package kycservice manages business logic layer of KYC verification.
package kycservice

import (
	"context"
	"fmt"

	"github.com/brixium/brixium-bank/internal/domain"
)

// AccountRepo provides data access layer interface needed by KYC service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package kycservice
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
}

// KYCRepo commits KYC request mutations atomically.
type KYCRepo interface {
	Get(ctx context.Context, id string) (domain.KYCRequest, error)
	GetForAccount(ctx context.Context, accountID string) (domain.KYCRequest, error)
	SubmitTx(ctx context.Context, accountID string, documentURLs []string, adminMsg string) (domain.KYCRequest, error)
	ReviewTx(ctx context.Context, requestID string, approve bool, adminID, ownerMsg string) (domain.KYCRequest, error)
	List(ctx context.Context) ([]domain.KYCRequest, error)
}

// Service facilitates KYC service layer logic.
type Service struct {
	accounts AccountRepo
	kyc      KYCRepo
}

// New returns KYC service struct to manage verification bussines logic.
func New(ar AccountRepo, kr KYCRepo) *Service {
	return &Service{
		accounts: ar,
		kyc:      kr,
	}
}

// Submit files a verification request with the given document
// references. Submitting while a Pending or Approved request exists is
// a no-op that returns the existing request.
func (s *Service) Submit(ctx context.Context, accountID string, documentURLs []string) (domain.KYCRequest, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.KYCRequest{}, err
	}

	adminMsg := fmt.Sprintf("New KYC submission from %s.", account.Name)

	return s.kyc.SubmitTx(ctx, accountID, documentURLs, adminMsg)
}

// Review approves or rejects a Pending request on behalf of an admin.
func (s *Service) Review(ctx context.Context, requestID string, approve bool, adminID string) (domain.KYCRequest, error) {
	ownerMsg := "Your KYC verification was rejected. Please review your documents and submit again."
	if approve {
		ownerMsg = "Congratulations! Your KYC verification has been approved."
	}

	return s.kyc.ReviewTx(ctx, requestID, approve, adminID, ownerMsg)
}

// GetForAccount returns the account's verification request.
func (s *Service) GetForAccount(ctx context.Context, accountID string) (domain.KYCRequest, error) {
	return s.kyc.GetForAccount(ctx, accountID)
}

// List returns all verification requests newest-first.
func (s *Service) List(ctx context.Context) ([]domain.KYCRequest, error) {
	return s.kyc.List(ctx)
}
