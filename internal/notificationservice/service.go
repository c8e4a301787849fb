// Package notificationservice manages business logic layer of in-app
// notifications.
package notificationservice

import (
	"context"

	"github.com/brixium/brixium-bank/internal/domain"
)

// NotificationRepo provides data access layer interface needed by notification service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package notificationservice
type NotificationRepo interface {
	Add(ctx context.Context, n domain.AppNotification) (domain.AppNotification, error)
	MarkRead(ctx context.Context, id string) error
	ListForAccount(ctx context.Context, accountID string) ([]domain.AppNotification, error)
	ListForAdmins(ctx context.Context) ([]domain.AppNotification, error)
}

// Service facilitates notification service layer logic.
type Service struct {
	notifications NotificationRepo
}

// New returns notification service struct.
func New(nr NotificationRepo) *Service {
	return &Service{notifications: nr}
}

// Notify delivers an informational notification to one account, or to
// every admin when n.AdminOnly is set and no account id is given.
func (s *Service) Notify(ctx context.Context, n domain.AppNotification) (domain.AppNotification, error) {
	if n.Type == "" {
		n.Type = domain.NotifInfo
	}

	return s.notifications.Add(ctx, n)
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// ListForAccount returns the account's notifications newest-first,
// admin broadcasts excluded.
func (s *Service) ListForAccount(ctx context.Context, accountID string) ([]domain.AppNotification, error) {
	return s.notifications.ListForAccount(ctx, accountID)
}

// ListForAdmins returns admin broadcasts newest-first.
func (s *Service) ListForAdmins(ctx context.Context) ([]domain.AppNotification, error) {
	return s.notifications.ListForAdmins(ctx)
}
