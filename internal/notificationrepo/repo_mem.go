// Package notificationrepo manages repository layer of the notification log.
package notificationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates notification repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns notification RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Add appends the notification, assigning id, timestamp and the unread
// flag, and returns the stored record.
func (r *RepoMem) Add(ctx context.Context, n domain.AppNotification) (domain.AppNotification, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	n.Read = false

	err := r.db.Update(ctx, func(s *statestore.State) error {
		s.Notifications = append(s.Notifications, n)
		return nil
	})

	if err != nil {
		return domain.AppNotification{}, err
	}

	return n, nil
}

// MarkRead flips the read flag of the notification with the given id.
// The log is append-only otherwise.
func (r *RepoMem) MarkRead(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	err := r.db.Update(ctx, func(s *statestore.State) error {
		i := s.NotificationIndex(id)
		if i < 0 {
			return domain.ErrRequestNotFound
		}

		s.Notifications[i].Read = true

		return nil
	})

	if err != nil {
		l.Info().Err(err).Str("notification_id", id).Send()
	}

	return err
}

// ListForAccount returns the account's notifications newest-first,
// excluding admin-only entries.
func (r *RepoMem) ListForAccount(ctx context.Context, accountID string) ([]domain.AppNotification, error) {
	items := []domain.AppNotification{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Notifications) - 1; i >= 0; i-- {
			n := s.Notifications[i]
			if n.AccountID == accountID && !n.AdminOnly {
				items = append(items, n)
			}
		}

		return nil
	})

	return items, err
}

// ListForAdmins returns the admin broadcast notifications newest-first.
func (r *RepoMem) ListForAdmins(ctx context.Context) ([]domain.AppNotification, error) {
	items := []domain.AppNotification{}

	err := r.db.View(func(s *statestore.State) error {
		for i := len(s.Notifications) - 1; i >= 0; i-- {
			if s.Notifications[i].AdminOnly {
				items = append(items, s.Notifications[i])
			}
		}

		return nil
	})

	return items, err
}
