// Package settingsservice manages business logic layer of application
// settings.
package settingsservice

import (
	"context"

	"github.com/brixium/brixium-bank/internal/domain"
)

// SettingsRepo provides data access layer interface needed by settings service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package settingsservice
type SettingsRepo interface {
	Get(ctx context.Context) (domain.AppSettings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error)
}

// Service facilitates settings service layer logic.
type Service struct {
	settings SettingsRepo
}

// New returns settings service struct.
func New(sr SettingsRepo) *Service {
	return &Service{settings: sr}
}

// Get returns the current application settings.
func (s *Service) Get(ctx context.Context) (domain.AppSettings, error) {
	return s.settings.Get(ctx)
}

// Update merges the patch over the stored settings. Nil patch fields
// leave the current value untouched.
func (s *Service) Update(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error) {
	return s.settings.Update(ctx, patch)
}
