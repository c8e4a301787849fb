// Package settingsrepo manages repository layer of application settings.
package settingsrepo

import (
	"context"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/statestore"
)

// RepoMem facilitates settings repository layer logic on the state store.
type RepoMem struct {
	db *statestore.DB
}

// NewRepoMem returns settings RepoMem.
func NewRepoMem(db *statestore.DB) *RepoMem {
	return &RepoMem{db: db}
}

// Get returns the current application settings.
func (r *RepoMem) Get(ctx context.Context) (domain.AppSettings, error) {
	var settings domain.AppSettings

	err := r.db.View(func(s *statestore.State) error {
		settings = s.Settings
		return nil
	})

	return settings, err
}

// Update merges the patch over the stored settings and returns the result.
func (r *RepoMem) Update(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error) {
	var settings domain.AppSettings

	err := r.db.Update(ctx, func(s *statestore.State) error {
		s.Settings = patch.Apply(s.Settings)
		settings = s.Settings

		return nil
	})

	return settings, err
}
