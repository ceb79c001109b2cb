// Package service holds the application services sitting between the
// conversation layer and storage. Services own the cross-cutting rules the
// storage layer does not: publish-before-persist, ownership checks, code
// collision retries.
package service

import (
	"context"
	"log/slog"

	"github.com/bnlibri/libribot/core/logger"
	"github.com/bnlibri/libribot/internal/domain"
	"github.com/bnlibri/libribot/internal/storage"
)

// Users manages seller profiles.
type Users struct {
	store *storage.Store
}

// NewUsers returns a profile service backed by the given store.
func NewUsers(store *storage.Store) *Users {
	return &Users{store: store}
}

// SaveProfile stores the profile, replacing any previous version wholesale.
// Resubmitting contact data is how sellers edit it.
func (s *Users) SaveProfile(ctx context.Context, u domain.User) error {
	if err := s.store.UpsertUser(ctx, u); err != nil {
		return err
	}
	logger.Info(ctx, "service.users", "profile.saved",
		slog.Int64("user_id", u.ID))
	return nil
}

// Get returns the stored profile, or false when none exists.
func (s *Users) Get(ctx context.Context, id int64) (domain.User, bool) {
	return s.store.GetUser(ctx, id)
}
