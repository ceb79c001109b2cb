package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnlibri/libribot/core/logger"
	"github.com/bnlibri/libribot/internal/domain"
	"log/slog"
)

// UpsertUser inserts or replaces the profile for u.ID. Conflicting rows are
// replaced wholesale, never merged.
func (s *Store) UpsertUser(ctx context.Context, u domain.User) error {
	query := s.rebind(`
		INSERT INTO users (user_id, name, instagram, phone)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			instagram = excluded.instagram,
			phone = excluded.phone`)
	if _, err := s.db.ExecContext(ctx, query, u.ID, u.Name, u.Instagram, u.Phone); err != nil {
		logger.Error(ctx, "db", "users.upsert",
			slog.Int64("user_id", u.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	logger.Debug(ctx, "db", "users.upsert",
		slog.String("status", "ok"),
		slog.Int64("user_id", u.ID),
	)
	return nil
}

// GetUser returns the profile for id, or absent. Storage failures are logged
// and reported as absent.
func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, bool) {
	var u domain.User
	query := s.rebind(`SELECT user_id, name, instagram, phone FROM users WHERE user_id = ?`)
	err := s.db.GetContext(ctx, &u, query, id)
	switch {
	case err == nil:
		return u, true
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, false
	default:
		logger.Error(ctx, "db", "users.get",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return domain.User{}, false
	}
}
