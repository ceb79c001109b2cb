// Package storage is the record store for user profiles and book listings.
//
// Reads swallow storage failures: errors are logged and reported to callers
// as "absent", so a caller cannot distinguish a missing row from a failing
// store. Writes return errors, and listing inserts surface key collisions as
// domain.ErrDuplicateCode.
package storage

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store provides record-level access to the users and books tables.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// rebind converts ?-style placeholders to the driver's bindvar format so the
// same queries run on postgres and on the sqlite test fixture.
func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

const pqUniqueViolation = "23505"

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	// sqlite driver used by the in-memory test fixture
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
