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

const bookColumns = `code, user_id, message_id, name, year, subject, condition, isbn, price, photo`

// InsertBook persists a completed listing. A primary key collision is
// reported as domain.ErrDuplicateCode so the caller can regenerate the code.
func (s *Store) InsertBook(ctx context.Context, b domain.Book) error {
	query := s.rebind(`
		INSERT INTO books (` + bookColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		b.Code, b.UserID, b.MessageID, b.Name, b.Year, b.Subject, b.Condition, b.ISBN, b.Price, b.Photo)
	if err != nil {
		if isDuplicate(err) {
			logger.Warn(ctx, "db", "books.insert.duplicate",
				slog.String("code", b.Code),
				slog.Int64("user_id", b.UserID),
			)
			return domain.ErrDuplicateCode
		}
		logger.Error(ctx, "db", "books.insert",
			slog.String("code", b.Code),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("insert book %s: %w", b.Code, err)
	}
	logger.Debug(ctx, "db", "books.insert",
		slog.String("status", "ok"),
		slog.String("code", b.Code),
		slog.Int64("user_id", b.UserID),
	)
	return nil
}

// GetBook returns the listing stored under code, or absent. Storage failures
// are logged and reported as absent.
func (s *Store) GetBook(ctx context.Context, code string) (domain.Book, bool) {
	var b domain.Book
	query := s.rebind(`SELECT ` + bookColumns + ` FROM books WHERE code = ?`)
	err := s.db.GetContext(ctx, &b, query, code)
	switch {
	case err == nil:
		return b, true
	case errors.Is(err, sql.ErrNoRows):
		return domain.Book{}, false
	default:
		logger.Error(ctx, "db", "books.get",
			slog.String("code", code),
			slog.String("err", err.Error()),
		)
		return domain.Book{}, false
	}
}

// DeleteBook removes the listing stored under code. The channel reference is
// stored on the same row, so both disappear together.
func (s *Store) DeleteBook(ctx context.Context, code string) error {
	query := s.rebind(`DELETE FROM books WHERE code = ?`)
	if _, err := s.db.ExecContext(ctx, query, code); err != nil {
		logger.Error(ctx, "db", "books.delete",
			slog.String("code", code),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("delete book %s: %w", code, err)
	}
	logger.Debug(ctx, "db", "books.delete",
		slog.String("status", "ok"),
		slog.String("code", code),
	)
	return nil
}

// BooksByUser returns the listings owned by userID, empty on failure.
func (s *Store) BooksByUser(ctx context.Context, userID int64) []domain.Book {
	var books []domain.Book
	query := s.rebind(`SELECT ` + bookColumns + ` FROM books WHERE user_id = ?`)
	if err := s.db.SelectContext(ctx, &books, query, userID); err != nil {
		logger.Error(ctx, "db", "books.by_user",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return books
}

// BooksByISBN returns the listings stored under the given (normalized) ISBN,
// empty on failure.
func (s *Store) BooksByISBN(ctx context.Context, isbn string) []domain.Book {
	var books []domain.Book
	query := s.rebind(`SELECT ` + bookColumns + ` FROM books WHERE isbn = ?`)
	if err := s.db.SelectContext(ctx, &books, query, isbn); err != nil {
		logger.Error(ctx, "db", "books.by_isbn",
			slog.String("isbn", isbn),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return books
}
