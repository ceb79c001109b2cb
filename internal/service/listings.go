package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnlibri/libribot/core/logger"
	"github.com/bnlibri/libribot/internal/domain"
	"github.com/bnlibri/libribot/internal/publisher"
	"github.com/bnlibri/libribot/internal/render"
	"github.com/bnlibri/libribot/internal/storage"
)

// codeAttempts bounds how many fresh codes Create tries when an insert trips
// the primary key. At 36^8 possible codes a second collision is effectively
// a broken store, not bad luck.
const codeAttempts = 5

// Listings manages the lifecycle of published book listings.
type Listings struct {
	store *storage.Store
	pub   publisher.Publisher
}

// NewListings returns a listing service backed by the given store and channel.
func NewListings(store *storage.Store, pub publisher.Publisher) *Listings {
	return &Listings{store: store, pub: pub}
}

// Create publishes the draft to the channel and then persists it. The row is
// only written after the channel accepted the post, so a reachable row always
// has a live channel reference. A publish failure is returned as-is and
// nothing is persisted.
func (s *Listings) Create(ctx context.Context, seller domain.User, d domain.Draft) (domain.Book, error) {
	card := render.BookCard(d.Book(seller.ID, 0), seller)
	messageID, err := s.pub.Publish(ctx, card, d.Photo)
	if err != nil {
		return domain.Book{}, err
	}

	book := d.Book(seller.ID, messageID)
	for attempt := 1; ; attempt++ {
		err = s.store.InsertBook(ctx, book)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateCode) || attempt >= codeAttempts {
			return domain.Book{}, fmt.Errorf("persist listing: %w", err)
		}
		logger.Warn(ctx, "service.listings", "listing.code_collision",
			slog.String("code", book.Code),
			slog.Int("attempt", attempt))
		book.Code = domain.NewListingCode()
	}

	logger.Info(ctx, "service.listings", "listing.created",
		slog.String("code", book.Code),
		slog.Int64("user_id", seller.ID),
		slog.Int64("message_id", book.MessageID))
	return book, nil
}

// Lookup fetches a listing on behalf of a requester. Missing rows map to
// ErrNotFound and foreign rows to ErrNotOwner, so callers can gate delete
// screens on the same rules the delete itself enforces.
func (s *Listings) Lookup(ctx context.Context, userID int64, code string) (domain.Book, error) {
	book, ok := s.store.GetBook(ctx, code)
	if !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	if book.UserID != userID {
		logger.Warn(ctx, "service.listings", "listing.owner_mismatch",
			slog.String("code", code),
			slog.Int64("user_id", userID),
			slog.Int64("owner_id", book.UserID))
		return domain.Book{}, domain.ErrNotOwner
	}
	return book, nil
}

// Delete retracts the channel post and then removes the row. Only the owner
// may delete a listing. A retract failure leaves the row untouched so the
// channel reference is never orphaned.
func (s *Listings) Delete(ctx context.Context, userID int64, code string) error {
	book, err := s.Lookup(ctx, userID, code)
	if err != nil {
		return err
	}
	if err := s.pub.Retract(ctx, book.MessageID); err != nil {
		return err
	}
	if err := s.store.DeleteBook(ctx, code); err != nil {
		return err
	}
	logger.Info(ctx, "service.listings", "listing.deleted",
		slog.String("code", code),
		slog.Int64("user_id", userID))
	return nil
}

// Owned returns the requester's own listings.
func (s *Listings) Owned(ctx context.Context, userID int64) []domain.Book {
	return s.store.BooksByUser(ctx, userID)
}

// SearchISBN strips separators from the query and returns matching listings
// together with their sellers, keyed by owner id for rendering.
func (s *Listings) SearchISBN(ctx context.Context, raw string) (string, []domain.Book, map[int64]domain.User) {
	isbn := domain.NormalizeISBN(raw)
	books := s.store.BooksByISBN(ctx, isbn)
	sellers := make(map[int64]domain.User, len(books))
	for _, b := range books {
		if _, seen := sellers[b.UserID]; seen {
			continue
		}
		if u, ok := s.store.GetUser(ctx, b.UserID); ok {
			sellers[b.UserID] = u
		}
	}
	return isbn, books, sellers
}
