// Package domain holds the core types of the book resale flow: user profiles,
// book listings, the in-progress draft, the enumerated input domains, and the
// error taxonomy shared across services.
package domain

// User is a seller profile keyed by the Telegram user id.
type User struct {
	ID        int64  `db:"user_id"`
	Name      string `db:"name"`
	Instagram string `db:"instagram"`
	Phone     string `db:"phone"`
}
