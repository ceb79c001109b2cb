package domain

import "errors"

var (
	// ErrNotFound indicates the referenced listing code does not exist.
	// Storage failures on reads are deliberately reported the same way.
	ErrNotFound = errors.New("listing not found")

	// ErrNotOwner indicates the requester does not own the targeted listing.
	ErrNotOwner = errors.New("listing owned by another user")

	// ErrDuplicateCode indicates an insert collided with an existing listing code.
	ErrDuplicateCode = errors.New("listing code already exists")

	// ErrNotRegistered indicates the requester has no stored profile yet.
	ErrNotRegistered = errors.New("user not registered")
)
