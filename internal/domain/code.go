package domain

import "math/rand"

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength is the length of generated listing codes.
	CodeLength = 8
)

// NewListingCode produces a listing code drawn uniformly from uppercase
// letters and digits. Uniqueness is enforced by the store's primary key;
// callers retry on ErrDuplicateCode.
func NewListingCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
