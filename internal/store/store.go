// Package store implements persistence for users, companies, reviews and
// review votes on top of gorm. Stores return typed sentinel errors for domain
// conditions; anything else propagates as a raw storage error.
package store

import "errors"

var (
	// ErrNotFound covers both a missing row and an ownership mismatch on
	// owner-scoped mutations. Callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateReview means the (user, company) pair already has a review.
	ErrDuplicateReview = errors.New("duplicate review")
)

// Page carries limit/offset pagination bounds, normalized by the caller.
type Page struct {
	Limit  int
	Offset int
}
