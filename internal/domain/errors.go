// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the request failed input validation.
var ErrValidation = errors.New("validation failed")

// ErrAlreadyResolved indicates the queue entry was resolved by another reviewer.
var ErrAlreadyResolved = errors.New("entry already resolved")

// ErrPartialCommit indicates a price record was persisted but the queue entry
// could not be marked resolved. The store holds a record for an entry that is
// still pending; a reconciliation pass has to repair it.
var ErrPartialCommit = errors.New("partial commit: price record persisted, entry still pending")
