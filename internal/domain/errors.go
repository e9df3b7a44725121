package domain

import "errors"

var (
	// ErrDimensionMismatch means a vector's length does not match the
	// store's fixed dimension. Configuration error; never retried.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrDuplicateID means a create targeted an id already in the store.
	ErrDuplicateID = errors.New("duplicate item id")

	// ErrNotFound means a remove or lookup targeted an absent id.
	ErrNotFound = errors.New("item not found")

	// ErrEmptyStore means no vectors are available to aggregate or
	// search against.
	ErrEmptyStore = errors.New("vector store is empty")
)
