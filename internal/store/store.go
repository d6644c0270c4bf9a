// Package store is the document-style persistence contract used by the
// ledger and leaderboard: get by id, set with merge or replace, and
// equality-filtered queries.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidField      = errors.New("invalid field")
)

// Fields is a partial document keyed by column name.
type Fields map[string]interface{}

// Increment adds By to the stored value instead of overwriting it.
// When the document does not exist yet, By becomes the initial value.
type Increment struct {
	By interface{}
}

// Inc returns an Increment of by.
func Inc(by interface{}) Increment {
	return Increment{By: by}
}

// SetOptions controls Set. With Merge only the given fields are written;
// without it the document is replaced by exactly the given fields.
type SetOptions struct {
	Merge bool
}

// Filter is an equality condition on one field.
type Filter struct {
	Field string
	Value interface{}
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

type QueryOptions struct {
	OrderBy    string
	Descending bool
	Limit      int
}

// DocumentStore is implemented by every persistence backend.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string, dst interface{}) error
	Set(ctx context.Context, collection, id string, fields Fields, opts SetOptions) error
	QueryEqual(ctx context.Context, collection string, filters []Filter, opts QueryOptions, dst interface{}) error
}

// Transactor is implemented by stores that can apply several writes atomically.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(tx DocumentStore) error) error
}
