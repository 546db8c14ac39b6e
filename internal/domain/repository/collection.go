package repository

import (
	"context"
	"errors"

	"github.com/openboard/openboard-api/internal/domain/entity"
)

// ErrNotFound reports a lookup or mutation that matched no document. It
// is a distinct signal, never conflated with an empty list result.
var ErrNotFound = errors.New("document not found")

// Collection is the document-store contract each resource collection is
// served by. Filters are equality predicates on a single field; lists
// come back in insertion order. UpdateByID merges an arbitrary partial
// document into the stored one; there is no field whitelist.
type Collection interface {
	InsertOne(ctx context.Context, doc map[string]any) (string, error)
	FindByID(ctx context.Context, id string) (entity.Document, error)
	FindOne(ctx context.Context, field, value string) (entity.Document, error)
	FindMany(ctx context.Context, field, value string) ([]entity.Document, error)
	UpdateByID(ctx context.Context, id string, patch map[string]any) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}
