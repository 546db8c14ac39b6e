package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

// Collection is an in-memory implementation of the document-store
// contract. It backs tests; the server wires the postgres adapter.
type Collection struct {
	mu   sync.RWMutex
	docs []entity.Document
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) InsertOne(_ context.Context, doc map[string]any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.docs = append(c.docs, entity.Document{ID: id, Fields: maps.Clone(doc)})
	return id, nil
}

func (c *Collection) FindByID(_ context.Context, id string) (entity.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if d.ID == id {
			return clone(d), nil
		}
	}
	return entity.Document{}, repository.ErrNotFound
}

func (c *Collection) FindOne(_ context.Context, field, value string) (entity.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if d.GetString(field) == value {
			return clone(d), nil
		}
	}
	return entity.Document{}, repository.ErrNotFound
}

func (c *Collection) FindMany(_ context.Context, field, value string) ([]entity.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Document, 0)
	for _, d := range c.docs {
		if field == "" || d.GetString(field) == value {
			out = append(out, clone(d))
		}
	}
	return out, nil
}

func (c *Collection) UpdateByID(_ context.Context, id string, patch map[string]any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if d.ID == id {
			merged := maps.Clone(d.Fields)
			for k, v := range patch {
				merged[k] = v
			}
			c.docs[i].Fields = merged
			return 1, nil
		}
	}
	return 0, nil
}

func (c *Collection) DeleteByID(_ context.Context, id string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if d.ID == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func clone(d entity.Document) entity.Document {
	return entity.Document{ID: d.ID, Fields: maps.Clone(d.Fields)}
}

var _ repository.Collection = (*Collection)(nil)
