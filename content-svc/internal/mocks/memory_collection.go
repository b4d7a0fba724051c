package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"bella-vista/domain"
)

// MemoryCollection is an in-memory stand-in for a Mongo collection, used by
// tests that exercise whole request flows rather than single calls.
type MemoryCollection[T domain.Identifiable] struct {
	mu      sync.Mutex
	order   []string
	records map[string]T

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryCollection[T domain.Identifiable](seed ...T) *MemoryCollection[T] {
	c := &MemoryCollection[T]{records: map[string]T{}}
	for _, r := range seed {
		c.order = append(c.order, r.GetID())
		c.records[r.GetID()] = r
	}
	return c
}

func (c *MemoryCollection[T]) List(_ context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out, nil
}

func (c *MemoryCollection[T]) Get(_ context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	r, ok := c.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (c *MemoryCollection[T]) Insert(_ context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.records[record.GetID()]; !ok {
		c.order = append(c.order, record.GetID())
	}
	c.records[record.GetID()] = record
	return nil
}

// Update overlays fields onto the JSON form of the stored record, which
// mirrors what $set does to the document.
func (c *MemoryCollection[T]) Update(_ context.Context, id string, fields map[string]any) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	current, ok := c.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	if raw, err = json.Marshal(doc); err != nil {
		return nil, err
	}
	var updated T
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	c.records[id] = updated
	return &updated, nil
}

func (c *MemoryCollection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.records[id]; !ok {
		return nil
	}
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
