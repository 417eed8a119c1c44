package dataset

import (
	"context"
	"slices"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

// Store exposes the loaded message collection.
type Store interface {
	All() []model.Message
	Len() int
	Source() string
}

// MemoryStore implements Store with an immutable in-memory slice.
type MemoryStore struct {
	items  []model.Message
	source string
}

// NewMemoryStore returns a MemoryStore holding a copy of items.
func NewMemoryStore(items []model.Message, source string) *MemoryStore {
	return &MemoryStore{items: slices.Clone(items), source: source}
}

// Open loads path and wraps the result in a MemoryStore.
func Open(ctx context.Context, path string) (*MemoryStore, error) {
	items, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	source := path
	if source == "" {
		source = SeedSource
	}
	return NewMemoryStore(items, source), nil
}

// All returns a copy of every message in load order.
func (s *MemoryStore) All() []model.Message {
	return slices.Clone(s.items)
}

// Len returns the number of loaded messages.
func (s *MemoryStore) Len() int {
	return len(s.items)
}

// Source describes where the messages were loaded from.
func (s *MemoryStore) Source() string {
	return s.source
}
