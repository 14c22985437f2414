package repositories

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

// memoryStore keeps encoded records so callers never share state with it.
type memoryStore[T models.Entity] struct {
	collection string
	mu         sync.RWMutex
	items      map[string][]byte
	order      []string
	log        logger.Logger
}

func NewMemoryStore[T models.Entity](collection string) Store[T] {
	return &memoryStore[T]{
		collection: collection,
		items:      make(map[string][]byte),
		log:        logger.New("memoryStore:" + collection),
	}
}

func (s *memoryStore[T]) Collection() string {
	return s.collection
}

func (s *memoryStore[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0, len(s.order))
	for _, id := range s.order {
		item, err := s.decode(s.items[id])
		if err != nil {
			return nil, s.log.Function("List").Err("failed to decode record", err, "id", id)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *memoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	data, ok := s.items[id]
	if !ok {
		return zero, s.log.Function("Get").ErrorWithType(types.ErrNotFound, "record not found", "id", id)
	}
	return s.decode(data)
}

func (s *memoryStore[T]) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[id]
	return ok, nil
}

func (s *memoryStore[T]) Create(ctx context.Context, item T) (T, error) {
	log := s.log.Function("Create")

	id := item.GetID()
	if id == "" {
		return item, log.ErrorWithType(types.ErrValidation, "record id is required")
	}

	data, err := json.Marshal(item)
	if err != nil {
		return item, log.Err("failed to encode record", err, "id", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return item, log.ErrorWithType(types.ErrConflict, "record already exists", "id", id)
	}
	s.items[id] = data
	s.order = append(s.order, id)

	return s.decode(data)
}

func (s *memoryStore[T]) Mutate(ctx context.Context, id string, fn MutateFunc[T]) (T, error) {
	log := s.log.Function("Mutate")

	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	data, ok := s.items[id]
	if !ok {
		return zero, log.ErrorWithType(types.ErrNotFound, "record not found", "id", id)
	}

	item, err := s.decode(data)
	if err != nil {
		return zero, log.Err("failed to decode record", err, "id", id)
	}

	if err := fn(&item); err != nil {
		return zero, err
	}

	if item.GetID() != id {
		return zero, log.ErrorWithType(types.ErrValidation, "record id cannot change", "id", id)
	}

	updated, err := json.Marshal(item)
	if err != nil {
		return zero, log.Err("failed to encode record", err, "id", id)
	}
	s.items[id] = updated

	return item, nil
}

func (s *memoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return s.log.Function("Delete").ErrorWithType(types.ErrNotFound, "record not found", "id", id)
	}

	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(existing string) bool { return existing == id })
	return nil
}

func (s *memoryStore[T]) EnsureSeed(ctx context.Context, seed SeedFunc[T]) (int, error) {
	log := s.log.Function("EnsureSeed")

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) > 0 {
		return 0, nil
	}

	items, err := seed()
	if err != nil {
		return 0, log.Err("failed to build seed records", err)
	}

	inserted := 0
	for _, item := range items {
		id := item.GetID()
		if _, exists := s.items[id]; exists || id == "" {
			continue
		}
		data, err := json.Marshal(item)
		if err != nil {
			return inserted, log.Err("failed to encode seed record", err, "id", id)
		}
		s.items[id] = data
		s.order = append(s.order, id)
		inserted++
	}

	log.Info("Seeded collection", "count", inserted)
	return inserted, nil
}

func (s *memoryStore[T]) decode(data []byte) (T, error) {
	var item T
	err := json.Unmarshal(data, &item)
	return item, err
}
