package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRecord struct {
	session   Session
	delivered map[string]struct{}
}

// MemoryStore is a mutex-guarded in-process Store. It backs the "memory"
// store mode for single-node development runs and the package tests; the
// single lock makes every operation, including the read-modify-write in
// AppendDelivered, atomic per call.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memoryRecord)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	for {
		if _, taken := s.sessions[token]; !taken {
			break
		}
		token = uuid.NewString()
	}
	s.sessions[token] = &memoryRecord{
		session:   Session{Token: token, CreatedAt: time.Now().UTC()},
		delivered: make(map[string]struct{}),
	}
	return token, nil
}

func (s *MemoryStore) Exists(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[token]
	return ok, nil
}

func (s *MemoryStore) Delivered(ctx context.Context, token string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	ids := make([]string, 0, len(record.delivered))
	for id := range record.delivered {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) AppendDelivered(ctx context.Context, token string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.sessions[token]
	if !ok {
		return ErrNotFound
	}
	for _, id := range ids {
		record.delivered[id] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := make([]string, 0, len(s.sessions))
	for token := range s.sessions {
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[token]
	delete(s.sessions, token)
	return ok, nil
}
