// Package store keeps processed ficha results in memory.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/google/uuid"
)

// ResultStore retains the most recently published result and an index of
// result handles. Results are never mutated after Publish.
type ResultStore struct {
	last atomic.Pointer[dto.ProcessResult]

	mu      sync.RWMutex
	handles map[uuid.UUID]*dto.ProcessResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		handles: make(map[uuid.UUID]*dto.ProcessResult),
	}
}

// Publish makes result the last result and registers its handle. Readers see
// either the previous result or this one, never a mix.
func (s *ResultStore) Publish(result *dto.ProcessResult) {
	s.mu.Lock()
	s.handles[result.ID] = result
	s.mu.Unlock()

	s.last.Store(result)
}

// Last returns dto.ErrNoDocumentProcessed until something is published.
func (s *ResultStore) Last() (*dto.ProcessResult, error) {
	result := s.last.Load()
	if result == nil {
		return nil, dto.ErrNoDocumentProcessed
	}
	return result, nil
}

func (s *ResultStore) Get(id uuid.UUID) (*dto.ProcessResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.handles[id]
	if !ok {
		return nil, dto.ErrResultNotFound
	}
	return result, nil
}

// PurgeOlderThan drops handles processed before cutoff and returns how many
// were removed. The last result is always kept.
func (s *ResultStore) PurgeOlderThan(cutoff time.Time) int {
	last := s.last.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, result := range s.handles {
		if last != nil && id == last.ID {
			continue
		}
		if result.ProcessedAt.Before(cutoff) {
			delete(s.handles, id)
			removed++
		}
	}
	return removed
}

func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}
