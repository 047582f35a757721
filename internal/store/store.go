// Package store holds the embedding-indexed passage collection: three
// parallel sequences (content, vectors, metadata) of equal length, plus
// the dimensionality fixed by the first vector written.
//
// A store follows a single-writer/multiple-reader discipline: the
// ingestion pipeline appends to a store it exclusively owns, then saves
// it; a separately loaded instance serves concurrent queries read-only.
package store

import (
	"fmt"
	"sync"

	"courseqa/internal/domain"
)

// Store is an in-memory passage collection with on-disk persistence.
type Store struct {
	mu        sync.RWMutex
	dimension int
	contents  []string
	vectors   [][]float64
	metas     []domain.Metadata
}

// New creates an empty store. Dimensionality is fixed by the first Append.
func New() *Store { return &Store{} }

// Append adds one passage. The first append establishes the store's
// dimensionality; subsequent vectors of a different length are rejected
// with ErrDimensionMismatch. The passage's vector and metadata are copied,
// so callers cannot mutate a passage after it is stored.
func (s *Store) Append(p domain.Passage) error {
	if len(p.Vector) == 0 {
		return fmt.Errorf("%w: empty vector", domain.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		s.dimension = len(p.Vector)
	} else if len(p.Vector) != s.dimension {
		return fmt.Errorf("%w: got %d, store has %d", domain.ErrDimensionMismatch, len(p.Vector), s.dimension)
	}
	vec := make([]float64, len(p.Vector))
	copy(vec, p.Vector)
	s.contents = append(s.contents, p.Text)
	s.vectors = append(s.vectors, vec)
	s.metas = append(s.metas, p.Metadata.Clone())
	return nil
}

// Len returns the number of stored passages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contents)
}

// Dimension returns the vector dimensionality, or 0 for an empty store.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

// Passage returns a copy of the passage at index i in ingestion order.
func (s *Store) Passage(i int) domain.Passage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passageLocked(i)
}

func (s *Store) passageLocked(i int) domain.Passage {
	vec := make([]float64, len(s.vectors[i]))
	copy(vec, s.vectors[i])
	return domain.Passage{
		Text:     s.contents[i],
		Vector:   vec,
		Metadata: s.metas[i].Clone(),
	}
}
