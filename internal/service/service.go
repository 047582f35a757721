// Package service exposes the query interface the serving layer calls:
// embed a query, search the loaded passage store, return ranked passages.
package service

import (
	"context"
	"fmt"
	"sync"

	"courseqa/internal/domain"
	"courseqa/internal/logger"
	"courseqa/internal/store"
)

// Result is one ranked passage returned to the serving layer.
type Result struct {
	Text     string
	Metadata domain.Metadata
	Score    float64
}

// Service answers similarity queries against a loaded passage store.
// The store is read-only while serving; Reload swaps in a freshly loaded
// instance wholesale instead of mutating the current one.
type Service struct {
	mu       sync.RWMutex
	store    *store.Store
	embedder domain.Embedder
}

// New creates a query service over st using embedder for query vectors.
func New(st *store.Store, embedder domain.Embedder) *Service {
	return &Service{store: st, embedder: embedder}
}

// Search embeds queryText and returns the topK most similar passages,
// restricted to the given "type" metadata value when typeFilter is
// non-empty. Results are ordered by descending score.
func (s *Service) Search(ctx context.Context, queryText string, topK int, typeFilter string) ([]Result, error) {
	vec, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	var filter store.Filter
	if typeFilter != "" {
		filter = store.TypeFilter(typeFilter)
	}
	matches, err := s.current().Search(vec, topK, filter)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Text:     m.Passage.Text,
			Metadata: m.Passage.Metadata,
			Score:    m.Score,
		})
	}
	return results, nil
}

// Reload loads the archive at path and atomically replaces the served
// store. On failure the current store keeps serving.
func (s *Service) Reload(path string) error {
	st, err := store.Load(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.store = st
	s.mu.Unlock()
	logger.Info("reloaded archive %s: %d passages, dimension %d", path, st.Len(), st.Dimension())
	return nil
}

// Store returns the store currently serving queries.
func (s *Service) Store() *store.Store { return s.current() }

func (s *Service) current() *store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}
