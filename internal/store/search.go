package store

import (
	"fmt"
	"math"
	"sort"

	"courseqa/internal/domain"
)

// Filter restricts a search to passages whose metadata satisfies it.
type Filter func(domain.Metadata) bool

// TypeFilter matches passages whose "type" metadata equals t.
func TypeFilter(t string) Filter {
	return func(m domain.Metadata) bool { return m[domain.MetaType] == t }
}

// Search ranks stored passages by cosine similarity against query,
// restricted to passages matching filter when one is supplied. Results are
// ordered by descending score; exact ties keep ingestion order. At most
// topK results are returned.
//
// Complexity is a linear scan over all passages, O(N*D).
func (s *Store) Search(query []float64, topK int, filter Filter) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidArgument, topK)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension != 0 && len(query) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, store has %d", domain.ErrDimensionMismatch, len(query), s.dimension)
	}

	type scored struct {
		idx   int
		score float64
	}
	matches := make([]scored, 0, len(s.vectors))
	for i := range s.vectors {
		if filter != nil && !filter(s.metas[i]) {
			continue
		}
		matches = append(matches, scored{idx: i, score: Cosine(query, s.vectors[i])})
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].score > matches[b].score })
	if topK > len(matches) {
		topK = len(matches)
	}

	results := make([]domain.SearchResult, 0, topK)
	for _, m := range matches[:topK] {
		results = append(results, domain.SearchResult{
			Passage: s.passageLocked(m.idx),
			Score:   m.score,
		})
	}
	return results, nil
}

// Cosine computes the cosine similarity of two equal-length vectors.
// A zero vector has no direction, so any pair involving one scores 0
// rather than NaN.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
