package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseqa/internal/domain"
)

func passage(text string, vec []float64, meta domain.Metadata) domain.Passage {
	return domain.Passage{Text: text, Vector: vec, Metadata: meta}
}

func TestAppend_FixesDimensionality(t *testing.T) {
	s := New()
	assert.Zero(t, s.Dimension(), "empty store has no dimensionality")

	require.NoError(t, s.Append(passage("a", []float64{1, 2, 3}, nil)))
	assert.Equal(t, 3, s.Dimension())

	err := s.Append(passage("b", []float64{1, 2}, nil))
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 1, s.Len(), "rejected passage must not be stored")

	require.NoError(t, s.Append(passage("c", []float64{4, 5, 6}, nil)))
	assert.Equal(t, 2, s.Len())
}

func TestAppend_RejectsEmptyVector(t *testing.T) {
	s := New()
	err := s.Append(passage("a", nil, nil))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAppend_CopiesVectorAndMetadata(t *testing.T) {
	s := New()
	vec := []float64{1, 0}
	meta := domain.Metadata{domain.MetaType: domain.TypeCourseContent}
	require.NoError(t, s.Append(passage("a", vec, meta)))

	// Mutating the caller's values must not affect the stored passage.
	vec[0] = 99
	meta[domain.MetaType] = "mutated"

	got := s.Passage(0)
	assert.Equal(t, []float64{1, 0}, got.Vector)
	assert.Equal(t, domain.TypeCourseContent, got.Metadata[domain.MetaType])

	// And mutating a returned passage must not affect the store.
	got.Vector[1] = 42
	got.Metadata[domain.MetaType] = "mutated again"
	again := s.Passage(0)
	assert.Equal(t, []float64{1, 0}, again.Vector)
	assert.Equal(t, domain.TypeCourseContent, again.Metadata[domain.MetaType])
}

func TestDimensionalityInvariant(t *testing.T) {
	s := New()
	require.NoError(t, s.Append(passage("a", []float64{1, 0, 0, 0}, nil)))
	require.NoError(t, s.Append(passage("b", []float64{0, 1, 0, 0}, nil)))
	require.NoError(t, s.Append(passage("c", []float64{0, 0, 1, 0}, nil)))

	for i := 0; i < s.Len(); i++ {
		assert.Len(t, s.Passage(i).Vector, s.Dimension())
	}
}
