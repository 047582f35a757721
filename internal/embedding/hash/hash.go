// Package hash implements the deterministic, network-free fallback embedder.
// It maps a text's SHA-256 digest onto a fixed 384-dimensional vector, so
// identical text always yields an identical vector. The mapping carries no
// semantics; it exists so ingestion and search round-trips work offline.
package hash

import (
	"context"
	"crypto/sha256"
)

// Dimension is the fixed length of every vector this embedder produces.
const Dimension = 384

// Embedder derives embedding vectors from cryptographic hash digests.
// It is stateless and cannot fail.
type Embedder struct{}

// NewEmbedder creates a hash-based fallback embedder.
func NewEmbedder() *Embedder { return &Embedder{} }

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hash" }

// Dimension returns the fixed dimensionality of produced vectors.
func (e *Embedder) Dimension() int { return Dimension }

// Embed hashes the UTF-8 text with SHA-256, normalizes each digest byte to
// [0,1) by dividing by 255, and right-pads with zeros to exactly Dimension
// values. Identical text always yields a bit-identical vector.
func (e *Embedder) Embed(_ context.Context, text string) ([]float64, error) {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float64, Dimension)
	for i := 0; i < len(sum) && i < Dimension; i++ {
		vec[i] = float64(sum[i]) / 255.0
	}
	return vec, nil
}
