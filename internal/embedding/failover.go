// Package embedding composes the remote and fallback embedding providers.
package embedding

import (
	"context"
	"fmt"

	"courseqa/internal/domain"
	"courseqa/internal/logger"
)

// Failover tries a primary embedder and silently degrades to a fallback on
// any failure. Callers never observe the primary's failure as an error;
// they receive a vector, or ErrEmbeddingUnavailable if the fallback also
// fails (which the hash fallback by design cannot).
type Failover struct {
	primary  domain.Embedder
	fallback domain.Embedder
}

// NewFailover creates a failover embedder. primary may be nil, in which
// case every call goes straight to the fallback.
func NewFailover(primary, fallback domain.Embedder) *Failover {
	return &Failover{primary: primary, fallback: fallback}
}

// Name returns the identifier of this embedder implementation.
func (f *Failover) Name() string {
	if f.primary != nil {
		return f.primary.Name() + "+" + f.fallback.Name()
	}
	return f.fallback.Name()
}

// Dimension reports the primary's dimensionality once known, otherwise the
// fallback's fixed dimensionality.
func (f *Failover) Dimension() int {
	if f.primary != nil {
		if d := f.primary.Dimension(); d > 0 {
			return d
		}
	}
	return f.fallback.Dimension()
}

// Embed returns the primary's vector when it succeeds, and the fallback's
// vector on any primary failure, including timeouts.
func (f *Failover) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.primary != nil {
		vec, err := f.primary.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		logger.Warn("%s embedder failed, degrading to %s: %v", f.primary.Name(), f.fallback.Name(), err)
	}
	vec, err := f.fallback.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	return vec, nil
}
