package domain

import "errors"

// Typed failures surfaced by the core. Embedding failures of the remote
// provider are never among them: those degrade silently to the fallback.
var (
	// ErrInvalidConfig indicates bad chunking parameters, e.g. overlap >= chunk size.
	ErrInvalidConfig = errors.New("invalid chunking configuration")

	// ErrDimensionMismatch indicates a vector whose length disagrees with
	// the dimensionality established by the store's first vector.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCorruptArchive indicates a persisted archive whose parallel
	// sequences or vector lengths are inconsistent.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrPersistence indicates an I/O failure while saving or loading an archive.
	ErrPersistence = errors.New("persistence failure")

	// ErrEmbeddingUnavailable indicates both the remote and the fallback
	// embedder failed. The fallback cannot fail, so this should not be
	// observed in practice.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrInvalidArgument indicates bad search parameters, e.g. top_k <= 0.
	ErrInvalidArgument = errors.New("invalid argument")
)
