package domain

import "context"

// Document is a unit of raw text produced by the acquisition layer,
// together with the metadata every passage derived from it inherits.
type Document struct {
	ID       string
	Text     string
	Metadata Metadata
}

// Metadata maps string keys to scalar values attached to a passage.
// The search engine treats it as opaque except for the "type" key.
type Metadata map[string]string

// Metadata keys recognized by the system.
const (
	MetaSource     = "source"
	MetaURL        = "url"
	MetaType       = "type"
	MetaChunkID    = "chunk_id"
	MetaTopicID    = "topic_id"
	MetaUsername   = "username"
	MetaPostNumber = "post_number"
	MetaScrapedAt  = "scraped_at"
	MetaCreatedAt  = "created_at"
)

// Values of the "type" metadata key.
const (
	TypeCourseContent = "course_content"
	TypeDiscoursePost = "discourse_post"
)

// Clone returns an independent copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Chunk is a contiguous span of whitespace-delimited words from one document.
// Chunks are immutable once created.
type Chunk struct {
	DocumentID string
	Index      int
	Text       string
}

// Passage is the unit of storage and retrieval: a chunk's text, its
// embedding vector and its metadata.
type Passage struct {
	Text     string
	Vector   []float64
	Metadata Metadata
}

// SearchResult is a passage matched by a query, with its cosine
// similarity score.
type SearchResult struct {
	Passage Passage
	Score   float64
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Chunker splits documents into chunks suitable for independent embedding.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
