package chunker

import (
	"fmt"
	"strings"

	"courseqa/internal/domain"
)

// Default window parameters, in words.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// MinChunkChars is the minimum trimmed length of an emitted chunk.
// Shorter trailing windows are dropped, not reported as errors.
const MinChunkChars = 50

// WordChunker splits text into overlapping fixed-size word windows.
type WordChunker struct {
	chunkSize int
	overlap   int
}

// NewWordChunker creates a word-window chunker. Zero values select the
// defaults (500 words per window, 50 words of overlap).
func NewWordChunker(chunkSize, overlap int) (*WordChunker, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size %d", domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d", domain.ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d >= chunk size %d", domain.ErrInvalidConfig, overlap, chunkSize)
	}
	return &WordChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits the document into windows of chunkSize words starting every
// chunkSize-overlap words. Windows whose trimmed text is MinChunkChars or
// shorter are dropped. Output is deterministic for identical input.
func (c *WordChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	words := strings.Fields(document.Text)
	if len(words) == 0 {
		return nil, nil
	}
	step := c.chunkSize - c.overlap
	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		text := strings.Join(words[start:end], " ")
		if len(strings.TrimSpace(text)) > MinChunkChars {
			chunks = append(chunks, domain.Chunk{
				DocumentID: document.ID,
				Index:      idx,
				Text:       text,
			})
			idx++
		}
	}
	return chunks, nil
}
