// Package ingest orchestrates chunking, embedding and storage for a batch
// of documents, producing one persisted archive.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"courseqa/internal/domain"
	"courseqa/internal/logger"
	"courseqa/internal/store"
)

// DocumentResult records the outcome of ingesting one document.
type DocumentResult struct {
	DocumentID string
	Chunks     int
	Err        error
}

// Report summarizes an ingestion run.
type Report struct {
	TotalChunks  int
	Dimension    int
	Documents    []DocumentResult
	Succeeded    int
	Failed       int
	ArchiveBytes int64
}

// Pipeline wires the chunker and embedder into a passage store.
type Pipeline struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	store    *store.Store
}

// New creates an ingestion pipeline appending into st.
func New(chunker domain.Chunker, embedder domain.Embedder, st *store.Store) *Pipeline {
	return &Pipeline{chunker: chunker, embedder: embedder, store: st}
}

// Ingest chunks and embeds every document and appends the resulting
// passages to the store. A failure while processing one document is
// recorded in the report and the pipeline moves on to the next document;
// passages already appended from the failed document are kept. Only
// context cancellation aborts the whole batch.
func (p *Pipeline) Ingest(ctx context.Context, docs []domain.Document) (*Report, error) {
	report := &Report{}
	for _, doc := range docs {
		res := p.ingestDocument(ctx, doc)
		report.Documents = append(report.Documents, res)
		report.TotalChunks += res.Chunks
		if res.Err != nil {
			if ctx.Err() != nil {
				report.Failed++
				return report, ctx.Err()
			}
			report.Failed++
			logger.Warn("document %s failed after %d chunks: %v", doc.ID, res.Chunks, res.Err)
			continue
		}
		report.Succeeded++
		logger.Debug("document %s produced %d chunks", doc.ID, res.Chunks)
	}
	report.Dimension = p.store.Dimension()
	return report, nil
}

// Run ingests the documents, saves the archive and records its on-disk
// size in the report. The size is advisory: callers compare it against
// their budget, the pipeline never enforces one.
func (p *Pipeline) Run(ctx context.Context, docs []domain.Document, archivePath string) (*Report, error) {
	report, err := p.Ingest(ctx, docs)
	if err != nil {
		return report, err
	}
	if err := p.store.Save(archivePath); err != nil {
		return report, fmt.Errorf("save archive: %w", err)
	}
	if info, err := os.Stat(archivePath); err == nil {
		report.ArchiveBytes = info.Size()
	}
	return report, nil
}

func (p *Pipeline) ingestDocument(ctx context.Context, doc domain.Document) DocumentResult {
	res := DocumentResult{DocumentID: doc.ID}
	chunks, err := p.chunker.Chunk(doc)
	if err != nil {
		res.Err = err
		return res
	}
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		vec, err := p.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			res.Err = fmt.Errorf("embed chunk %d: %w", chunk.Index, err)
			return res
		}
		meta := doc.Metadata.Clone()
		if meta == nil {
			meta = domain.Metadata{}
		}
		meta[domain.MetaChunkID] = strconv.Itoa(chunk.Index)
		err = p.store.Append(domain.Passage{Text: chunk.Text, Vector: vec, Metadata: meta})
		if err != nil {
			res.Err = fmt.Errorf("append chunk %d: %w", chunk.Index, err)
			return res
		}
		res.Chunks++
	}
	return res
}
