package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseqa/internal/chunker"
	"courseqa/internal/domain"
	"courseqa/internal/store"
)

// vocabEmbedder scores texts by shared vocabulary: component i counts
// occurrences of vocab[i]. It validates pipeline wiring without depending
// on real embedding semantics.
type vocabEmbedder struct {
	vocab []string
}

func (e *vocabEmbedder) Name() string   { return "vocab" }
func (e *vocabEmbedder) Dimension() int { return len(e.vocab) }
func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, len(e.vocab))
	for _, word := range strings.Fields(strings.ToLower(text)) {
		for i, v := range e.vocab {
			if word == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}

// failingEmbedder fails on texts containing a marker word.
type failingEmbedder struct {
	inner  domain.Embedder
	marker string
	calls  int
	failAt int // fail on the nth call when > 0
}

func (e *failingEmbedder) Name() string   { return "failing" }
func (e *failingEmbedder) Dimension() int { return e.inner.Dimension() }
func (e *failingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	if e.failAt > 0 && e.calls == e.failAt {
		return nil, errors.New("simulated embedding failure")
	}
	if e.marker != "" && strings.Contains(text, e.marker) {
		return nil, errors.New("simulated embedding failure")
	}
	return e.inner.Embed(ctx, text)
}

func dockerDoc() domain.Document {
	return domain.Document{
		ID:   "docker-tutorial",
		Text: strings.Repeat("docker container image volume network compose ", 100),
		Metadata: domain.Metadata{
			domain.MetaSource: "docker-tutorial",
			domain.MetaType:   domain.TypeCourseContent,
		},
	}
}

func gitDoc() domain.Document {
	return domain.Document{
		ID:   "git-tutorial",
		Text: strings.Repeat("git commit branch merge rebase checkout ", 100),
		Metadata: domain.Metadata{
			domain.MetaSource: "git-tutorial",
			domain.MetaType:   domain.TypeCourseContent,
		},
	}
}

func newTestChunker(t *testing.T) domain.Chunker {
	t.Helper()
	ch, err := chunker.NewWordChunker(500, 50)
	require.NoError(t, err)
	return ch
}

func TestIngest_TwoDocumentScenario(t *testing.T) {
	emb := &vocabEmbedder{vocab: []string{"docker", "container", "git", "commit"}}
	st := store.New()
	p := New(newTestChunker(t), emb, st)

	report, err := p.Ingest(context.Background(), []domain.Document{dockerDoc(), gitDoc()})
	require.NoError(t, err)

	// 600 words at chunk_size=500, overlap=50 produce 2 chunks per document.
	assert.Equal(t, 4, report.TotalChunks)
	assert.Equal(t, 2, report.Succeeded)
	assert.Zero(t, report.Failed)
	assert.Equal(t, len(emb.vocab), report.Dimension)
	assert.Equal(t, 4, st.Len())

	// Querying "docker container" must rank every docker chunk above every
	// git chunk.
	query, err := emb.Embed(context.Background(), "docker container")
	require.NoError(t, err)
	results, err := st.Search(query, 4, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "docker-tutorial", results[0].Passage.Metadata[domain.MetaSource])
	assert.Equal(t, "docker-tutorial", results[1].Passage.Metadata[domain.MetaSource])
	assert.Greater(t, results[1].Score, results[2].Score,
		"lowest docker chunk must strictly beat best git chunk")
}

func TestIngest_InjectsChunkIDPreservingTemplate(t *testing.T) {
	emb := &vocabEmbedder{vocab: []string{"docker"}}
	st := store.New()
	p := New(newTestChunker(t), emb, st)

	doc := dockerDoc()
	_, err := p.Ingest(context.Background(), []domain.Document{doc})
	require.NoError(t, err)

	require.Equal(t, 2, st.Len())
	assert.Equal(t, "0", st.Passage(0).Metadata[domain.MetaChunkID])
	assert.Equal(t, "1", st.Passage(1).Metadata[domain.MetaChunkID])
	assert.Equal(t, "docker-tutorial", st.Passage(0).Metadata[domain.MetaSource])

	// The caller's metadata template must stay untouched.
	_, tainted := doc.Metadata[domain.MetaChunkID]
	assert.False(t, tainted)
}

func TestIngest_PerDocumentFailureContinues(t *testing.T) {
	inner := &vocabEmbedder{vocab: []string{"docker", "git"}}
	emb := &failingEmbedder{inner: inner, marker: "git"}
	st := store.New()
	p := New(newTestChunker(t), emb, st)

	report, err := p.Ingest(context.Background(), []domain.Document{gitDoc(), dockerDoc()})
	require.NoError(t, err, "a failed document must not abort the batch")

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Documents, 2)
	assert.Error(t, report.Documents[0].Err)
	assert.NoError(t, report.Documents[1].Err)
	assert.Equal(t, 2, st.Len(), "the healthy document is fully ingested")
}

func TestIngest_PartialDocumentKeepsAppendedPassages(t *testing.T) {
	inner := &vocabEmbedder{vocab: []string{"docker"}}
	emb := &failingEmbedder{inner: inner, failAt: 2}
	st := store.New()
	p := New(newTestChunker(t), emb, st)

	report, err := p.Ingest(context.Background(), []domain.Document{dockerDoc()})
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Error(t, report.Documents[0].Err)
	assert.Equal(t, 1, report.Documents[0].Chunks)
	assert.Equal(t, 1, st.Len(), "passages appended before the failure stay")
}

func TestIngest_ContextCancellationAborts(t *testing.T) {
	emb := &vocabEmbedder{vocab: []string{"docker"}}
	p := New(newTestChunker(t), emb, store.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Ingest(ctx, []domain.Document{dockerDoc(), gitDoc()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SavesArchiveAndReportsSize(t *testing.T) {
	emb := &vocabEmbedder{vocab: []string{"docker", "git"}}
	st := store.New()
	p := New(newTestChunker(t), emb, st)

	path := filepath.Join(t.TempDir(), "embeddings.gob")
	report, err := p.Run(context.Background(), []domain.Document{dockerDoc()}, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), report.ArchiveBytes)
	assert.Positive(t, report.ArchiveBytes)

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, st.Len(), loaded.Len())
}
