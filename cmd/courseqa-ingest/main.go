package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"courseqa/internal/chunker"
	"courseqa/internal/config"
	"courseqa/internal/domain"
	"courseqa/internal/embedding"
	"courseqa/internal/embedding/hash"
	"courseqa/internal/embedding/openai"
	"courseqa/internal/ingest"
	"courseqa/internal/logger"
	"courseqa/internal/store"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, courseFile, discourseGlob, outPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&courseFile, "course", "", "Course content JSON export (overrides config)")
	flag.StringVar(&discourseGlob, "discourse", "", "Glob of forum JSON exports (overrides config)")
	flag.StringVar(&outPath, "out", "", "Archive output path (overrides config)")
	flag.BoolVar(&verbose, "verbose", false, "Print pipeline diagnostics to stderr")
	flag.Parse()
	logger.SetVerbose(verbose)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if courseFile == "" {
		courseFile = cfg.Sources.CourseFile
	}
	if discourseGlob == "" {
		discourseGlob = cfg.Sources.DiscourseGlob
	}
	if outPath == "" {
		outPath = cfg.Archive.Path
	}

	docs := loadDocuments(courseFile, discourseGlob, cfg.Sources.DiscourseURL)
	if len(docs) == 0 {
		log.Fatalf("no documents found (course=%s, discourse=%s)", courseFile, discourseGlob)
	}

	ch, err := chunker.NewWordChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
	if err != nil {
		log.Fatalf("bad chunker config: %v", err)
	}
	emb := buildEmbedder(cfg)

	pipeline := ingest.New(ch, emb, store.New())
	report, err := pipeline.Run(context.Background(), docs, outPath)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	printReport(report, outPath, cfg.Archive.SizeBudgetMB)
}

func loadDocuments(courseFile, discourseGlob, discourseURL string) []domain.Document {
	var docs []domain.Document
	if courseFile != "" {
		course, err := ingest.LoadCourseFile(courseFile)
		if err != nil {
			log.Fatalf("load course content: %v", err)
		}
		docs = append(docs, course...)
		fmt.Printf("Loaded %d course sections from %s\n", len(course), courseFile)
	}
	if discourseGlob != "" {
		posts, err := ingest.LoadDiscourseFiles(discourseGlob, discourseURL)
		if err != nil {
			log.Fatalf("load forum posts: %v", err)
		}
		docs = append(docs, posts...)
		fmt.Printf("Loaded %d forum posts matching %s\n", len(posts), discourseGlob)
	}
	return docs
}

func buildEmbedder(cfg *config.AppConfig) domain.Embedder {
	fallback := hash.NewEmbedder()
	switch cfg.Embedder.Type {
	case "hash":
		return fallback
	case "openai", "":
		remote, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Warn("remote embedder unavailable, using hash fallback: %v", err)
			return embedding.NewFailover(nil, fallback)
		}
		return embedding.NewFailover(remote, fallback)
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
		return nil
	}
}

func printReport(report *ingest.Report, outPath string, budgetMB float64) {
	fmt.Printf("\nIngested %d chunks from %d documents (%d failed)\n",
		report.TotalChunks, report.Succeeded+report.Failed, report.Failed)
	fmt.Printf("Embedding dimension: %d\n", report.Dimension)
	for _, doc := range report.Documents {
		if doc.Err != nil {
			fmt.Printf("  FAILED %s after %d chunks: %v\n", doc.DocumentID, doc.Chunks, doc.Err)
		}
	}
	sizeMB := float64(report.ArchiveBytes) / (1024 * 1024)
	fmt.Printf("Archive: %s (%.2f MB)\n", outPath, sizeMB)
	if sizeMB > budgetMB {
		fmt.Printf("Warning: archive exceeds the %.0f MB size budget\n", budgetMB)
	}
}
