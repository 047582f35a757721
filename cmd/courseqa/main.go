package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"courseqa/internal/config"
	"courseqa/internal/domain"
	"courseqa/internal/embedding"
	"courseqa/internal/embedding/hash"
	"courseqa/internal/embedding/openai"
	"courseqa/internal/logger"
	"courseqa/internal/service"
	"courseqa/internal/store"
	"courseqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, archivePath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/courseqa/config.yaml if not provided)")
	flag.StringVar(&archivePath, "archive", "", "Path to the passage archive (overrides config)")
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
	if archivePath == "" {
		archivePath = cfg.Archive.Path
	}

	st, err := store.Load(archivePath)
	if err != nil {
		log.Fatalf("failed to load archive %s: %v", archivePath, err)
	}

	emb := buildEmbedder(cfg)
	svc := service.New(st, emb)

	headline := fmt.Sprintf("%d passages, dimension %d (%s)", st.Len(), st.Dimension(), archivePath)
	m := tui.New(svc, headline, cfg.Search.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

// buildEmbedder assembles the query-time embedder. The remote provider is
// optional: if it cannot be constructed (no credential), queries degrade to
// the deterministic hash fallback, matching the ingest-time behavior.
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
