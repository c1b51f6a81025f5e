package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docchat/docchat/internal/client"
	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/db"
	"github.com/docchat/docchat/internal/embeddings"
	"github.com/docchat/docchat/internal/matcher"
	"github.com/docchat/docchat/internal/topics"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docchat init` to create a config file", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "config: %s (data dir %s)\n", cfgFile, cfg.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the topic store in the configured data directory.
func openStore(cfg *config.Config) (*topics.Store, *db.DB, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "docchat.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return topics.NewStore(database), database, nil
}

// createMatcherFromConfig builds the configured ranking strategy.
func createMatcherFromConfig(cfg *config.Config) (matcher.Matcher, error) {
	switch cfg.Matcher.Strategy {
	case config.MatcherSemantic:
		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
		return matcher.NewSemanticMatcher(embedder)
	default:
		return matcher.NewFuzzyMatcher(), nil
	}
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Matcher.EmbeddingProvider {
	case config.EmbeddingOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.Matcher.EmbeddingModel), nil
	case config.EmbeddingOllama:
		return embeddings.NewOllamaEmbedder(cfg.Matcher.EmbeddingModel, cfg.Matcher.OllamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Matcher.EmbeddingProvider)
	}
}

// createClientFromConfig builds the transport for chat and ask.
func createClientFromConfig(cfg *config.Config, document string) *client.Client {
	if document == "" {
		document = cfg.Client.Document
	}
	return client.New(
		cfg.Client.Endpoint,
		document,
		time.Duration(cfg.Client.TimeoutSeconds)*time.Second,
	)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
