package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCCHAT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCCHAT_SERVER_PORT -> server.port,
	// DOCCHAT_SERVER_TOP_K -> server.top_k, DOCCHAT_DATA_DIR -> data_dir.
	if err := k.Load(env.Provider("DOCCHAT_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// configSections are the nested config groups an env var can address.
var configSections = []string{"server", "client", "matcher", "import"}

// envKey maps an environment variable name to a config key. Only the
// leading section name becomes a path separator; underscores inside a
// key are part of the key itself (server.top_k, client.timeout_seconds).
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "DOCCHAT_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validStrategies is the set of recognized matcher strategies.
var validStrategies = map[MatcherStrategy]bool{
	MatcherFuzzy:    true,
	MatcherSemantic: true,
}

// validEmbeddingProviders is the set of recognized embedding providers.
var validEmbeddingProviders = map[EmbeddingProvider]bool{
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.TopK < 0 {
		return fmt.Errorf("server.top_k must be non-negative")
	}

	if c.Client.Endpoint == "" {
		return fmt.Errorf("client.endpoint is required")
	}
	if c.Client.TimeoutSeconds < 0 {
		return fmt.Errorf("client.timeout_seconds must be non-negative")
	}

	if !validStrategies[c.Matcher.Strategy] {
		return fmt.Errorf("invalid matcher.strategy %q: must be fuzzy or semantic", c.Matcher.Strategy)
	}
	if c.Matcher.Strategy == MatcherSemantic && !validEmbeddingProviders[c.Matcher.EmbeddingProvider] {
		return fmt.Errorf("invalid matcher.embedding_provider %q: must be openai or ollama", c.Matcher.EmbeddingProvider)
	}

	return nil
}
