package config

// DefaultExcludes are glob patterns the markdown importer skips by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"vendor/**",
	"**/README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".docchat",
		Server: ServerConfig{
			Port: 8000,
			TopK: 3,
		},
		Client: ClientConfig{
			Endpoint:       "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Matcher: MatcherConfig{
			Strategy:          MatcherFuzzy,
			EmbeddingProvider: EmbeddingOllama,
			EmbeddingModel:    "nomic-embed-text",
		},
		Import: ImportConfig{
			Include: []string{"**/*.md"},
			Exclude: DefaultExcludes,
		},
	}
}
