package config

// MatcherStrategy selects how questions are ranked against keywords.
type MatcherStrategy string

const (
	MatcherFuzzy    MatcherStrategy = "fuzzy"
	MatcherSemantic MatcherStrategy = "semantic"
)

// EmbeddingProvider identifies an embedding backend for the semantic matcher.
type EmbeddingProvider string

const (
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// Config is the top-level docchat configuration, corresponding to .docchat.yml.
type Config struct {
	DataDir string        `yaml:"data_dir" koanf:"data_dir"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Client  ClientConfig  `yaml:"client" koanf:"client"`
	Matcher MatcherConfig `yaml:"matcher" koanf:"matcher"`
	Import  ImportConfig  `yaml:"import" koanf:"import"`
}

// ServerConfig holds answering-service settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	TopK            int    `yaml:"top_k" koanf:"top_k"`
	DefaultDocument string `yaml:"default_document" koanf:"default_document"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ClientConfig holds settings for the chat and ask commands.
type ClientConfig struct {
	Endpoint       string `yaml:"endpoint" koanf:"endpoint"`
	Document       string `yaml:"document" koanf:"document"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// MatcherConfig selects and configures the ranking strategy.
type MatcherConfig struct {
	Strategy          MatcherStrategy   `yaml:"strategy" koanf:"strategy"`
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaBaseURL     string            `yaml:"ollama_base_url" koanf:"ollama_base_url"`
}

// ImportConfig controls which files the markdown importer picks up.
type ImportConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
