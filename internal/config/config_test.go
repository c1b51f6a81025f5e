package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want default 8000", cfg.Server.Port)
	}
	if cfg.Matcher.Strategy != MatcherFuzzy {
		t.Errorf("strategy = %q, want fuzzy", cfg.Matcher.Strategy)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docchat.yml")
	content := []byte("server:\n  port: 9100\n  top_k: 5\nmatcher:\n  strategy: semantic\n  embedding_provider: openai\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.TopK != 5 {
		t.Errorf("top_k = %d", cfg.Server.TopK)
	}
	if cfg.Matcher.Strategy != MatcherSemantic {
		t.Errorf("strategy = %q", cfg.Matcher.Strategy)
	}
	// Untouched fields keep their defaults.
	if cfg.Client.Endpoint != "http://localhost:8000" {
		t.Errorf("endpoint = %q", cfg.Client.Endpoint)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DOCCHAT_SERVER_PORT", "9200")
	t.Setenv("DOCCHAT_CLIENT_ENDPOINT", "http://answers.internal")
	t.Setenv("DOCCHAT_DATA_DIR", "/srv/docchat-data")
	t.Setenv("DOCCHAT_SERVER_TOP_K", "7")
	t.Setenv("DOCCHAT_CLIENT_TIMEOUT_SECONDS", "5")
	t.Setenv("DOCCHAT_SERVER_DEFAULT_DOCUMENT", "syllabus")
	t.Setenv("DOCCHAT_MATCHER_EMBEDDING_PROVIDER", "openai")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("port = %d, want env override 9200", cfg.Server.Port)
	}
	if cfg.Client.Endpoint != "http://answers.internal" {
		t.Errorf("endpoint = %q", cfg.Client.Endpoint)
	}
	if cfg.DataDir != "/srv/docchat-data" {
		t.Errorf("data_dir = %q, want env override", cfg.DataDir)
	}
	if cfg.Server.TopK != 7 {
		t.Errorf("top_k = %d, want env override 7", cfg.Server.TopK)
	}
	if cfg.Client.TimeoutSeconds != 5 {
		t.Errorf("timeout_seconds = %d, want env override 5", cfg.Client.TimeoutSeconds)
	}
	if cfg.Server.DefaultDocument != "syllabus" {
		t.Errorf("default_document = %q, want env override", cfg.Server.DefaultDocument)
	}
	if cfg.Matcher.EmbeddingProvider != EmbeddingOpenAI {
		t.Errorf("embedding_provider = %q, want env override", cfg.Matcher.EmbeddingProvider)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"DOCCHAT_DATA_DIR", "data_dir"},
		{"DOCCHAT_SERVER_PORT", "server.port"},
		{"DOCCHAT_SERVER_TOP_K", "server.top_k"},
		{"DOCCHAT_SERVER_ALLOW_ALL_ORIGINS", "server.allow_all_origins"},
		{"DOCCHAT_CLIENT_TIMEOUT_SECONDS", "client.timeout_seconds"},
		{"DOCCHAT_MATCHER_EMBEDDING_MODEL", "matcher.embedding_model"},
		{"DOCCHAT_MATCHER_OLLAMA_BASE_URL", "matcher.ollama_base_url"},
		{"DOCCHAT_IMPORT_INCLUDE", "import.include"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docchat.yml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9300
	cfg.Client.Document = "syllabus"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Port != 9300 {
		t.Errorf("port = %d", loaded.Server.Port)
	}
	if loaded.Client.Document != "syllabus" {
		t.Errorf("document = %q", loaded.Client.Document)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing data dir", func(c *Config) { c.DataDir = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"negative top_k", func(c *Config) { c.Server.TopK = -1 }},
		{"missing endpoint", func(c *Config) { c.Client.Endpoint = "" }},
		{"bad strategy", func(c *Config) { c.Matcher.Strategy = "magic" }},
		{"bad provider", func(c *Config) {
			c.Matcher.Strategy = MatcherSemantic
			c.Matcher.EmbeddingProvider = "none"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
