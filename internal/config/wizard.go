package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docchat! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Matcher strategy.
	strategyPrompt := promptui.Select{
		Label: "Select matcher strategy",
		Items: []string{
			"fuzzy (keyword token matching, no external service)",
			"semantic (embedding similarity, needs OpenAI or Ollama)",
		},
	}
	strategyIdx, _, err := strategyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("strategy selection: %w", err)
	}
	strategies := []MatcherStrategy{MatcherFuzzy, MatcherSemantic}
	cfg.Matcher.Strategy = strategies[strategyIdx]

	// 2. Embedding provider, only for the semantic strategy.
	if cfg.Matcher.Strategy == MatcherSemantic {
		providerPrompt := promptui.Select{
			Label: "Select embedding provider",
			Items: []string{"ollama", "openai"},
		}
		_, providerStr, err := providerPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("provider selection: %w", err)
		}
		cfg.Matcher.EmbeddingProvider = EmbeddingProvider(providerStr)
		if cfg.Matcher.EmbeddingProvider == EmbeddingOpenAI {
			cfg.Matcher.EmbeddingModel = "text-embedding-3-small"
		}
	}

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Client endpoint.
	endpointPrompt := promptui.Prompt{
		Label:   "Answer service endpoint",
		Default: fmt.Sprintf("http://localhost:%d", cfg.Server.Port),
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("endpoint prompt: %w", err)
	}
	cfg.Client.Endpoint = endpoint

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
