package oracle

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the oracle provider configuration, loaded from the
// environment (optionally via a .env file).
type Config struct {
	Provider        string // "openai", "anthropic", or "deterministic"
	ProviderURL     string
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// Load reads oracle configuration from the environment. If envFilePath is
// non-empty it is loaded first via godotenv, mirroring the teacher's
// .env.hyper convention.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("oracle: failed to load env file: %w", err)
		}
	}

	provider := os.Getenv("ORACLE_PROVIDER")
	if provider == "" {
		provider = "deterministic"
	}
	if provider != "openai" && provider != "anthropic" && provider != "deterministic" {
		return nil, fmt.Errorf("oracle: provider must be 'openai', 'anthropic', or 'deterministic', got %q", provider)
	}

	providerURL := os.Getenv("ORACLE_PROVIDER_URL")

	apiKey := os.Getenv("ORACLE_API_KEY")
	if apiKey == "" {
		switch provider {
		case "openai":
			apiKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if (provider == "openai" || provider == "anthropic") && apiKey == "" {
		return nil, fmt.Errorf("oracle: ORACLE_API_KEY or %s-specific key is required for provider %q", provider, provider)
	}

	model := os.Getenv("ORACLE_MODEL")
	if model == "" {
		switch provider {
		case "openai":
			model = "gpt-4-turbo-preview"
		case "anthropic":
			model = "claude-3-sonnet-20240229"
		}
	}

	temperature := 0.7
	if v := os.Getenv("ORACLE_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 2.0 {
			temperature = parsed
		}
	}

	maxTokens := 0
	if v := os.Getenv("ORACLE_MAX_OUTPUT_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxTokens = parsed
		}
	}

	return &Config{
		Provider:        provider,
		ProviderURL:     providerURL,
		APIKey:          apiKey,
		Model:           model,
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
	}, nil
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Provider != "openai" && c.Provider != "anthropic" && c.Provider != "deterministic" {
		return fmt.Errorf("oracle: invalid provider %q", c.Provider)
	}
	if (c.Provider == "openai" || c.Provider == "anthropic") && c.APIKey == "" {
		return fmt.Errorf("oracle: API key required for provider %q", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2.0 {
		return fmt.Errorf("oracle: temperature must be between 0 and 2.0")
	}
	return nil
}
