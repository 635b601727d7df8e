package oracle

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// New constructs a TextOracle from config. Both LLM-backed providers
// advertise general and code capability; the deterministic stub exists so
// tests and FallbackGeneric-only deployments never touch the network.
func New(config *Config) (TextOracle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case "openai":
		return newOpenAIOracle(config)
	case "anthropic":
		return newAnthropicOracle(config)
	default:
		return &deterministicOracle{}, nil
	}
}

type openAIOracle struct {
	llm    *openai.LLM
	config *Config
}

func newOpenAIOracle(config *Config) (*openAIOracle, error) {
	opts := []openai.Option{
		openai.WithModel(config.Model),
		openai.WithToken(config.APIKey),
	}
	if config.ProviderURL != "" {
		opts = append(opts, openai.WithBaseURL(config.ProviderURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("oracle: failed to create openai client: %w", err)
	}
	return &openAIOracle{llm: llm, config: config}, nil
}

func (o *openAIOracle) Capabilities() []Capability {
	return []Capability{CapabilityGeneral, CapabilityCode}
}

func (o *openAIOracle) Continue(ctx context.Context, prompt string) (string, error) {
	opts := []llms.CallOption{llms.WithTemperature(o.config.Temperature)}
	if o.config.MaxOutputTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(o.config.MaxOutputTokens))
	}

	resp, err := o.llm.Call(ctx, prompt, opts...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return resp, nil
}

type anthropicOracle struct {
	llm    *anthropic.LLM
	config *Config
}

func newAnthropicOracle(config *Config) (*anthropicOracle, error) {
	opts := []anthropic.Option{
		anthropic.WithModel(config.Model),
		anthropic.WithToken(config.APIKey),
	}
	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("oracle: failed to create anthropic client: %w", err)
	}
	return &anthropicOracle{llm: llm, config: config}, nil
}

func (o *anthropicOracle) Capabilities() []Capability {
	return []Capability{CapabilityGeneral, CapabilityCode}
}

func (o *anthropicOracle) Continue(ctx context.Context, prompt string) (string, error) {
	opts := []llms.CallOption{llms.WithTemperature(o.config.Temperature)}
	if o.config.MaxOutputTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(o.config.MaxOutputTokens))
	}

	resp, err := o.llm.Call(ctx, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return resp, nil
}

// deterministicOracle never calls a network model. It exists for tests and
// for configurations that want the query pipeline to rely purely on
// FallbackGeneric rather than an external collaborator.
type deterministicOracle struct{}

func (*deterministicOracle) Capabilities() []Capability {
	return []Capability{CapabilityGeneral}
}

func (*deterministicOracle) Continue(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return "", ErrOracleUnavailable
}
