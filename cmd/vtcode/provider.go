package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/internal/agent/providers"
	"github.com/vtcode/vtcode/internal/config"
)

// envKeyForProvider maps a provider ID to the environment variable that
// carries its API key when the config file leaves it blank.
func envKeyForProvider(name string) string {
	switch name {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "google":
		return "GOOGLE_API_KEY"
	case "azure":
		return "AZURE_OPENAI_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "bedrock":
		return "" // AWS credential chain, not a single key
	case "ollama":
		return ""
	case "copilot_proxy":
		return "COPILOT_PROXY_TOKEN"
	default:
		return strings.ToUpper(name) + "_API_KEY"
	}
}

func resolveAPIKey(name string, pc config.LLMProviderConfig) string {
	if pc.APIKey != "" {
		return pc.APIKey
	}
	if env := envKeyForProvider(name); env != "" {
		return os.Getenv(env)
	}
	return ""
}

// buildProvider constructs the configured agent.LLMProvider for name using
// cfg.LLM.Providers[name]. It is the single place that maps vtcode.toml's
// [llm.providers.*] sections onto the concrete provider constructors.
func buildProvider(name string, cfg *config.Config) (agent.LLMProvider, error) {
	pc := cfg.LLM.Providers[name]
	apiKey := resolveAPIKey(name, pc)

	switch name {
	case "anthropic":
		return providers.NewAnthropicProvider(providers.AnthropicConfig{
			APIKey:       apiKey,
			BaseURL:      pc.BaseURL,
			DefaultModel: pc.DefaultModel,
			MaxRetries:   3,
			RetryDelay:   time.Second,
		})
	case "openai":
		return providers.NewOpenAIProvider(apiKey), nil
	case "google":
		return providers.NewGoogleProvider(providers.GoogleConfig{
			APIKey:       apiKey,
			DefaultModel: pc.DefaultModel,
			MaxRetries:   3,
			RetryDelay:   time.Second,
		})
	case "azure":
		return providers.NewAzureOpenAIProvider(providers.AzureOpenAIConfig{
			Endpoint:     pc.BaseURL,
			APIKey:       apiKey,
			APIVersion:   pc.APIVersion,
			DefaultModel: pc.DefaultModel,
			MaxRetries:   3,
			RetryDelay:   time.Second,
		})
	case "openrouter":
		return providers.NewOpenRouterProvider(providers.OpenRouterConfig{
			APIKey:       apiKey,
			DefaultModel: pc.DefaultModel,
		})
	case "ollama":
		return providers.NewOllamaProvider(providers.OllamaConfig{
			BaseURL:      pc.BaseURL,
			DefaultModel: pc.DefaultModel,
			Timeout:      60 * time.Second,
		}), nil
	case "bedrock":
		return providers.NewBedrockProvider(providers.BedrockConfig{
			Region:       cfg.LLM.Bedrock.Region,
			DefaultModel: pc.DefaultModel,
			MaxRetries:   3,
			RetryDelay:   time.Second,
		})
	case "copilot_proxy":
		return providers.NewCopilotProxyProvider(providers.CopilotProxyConfig{
			BaseURL: pc.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q: configure it under [llm.providers.%s] in vtcode.toml", name, name)
	}
}

// buildProviderWithFallback constructs the default provider and wraps it in
// a fallback chain per cfg.LLM.FallbackChain, mirroring the ordering the
// run-loop itself would retry in a real deployment.
func buildProviderWithFallback(cfg *config.Config) (agent.LLMProvider, error) {
	name := cfg.LLM.DefaultProvider
	if name == "" {
		name = "anthropic"
	}
	primary, err := buildProvider(name, cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.LLM.FallbackChain) == 0 {
		return primary, nil
	}

	fallback := &fallbackProvider{primary: primary}
	for _, fbName := range cfg.LLM.FallbackChain {
		if fbName == name {
			continue
		}
		p, err := buildProvider(fbName, cfg)
		if err != nil {
			continue
		}
		fallback.chain = append(fallback.chain, p)
	}
	return fallback, nil
}
