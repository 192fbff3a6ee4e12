package llm

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("default gemini model = %q, want gemini-flash", cfg.Gemini.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("default timeout = %v, want 60s", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QUIZDECK_LLM_PROVIDER", "openai")
	t.Setenv("QUIZDECK_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZDECK_OPENAI_MODEL", "gpt-4o")
	t.Setenv("QUIZDECK_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()

	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("base url = %q", cfg.OpenAI.BaseURL)
	}
	// Unset values keep defaults.
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini model = %q, want default", cfg.Gemini.Model)
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig returned not found")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini (highest priority)", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "g-key" {
		t.Errorf("api key = %q, want g-key", cfg.Gemini.APIKey)
	}
}

func TestDiscoverConfigNoneFound(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Error("DiscoverConfig found a provider with no keys set")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveModel(t *testing.T) {
	models := map[string]string{"fast": "model-v2-fast"}

	if got := resolveModel("fast", models); got != "model-v2-fast" {
		t.Errorf("resolveModel(fast) = %q", got)
	}
	if got := resolveModel("custom-model-id", models); got != "custom-model-id" {
		t.Errorf("resolveModel passthrough = %q", got)
	}
}
