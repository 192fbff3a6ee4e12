package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizdeck/internal/llm"
)

const settingsKey = "settings"

// KV is the slice of the store the settings layer needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Settings holds the user's persisted provider configuration. Values
// set here take precedence over environment discovery.
type Settings struct {
	Provider string `json:"provider,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Empty reports whether no setting has been stored.
func (s Settings) Empty() bool {
	return s == Settings{}
}

// Load reads settings from the store. A missing record returns zero
// settings and no error.
func Load(ctx context.Context, kv KV) (Settings, error) {
	value, ok, err := kv.Get(ctx, settingsKey)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return Settings{}, nil
	}

	var s Settings
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return Settings{}, fmt.Errorf("parse stored settings: %w", err)
	}
	return s, nil
}

// Save persists settings to the store.
func Save(ctx context.Context, kv KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := kv.Set(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Clear removes stored settings.
func Clear(ctx context.Context, kv KV) error {
	if err := kv.Delete(ctx, settingsKey); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}

// Apply overlays stored settings onto an llm.Config. Unset fields leave
// the config untouched.
func Apply(cfg llm.Config, s Settings) llm.Config {
	if s.Provider != "" {
		cfg.Provider = s.Provider
	}

	switch cfg.Provider {
	case "gemini":
		if s.APIKey != "" {
			cfg.Gemini.APIKey = s.APIKey
		}
		if s.Model != "" {
			cfg.Gemini.Model = s.Model
		}
	case "openai":
		if s.APIKey != "" {
			cfg.OpenAI.APIKey = s.APIKey
		}
		if s.Model != "" {
			cfg.OpenAI.Model = s.Model
		}
	case "anthropic":
		if s.APIKey != "" {
			cfg.Anthropic.APIKey = s.APIKey
		}
		if s.Model != "" {
			cfg.Anthropic.Model = s.Model
		}
	}

	return cfg
}

// Resolve builds the effective llm.Config: environment variables first,
// then standard API key discovery, then stored settings on top.
func Resolve(ctx context.Context, kv KV) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()

	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}

	stored, err := Load(ctx, kv)
	if err != nil {
		return cfg, err
	}
	return Apply(cfg, stored), nil
}
