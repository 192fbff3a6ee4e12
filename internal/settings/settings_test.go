package settings

import (
	"context"
	"testing"

	"github.com/abhisek/quizdeck/internal/llm"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestLoadMissingReturnsEmpty(t *testing.T) {
	s, err := Load(context.Background(), newMemKV())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Empty() {
		t.Errorf("settings = %+v, want empty", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	want := Settings{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o"}
	if err := Save(ctx, kv, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestClear(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	if err := Save(ctx, kv, Settings{Provider: "gemini"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Clear(ctx, kv); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	s, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Empty() {
		t.Errorf("settings after clear = %+v, want empty", s)
	}
}

func TestLoadCorruptValue(t *testing.T) {
	kv := newMemKV()
	kv.data["settings"] = "{not json"

	if _, err := Load(context.Background(), kv); err == nil {
		t.Error("expected error for corrupt settings")
	}
}

func TestApplyOverridesProvider(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Gemini.APIKey = "env-key"

	got := Apply(cfg, Settings{Provider: "anthropic", APIKey: "stored-key", Model: "claude-sonnet"})

	if got.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", got.Provider)
	}
	if got.Anthropic.APIKey != "stored-key" {
		t.Errorf("anthropic key = %q", got.Anthropic.APIKey)
	}
	if got.Anthropic.Model != "claude-sonnet" {
		t.Errorf("anthropic model = %q", got.Anthropic.Model)
	}
	// Untouched provider config survives.
	if got.Gemini.APIKey != "env-key" {
		t.Errorf("gemini key = %q, want env-key", got.Gemini.APIKey)
	}
}

func TestApplyEmptySettingsNoOp(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Gemini.APIKey = "env-key"

	got := Apply(cfg, Settings{})
	if got.Provider != cfg.Provider || got.Gemini.APIKey != "env-key" {
		t.Errorf("empty settings changed config: %+v", got)
	}
}

func TestResolvePrefersStoredSettings(t *testing.T) {
	t.Setenv("QUIZDECK_LLM_PROVIDER", "gemini")
	t.Setenv("QUIZDECK_GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	kv := newMemKV()
	ctx := context.Background()
	if err := Save(ctx, kv, Settings{Provider: "openai", APIKey: "stored-key"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Resolve(ctx, kv)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai (stored wins)", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "stored-key" {
		t.Errorf("openai key = %q", cfg.OpenAI.APIKey)
	}
}
