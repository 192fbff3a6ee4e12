package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/quizdeck/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging. There is deliberately no retry layer: generation failures are
// surfaced to the user, who decides whether to try again.
func NewProvider(ctx context.Context, cfg Config, requestLog store.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if cfg.Timeout > 0 {
		base = &timeoutProvider{inner: base, timeout: cfg.Timeout}
	}
	if requestLog != nil {
		return WithLogging(base, cfg.Provider, requestLog), nil
	}
	return base, nil
}

// timeoutProvider bounds each Generate call with Config.Timeout. There
// is no retry, so this caps the entire generation attempt.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
