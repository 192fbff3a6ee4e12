package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// Input describes the quiz the user asked for.
type Input struct {
	// Topic is the subject of the quiz. Required.
	Topic string

	// Details holds free-form extra instructions from the user.
	Details string

	// Difficulty is one of "beginner", "intermediate", "advanced".
	Difficulty string
}

// Generator produces quizzes via an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	rng      *rand.Rand
}

// New creates a Generator with the given provider and config. A nil rng
// uses the global source.
func New(provider llm.Provider, cfg Config, rng *rand.Rand) *Generator {
	return &Generator{provider: provider, config: cfg, rng: rng}
}

// Generate produces a single quiz for the given input. There is exactly
// one LLM call per invocation; any failure is returned to the caller,
// who decides whether to try again.
func (g *Generator) Generate(ctx context.Context, input Input) (*quiz.Quiz, error) {
	if input.Topic == "" {
		return nil, errors.New("topic is required")
	}

	ctx = llm.WithPurpose(ctx, "generate-quiz")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	raw, err := quiz.ExtractJSON(resp.Text)
	if err != nil {
		if resp.Truncated() {
			return nil, fmt.Errorf("response was cut off before the quiz was complete: %w", err)
		}
		return nil, fmt.Errorf("response did not contain a usable quiz: %w", err)
	}

	q, err := quiz.Normalize(raw, g.rng)
	if err != nil {
		return nil, fmt.Errorf("response did not contain a usable quiz: %w", err)
	}

	// The model sometimes omits the topic field; the user's input is
	// authoritative anyway.
	if q.Topic == "" {
		q.Topic = input.Topic
	}
	if q.Difficulty == "" {
		q.Difficulty = input.Difficulty
	}

	return q, nil
}
