package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizdeck/internal/llm"
)

const validQuizJSON = `{
  "title": "Go Basics",
  "topic": "go",
  "difficulty": "beginner",
  "questions": [
    {
      "question": "What keyword declares a function?",
      "options": ["func", "def", "fn", "function"],
      "answerIndex": 0,
      "explanation": "Go uses the func keyword."
    },
    {
      "question": "Which type holds true or false?",
      "options": ["bit", "bool", "flag", "byte"],
      "answerIndex": 1,
      "explanation": "bool is Go's boolean type."
    }
  ]
}`

func TestGenerateSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validQuizJSON})
	g := New(mock, DefaultConfig(), nil)

	q, err := g.Generate(context.Background(), Input{Topic: "go", Difficulty: "beginner"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if q.Title != "Go Basics" {
		t.Errorf("title = %q", q.Title)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(q.Questions))
	}
	if q.ID == "" {
		t.Error("quiz has no id")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestGenerateHandlesProseWrappedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "Here is your quiz:\n" + validQuizJSON + "\nEnjoy!",
	})
	g := New(mock, DefaultConfig(), nil)

	q, err := g.Generate(context.Background(), Input{Topic: "go", Difficulty: "beginner"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Title != "Go Basics" {
		t.Errorf("title = %q", q.Title)
	}
}

func TestGenerateBackfillsTopic(t *testing.T) {
	payload := `{"title": "T", "questions": [{"question": "Q?", "options": ["a", "b"], "answerIndex": 0}]}`
	mock := llm.NewMockProvider(llm.MockResponse{Text: payload})
	g := New(mock, DefaultConfig(), nil)

	q, err := g.Generate(context.Background(), Input{Topic: "history", Difficulty: "advanced"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Topic != "history" {
		t.Errorf("topic = %q, want history", q.Topic)
	}
	if q.Difficulty != "advanced" {
		t.Errorf("difficulty = %q, want advanced", q.Difficulty)
	}
}

func TestGenerateRequiresTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, DefaultConfig(), nil)

	if _, err := g.Generate(context.Background(), Input{}); err == nil {
		t.Error("expected error for empty topic")
	}
	if mock.CallCount() != 0 {
		t.Error("provider was called despite invalid input")
	}
}

func TestGenerateNoRetryOnFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := New(mock, DefaultConfig(), nil)

	if _, err := g.Generate(context.Background(), Input{Topic: "go"}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want exactly 1", mock.CallCount())
	}
}

func TestGenerateMentionsTruncation(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Text: `prefix {"title": "T", "quest`})
	// MockProvider always reports a clean stop, so wrap it to force the
	// truncated stop reason.
	truncated := &stopOverrideProvider{inner: mock, stopReason: llm.StopMaxTokens}
	g := New(truncated, DefaultConfig(), nil)

	_, err := g.Generate(context.Background(), Input{Topic: "go"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cut off") {
		t.Errorf("error does not mention truncation: %v", err)
	}
}

func TestGenerateBadPayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"title": "T"}`})
	g := New(mock, DefaultConfig(), nil)

	if _, err := g.Generate(context.Background(), Input{Topic: "go"}); err == nil {
		t.Error("expected error for payload without questions")
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(Input{
		Topic:      "chemistry",
		Details:    "focus on organic compounds",
		Difficulty: "intermediate",
	}, DefaultConfig())

	for _, want := range []string{
		"Topic: chemistry",
		"intermediate",
		"Questions: 5",
		"Options per question: 4",
		"focus on organic compounds",
		"answerIndex",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

type stopOverrideProvider struct {
	inner      llm.Provider
	stopReason string
}

func (s *stopOverrideProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := s.inner.Generate(ctx, req)
	if resp != nil {
		resp.StopReason = s.stopReason
	}
	return resp, err
}

func (s *stopOverrideProvider) ModelID() string { return s.inner.ModelID() }
