package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/internal/store"
)

func TestMockProviderFIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Text: "second"},
	)

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "first" {
		t.Errorf("first response = %q", resp.Text)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "second" {
		t.Errorf("second response = %q", resp.Text)
	}

	if _, err := mock.Generate(context.Background(), Request{}); err == nil {
		t.Error("expected error when queue is empty")
	}

	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
}

func TestMockProviderRecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})

	req := Request{
		System:   "you are a quiz writer",
		Messages: []Message{{Role: RoleUser, Content: "make a quiz"}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("Calls = %d, want 1", len(mock.Calls))
	}
	if mock.Calls[0].System != "you are a quiz writer" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
}

func TestMockProviderReturnsErrors(t *testing.T) {
	wantErr := &ErrRateLimit{Err: errors.New("slow down")}
	mock := NewMockProvider(MockResponse{Err: wantErr})

	_, err := mock.Generate(context.Background(), Request{})
	var rateErr *ErrRateLimit
	if !errors.As(err, &rateErr) {
		t.Fatalf("error = %v, want ErrRateLimit", err)
	}
}

func TestResponseTruncated(t *testing.T) {
	if (&Response{StopReason: StopEnd}).Truncated() {
		t.Error("StopEnd reported as truncated")
	}
	if !(&Response{StopReason: StopMaxTokens}).Truncated() {
		t.Error("StopMaxTokens not reported as truncated")
	}
}

type fakeRequestLog struct {
	entries []store.LLMRequestData
	err     error
}

func (f *fakeRequestLog) AppendLLMRequest(_ context.Context, data store.LLMRequestData) error {
	f.entries = append(f.entries, data)
	return f.err
}

func TestLoggingProviderRecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Text:  "ok",
		Usage: Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	})
	log := &fakeRequestLog{}
	p := WithLogging(mock, "mock", log)

	ctx := WithPurpose(context.Background(), "generate-quiz")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(log.entries) != 1 {
		t.Fatalf("logged entries = %d, want 1", len(log.entries))
	}
	entry := log.entries[0]
	if !entry.Success {
		t.Error("entry not marked successful")
	}
	if entry.Purpose != "generate-quiz" {
		t.Errorf("purpose = %q", entry.Purpose)
	}
	if entry.Provider != "mock" {
		t.Errorf("provider = %q", entry.Provider)
	}
	if entry.InputTokens != 10 || entry.OutputTokens != 20 {
		t.Errorf("tokens = %d/%d, want 10/20", entry.InputTokens, entry.OutputTokens)
	}
}

func TestLoggingProviderRecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Err: &ErrProviderUnavailable{Err: errors.New("boom")},
	})
	log := &fakeRequestLog{}
	p := WithLogging(mock, "mock", log)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from provider")
	}

	if len(log.entries) != 1 {
		t.Fatalf("logged entries = %d, want 1", len(log.entries))
	}
	entry := log.entries[0]
	if entry.Success {
		t.Error("failed request marked successful")
	}
	if entry.ErrorMessage == "" {
		t.Error("error message not recorded")
	}
	if entry.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", entry.Purpose)
	}
}

func TestLoggingProviderToleratesLogErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	log := &fakeRequestLog{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", log)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate failed because logging failed: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("response = %q", resp.Text)
	}
}

func TestNewProviderMock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Error("expected error for missing API key")
	}
}

type deadlineCheckProvider struct {
	deadline    time.Time
	sawDeadline bool
}

func (p *deadlineCheckProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	p.deadline, p.sawDeadline = ctx.Deadline()
	return &Response{Text: "ok"}, nil
}

func (p *deadlineCheckProvider) ModelID() string { return "deadline-check" }

func TestTimeoutProviderBoundsRequest(t *testing.T) {
	inner := &deadlineCheckProvider{}
	p := &timeoutProvider{inner: inner, timeout: 30 * time.Second}

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !inner.sawDeadline {
		t.Fatal("expected a deadline on the request context")
	}
	if remaining := time.Until(inner.deadline); remaining <= 0 || remaining > 30*time.Second {
		t.Errorf("deadline %v away, want within 30s", remaining)
	}
	if p.ModelID() != "deadline-check" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestTimeoutProviderKeepsEarlierDeadline(t *testing.T) {
	inner := &deadlineCheckProvider{}
	p := &timeoutProvider{inner: inner, timeout: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if remaining := time.Until(inner.deadline); remaining > time.Second {
		t.Errorf("deadline %v away, want the caller's tighter 1s bound", remaining)
	}
}
