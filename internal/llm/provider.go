package llm

import "context"

// Provider is the core abstraction for generative-text interaction.
// Consumers call Generate with a Request and receive the model's raw
// reply text; recovering structured data from the reply (JSON extraction,
// validation) is the caller's concern.
type Provider interface {
	// Generate sends a prompt to the model and returns its reply.
	// Failures are opaque to callers: the message is surfaced to the
	// user verbatim, and no retry happens at this layer.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (the only case in quizdeck), this contains one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the reply.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the raw reply, prose and markdown fences included.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens".
	StopReason string
}

// Truncated reports whether the reply was cut off at the token limit.
// A truncated reply usually surfaces downstream as malformed JSON.
func (r *Response) Truncated() bool {
	return r.StopReason == StopMaxTokens
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
