package generate

// Config controls the behavior of the Generator.
type Config struct {
	// QuestionCount is the number of questions requested per quiz.
	QuestionCount int

	// OptionCount is the number of answer options per question.
	OptionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 5,
		OptionCount:   4,
		MaxTokens:     2048,
		Temperature:   0.7,
	}
}
