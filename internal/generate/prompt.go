package generate

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz author creating multiple-choice quizzes.

Rules:
- Generate a quiz on the given topic at the given difficulty level.
- Each question must be clear, self-contained, and factually correct.
- Provide exactly the requested number of options per question, where exactly one is correct. Distractors should be plausible, not obviously wrong.
- Vary the position of the correct answer across questions.
- Include a short explanation for each question that says why the correct answer is right.
- Respond with a single JSON object and nothing else. No markdown fences, no commentary before or after the JSON.`

// difficultyLabels maps difficulty identifiers to the phrasing used in
// the prompt.
var difficultyLabels = map[string]string{
	"beginner":     "beginner (assumes no prior knowledge)",
	"intermediate": "intermediate (assumes working familiarity)",
	"advanced":     "advanced (assumes deep expertise)",
}

// buildUserMessage constructs the user message from the generation
// input and config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficultyLabel(input.Difficulty))
	fmt.Fprintf(&b, "Questions: %d\n", cfg.QuestionCount)
	fmt.Fprintf(&b, "Options per question: %d\n", cfg.OptionCount)

	if input.Details != "" {
		b.WriteString("\nAdditional instructions:\n")
		b.WriteString(input.Details)
		b.WriteString("\n")
	}

	b.WriteString("\nRespond with JSON in this exact shape:\n")
	b.WriteString(`{
  "title": "string",
  "topic": "string",
  "difficulty": "string",
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "answerIndex": 0,
      "explanation": "string"
    }
  ]
}`)

	return b.String()
}

func difficultyLabel(d string) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return d
}
