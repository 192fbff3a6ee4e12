package quiz

import "time"

// DefaultOptionCount is the number of options the generator is asked to
// produce per question. Normalization accepts any count >= MinOptionCount.
const DefaultOptionCount = 4

// MinOptionCount is the minimum number of options a question may have.
const MinOptionCount = 2

// Question is a single prompt with an ordered list of candidate answers,
// exactly one of which is correct.
type Question struct {
	// Text is the question prompt displayed to the player.
	Text string `json:"question"`

	// Options is the ordered list of candidate answers. Length >= 2,
	// conventionally 4. No entry is empty.
	Options []string `json:"options"`

	// AnswerIndex is the position of the correct option.
	// Invariant: 0 <= AnswerIndex < len(Options).
	AnswerIndex int `json:"answerIndex"`

	// Explanation is shown after the player answers.
	Explanation string `json:"explanation"`
}

// Quiz is a titled, classified collection of questions with creation
// metadata. Questions is never empty for a quiz that passed Normalize.
type Quiz struct {
	// ID is an opaque unique identifier, assigned at normalization.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Topic classifies the quiz domain (a programming language, a genre
	// for custom quizzes, "Imported" for imports without one).
	Topic string `json:"topic"`

	// Difficulty is a free-form difficulty label.
	Difficulty string `json:"difficulty"`

	// Questions is the ordered, non-empty question list.
	Questions []Question `json:"questions"`

	// CreatedAt is when the quiz was normalized into the app.
	CreatedAt time.Time `json:"createdAt"`
}
