package quiz

import "math/rand/v2"

// ShuffleQuestion returns a copy of q with its options in uniformly random
// order and AnswerIndex recomputed to follow the originally-correct text.
// The operation is a pure permutation: no option is created, dropped, or
// edited, and exactly one position is correct before and after.
//
// rng may be nil, in which case the shared math/rand source is used.
// Tests pass a seeded source for deterministic permutations; this shuffle
// is not security relevant.
//
// Shuffling happens both at ingestion (models bias correct answers toward
// particular positions) and before each play attempt (so retries don't
// reward memorizing positions).
func ShuffleQuestion(q Question, rng *rand.Rand) (Question, error) {
	if len(q.Options) < MinOptionCount {
		return Question{}, &ValidationError{Reason: "question has fewer than 2 options"}
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return Question{}, &ValidationError{Reason: "answer index out of range"}
	}

	type pair struct {
		text    string
		correct bool
	}
	pairs := make([]pair, len(q.Options))
	for i, opt := range q.Options {
		pairs[i] = pair{text: opt, correct: i == q.AnswerIndex}
	}

	// Fisher-Yates over the (text, correct) pairs.
	for i := len(pairs) - 1; i > 0; i-- {
		j := intN(rng, i+1)
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}

	out := q
	out.Options = make([]string, len(pairs))
	for i, p := range pairs {
		out.Options[i] = p.text
		if p.correct {
			out.AnswerIndex = i
		}
	}
	return out, nil
}

// ShuffleQuestions applies ShuffleQuestion to every question, returning a
// new slice. The input is not modified.
func ShuffleQuestions(qs []Question, rng *rand.Rand) ([]Question, error) {
	out := make([]Question, len(qs))
	for i, q := range qs {
		shuffled, err := ShuffleQuestion(q, rng)
		if err != nil {
			return nil, err
		}
		out[i] = shuffled
	}
	return out, nil
}

// Reshuffled returns a play copy of the quiz with every question's options
// re-randomized. The stored quiz is untouched.
func Reshuffled(q *Quiz, rng *rand.Rand) (*Quiz, error) {
	questions, err := ShuffleQuestions(q.Questions, rng)
	if err != nil {
		return nil, err
	}
	out := *q
	out.Questions = questions
	return &out, nil
}

func intN(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.IntN(n)
	}
	return rand.IntN(n)
}
