package quiz

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func sampleQuestion() Question {
	return Question{
		Text:        "Which method appends to a Python list?",
		Options:     []string{"add()", "push()", "append()", "insert_end()"},
		AnswerIndex: 2,
		Explanation: "append() adds a single element to the end of a list.",
	}
}

func TestShuffleQuestion_PreservesCorrectText(t *testing.T) {
	q := sampleQuestion()
	correctText := q.Options[q.AnswerIndex]

	for seed := uint64(0); seed < 50; seed++ {
		shuffled, err := ShuffleQuestion(q, testRand(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got := shuffled.Options[shuffled.AnswerIndex]; got != correctText {
			t.Fatalf("seed %d: correct option = %q, want %q", seed, got, correctText)
		}
	}
}

func TestShuffleQuestion_IsPermutation(t *testing.T) {
	q := sampleQuestion()

	shuffled, err := ShuffleQuestion(q, testRand(7))
	if err != nil {
		t.Fatal(err)
	}

	want := append([]string(nil), q.Options...)
	got := append([]string(nil), shuffled.Options...)
	sort.Strings(want)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("option count changed: %d -> %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("option multiset changed: %v vs %v", want, got)
		}
	}
}

func TestShuffleQuestion_DoesNotMutateInput(t *testing.T) {
	q := sampleQuestion()
	origOptions := append([]string(nil), q.Options...)
	origIndex := q.AnswerIndex

	if _, err := ShuffleQuestion(q, testRand(3)); err != nil {
		t.Fatal(err)
	}

	if q.AnswerIndex != origIndex {
		t.Error("input AnswerIndex mutated")
	}
	for i := range origOptions {
		if q.Options[i] != origOptions[i] {
			t.Error("input Options mutated")
		}
	}
}

func TestShuffleQuestion_RepeatedApplication(t *testing.T) {
	// Repeated shuffles may move the correct option but never change
	// which text is correct.
	q := sampleQuestion()
	correctText := q.Options[q.AnswerIndex]
	rng := testRand(11)

	var err error
	for i := 0; i < 20; i++ {
		q, err = ShuffleQuestion(q, rng)
		if err != nil {
			t.Fatal(err)
		}
		if q.Options[q.AnswerIndex] != correctText {
			t.Fatalf("iteration %d: correct text drifted to %q", i, q.Options[q.AnswerIndex])
		}
	}
}

func TestShuffleQuestion_MovesAnswerEventually(t *testing.T) {
	q := sampleQuestion()
	moved := false
	for seed := uint64(0); seed < 20; seed++ {
		shuffled, err := ShuffleQuestion(q, testRand(seed))
		if err != nil {
			t.Fatal(err)
		}
		if shuffled.AnswerIndex != q.AnswerIndex {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("answer position never changed across 20 seeds")
	}
}

func TestShuffleQuestion_TooFewOptions(t *testing.T) {
	q := Question{Text: "Q", Options: []string{"only"}, AnswerIndex: 0}
	_, err := ShuffleQuestion(q, testRand(1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestShuffleQuestion_AnswerIndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 2, 99} {
		q := Question{Text: "Q", Options: []string{"a", "b"}, AnswerIndex: idx}
		_, err := ShuffleQuestion(q, testRand(1))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("AnswerIndex=%d: err = %v, want ValidationError", idx, err)
		}
	}
}

func TestReshuffled_LeavesStoredQuizUntouched(t *testing.T) {
	stored := &Quiz{
		ID:        "q-1",
		Title:     "Sample",
		Questions: []Question{sampleQuestion(), sampleQuestion()},
	}
	origIndex := stored.Questions[0].AnswerIndex

	play, err := Reshuffled(stored, testRand(5))
	if err != nil {
		t.Fatal(err)
	}

	if len(play.Questions) != len(stored.Questions) {
		t.Fatalf("question count changed: %d", len(play.Questions))
	}
	if stored.Questions[0].AnswerIndex != origIndex {
		t.Error("stored quiz mutated by play-time reshuffle")
	}
	if play.ID != stored.ID {
		t.Errorf("play copy id = %q, want %q", play.ID, stored.ID)
	}
}
