package history

import (
	"context"
	"testing"
)

// memRepo is an in-memory Repo for tests.
type memRepo struct {
	data map[string]*ScoreHistory
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string]*ScoreHistory{}}
}

func (m *memRepo) All(ctx context.Context) (map[string]*ScoreHistory, error) {
	out := make(map[string]*ScoreHistory, len(m.data))
	for k, v := range m.data {
		copied := *v
		copied.Scores = append([]ScoreRecord(nil), v.Scores...)
		out[k] = &copied
	}
	return out, nil
}

func (m *memRepo) ReplaceAll(ctx context.Context, all map[string]*ScoreHistory) error {
	m.data = all
	return nil
}

func TestSaveScore_FirstSaveCreatesHistory(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	record, err := svc.SaveScore(ctx, "quiz-1", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if record.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", record.Percentage)
	}

	h, err := svc.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatal(err)
	}
	if h == nil {
		t.Fatal("history not created")
	}
	if h.TargetScore != DefaultTargetScore {
		t.Errorf("TargetScore = %d, want %d", h.TargetScore, DefaultTargetScore)
	}
	if len(h.Scores) != 1 {
		t.Fatalf("Scores length = %d, want 1", len(h.Scores))
	}
	if h.Scores[0].Score != 1 || h.Scores[0].TotalQuestions != 2 {
		t.Errorf("record = %+v", h.Scores[0])
	}
}

func TestSaveScore_WindowKeepsFiveMostRecent(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	// Six sequential saves; scores 0..5 out of 10.
	for i := 0; i <= 5; i++ {
		if _, err := svc.SaveScore(ctx, "quiz-1", i, 10); err != nil {
			t.Fatal(err)
		}
	}

	h, err := svc.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Scores) != MaxRecords {
		t.Fatalf("Scores length = %d, want %d", len(h.Scores), MaxRecords)
	}
	// Oldest (score 0) dropped; window is scores 1..5 in order.
	for i, r := range h.Scores {
		if r.Score != i+1 {
			t.Errorf("Scores[%d].Score = %d, want %d", i, r.Score, i+1)
		}
	}
}

func TestSaveScore_PercentageRounding(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	cases := []struct {
		score, total, want int
	}{
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{0, 5, 0},
		{5, 5, 100},
	}
	for _, c := range cases {
		record, err := svc.SaveScore(ctx, "quiz-r", c.score, c.total)
		if err != nil {
			t.Fatal(err)
		}
		if record.Percentage != c.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", c.score, c.total, record.Percentage, c.want)
		}
	}
}

func TestSaveScore_RejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.SaveScore(ctx, "q", 1, 0); err == nil {
		t.Error("zero total accepted")
	}
	if _, err := svc.SaveScore(ctx, "q", -1, 5); err == nil {
		t.Error("negative score accepted")
	}
	if _, err := svc.SaveScore(ctx, "q", 6, 5); err == nil {
		t.Error("score above total accepted")
	}
}

func TestSetTarget(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	if err := svc.SetTarget(ctx, "quiz-1", 95); err != nil {
		t.Fatal(err)
	}
	h, err := svc.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatal(err)
	}
	if h.TargetScore != 95 {
		t.Errorf("TargetScore = %d, want 95", h.TargetScore)
	}

	if err := svc.SetTarget(ctx, "quiz-1", 101); err == nil {
		t.Error("target above 100 accepted")
	}
	if err := svc.SetTarget(ctx, "quiz-1", -1); err == nil {
		t.Error("negative target accepted")
	}
}

func TestReset_ClearsScoresKeepsTarget(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	if err := svc.SetTarget(ctx, "quiz-1", 90); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveScore(ctx, "quiz-1", 3, 5); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reset(ctx, "quiz-1"); err != nil {
		t.Fatal(err)
	}

	h, err := svc.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Scores) != 0 {
		t.Errorf("Scores length = %d after reset", len(h.Scores))
	}
	if h.TargetScore != 90 {
		t.Errorf("TargetScore = %d, reset should keep the target", h.TargetScore)
	}
}

func TestResetAll(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := svc.SaveScore(ctx, id, 1, 2); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatal(err)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("histories remaining after ResetAll: %d", len(all))
	}
}

func TestDelete_RemovesEntryEntirely(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.SaveScore(ctx, "quiz-1", 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "quiz-1"); err != nil {
		t.Fatal(err)
	}

	h, err := svc.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatal(err)
	}
	if h != nil {
		t.Error("history still present after delete")
	}
}

func TestScoreHistory_Helpers(t *testing.T) {
	h := &ScoreHistory{
		QuizID:      "q",
		TargetScore: 80,
		Scores: []ScoreRecord{
			{Percentage: 40},
			{Percentage: 90},
			{Percentage: 85},
		},
	}

	if h.Best() != 90 {
		t.Errorf("Best = %d, want 90", h.Best())
	}
	if h.Latest().Percentage != 85 {
		t.Errorf("Latest = %d, want 85", h.Latest().Percentage)
	}
	if !h.TargetMet() {
		t.Error("TargetMet = false, latest 85 >= target 80")
	}

	empty := &ScoreHistory{TargetScore: 80}
	if empty.Best() != 0 || empty.Latest() != nil || empty.TargetMet() {
		t.Error("empty history helpers misbehave")
	}
}
