package quizlist

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/store"
)

const pastedQuiz = `Here is your quiz: {"title":"Pasted Quiz","topic":"Go",` +
	`"questions":[{"question":"Q1","options":["a","b","c"],"answerIndex":1,"explanation":"e"}]} enjoy!`

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loadedScreen(t *testing.T, st *store.Store) *QuizListScreen {
	t.Helper()
	s := New(st)
	msg := s.Init()()
	loaded, ok := msg.(quizzesLoadedMsg)
	if !ok {
		t.Fatalf("expected quizzesLoadedMsg, got %T", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("load: %v", loaded.Err)
	}
	s.Update(loaded)
	return s
}

func TestPasteImportSavesToCustomRealm(t *testing.T) {
	st := newTestStore(t)
	s := loadedScreen(t, st)

	s.Update(keyPress('i'))
	if !s.importing {
		t.Fatal("expected paste-import mode after pressing i")
	}

	s.pasteInput.Model.SetValue(pastedQuiz)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an import command")
	}

	msg := cmd()
	imported, ok := msg.(quizImportedMsg)
	if !ok {
		t.Fatalf("expected quizImportedMsg, got %T", msg)
	}
	if imported.Err != nil {
		t.Fatalf("import: %v", imported.Err)
	}
	if imported.Title != "Pasted Quiz" {
		t.Errorf("title = %q", imported.Title)
	}
	s.Update(imported)
	if s.importing {
		t.Error("expected paste mode to end after import")
	}

	quizzes, err := st.QuizRepo(store.RealmCustom).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("custom quizzes = %d, want 1", len(quizzes))
	}
	if quizzes[0].ID == "" {
		t.Error("imported quiz has no id")
	}
	if len(quizzes[0].Questions) != 1 {
		t.Errorf("questions = %d, want 1", len(quizzes[0].Questions))
	}
}

func TestPasteImportRejectsGarbage(t *testing.T) {
	st := newTestStore(t)
	s := loadedScreen(t, st)

	s.Update(keyPress('i'))
	s.pasteInput.Model.SetValue("this is not a quiz")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an import command")
	}

	msg := cmd()
	imported := msg.(quizImportedMsg)
	if imported.Err == nil {
		t.Fatal("expected an import error for garbage input")
	}
	s.Update(imported)
	if s.errMsg == "" {
		t.Error("expected the error to be shown")
	}
	if !s.importing {
		t.Error("expected to stay in paste mode after a failed import")
	}

	quizzes, err := st.QuizRepo(store.RealmCustom).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 0 {
		t.Errorf("custom quizzes = %d, want 0", len(quizzes))
	}
}

func TestPasteImportEscCancels(t *testing.T) {
	s := loadedScreen(t, newTestStore(t))

	s.Update(keyPress('i'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.importing {
		t.Fatal("expected esc to leave paste mode")
	}
}

func TestEmptyPasteRejected(t *testing.T) {
	s := loadedScreen(t, newTestStore(t))

	s.Update(keyPress('i'))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command for an empty paste")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}
}
