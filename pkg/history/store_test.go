package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Mokshitha4/Aura/pkg/types"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return store
}

func TestLoadEmptyWhenMissing(t *testing.T) {
	store := newTestStore(t)

	turns, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected empty history, got %d turns", len(turns))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := []types.Turn{
		types.NewUserTurn("hello"),
		types.NewAgentTurn("hi there"),
		types.NewUserTurn("what did I just say?"),
		types.NewAgentTurn("you said hello"),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("expected %d turns, got %d", len(saved), len(loaded))
	}
	for i := range saved {
		if loaded[i].Sender != saved[i].Sender || loaded[i].Text != saved[i].Text {
			t.Errorf("turn %d mismatch: got {%v %q}, want {%v %q}",
				i, loaded[i].Sender, loaded[i].Text, saved[i].Sender, saved[i].Text)
		}
	}
}

func TestSaveFiltersNonPersistableTurns(t *testing.T) {
	store := newTestStore(t)

	turns := []types.Turn{
		types.NewUserTurn("hello"),
		types.NewPendingTurn(),
		types.NewErrorTurn("service down"),
		types.NewAgentTurn("hi there"),
	}
	if err := store.Save(turns); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 persisted turns, got %d", len(loaded))
	}
	if loaded[0].Text != "hello" || loaded[1].Text != "hi there" {
		t.Errorf("unexpected persisted turns: %+v", loaded)
	}
}

func TestSaveIdempotent(t *testing.T) {
	store := newTestStore(t)
	turns := []types.Turn{types.NewUserTurn("hello"), types.NewAgentTurn("hi there")}

	if err := store.Save(turns); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	first, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read after first save: %v", err)
	}

	if err := store.Save(turns); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	second, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read after second save: %v", err)
	}

	if string(first) != string(second) {
		t.Error("saving the same history twice should produce identical stored state")
	}
}

func TestSaveReplacesWholeValue(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save([]types.Turn{
		types.NewUserTurn("one"),
		types.NewAgentTurn("two"),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save([]types.Turn{types.NewUserTurn("only")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "only" {
		t.Errorf("expected overwrite semantics, got %+v", loaded)
	}
}

func TestLoadCorruptFileReturnsError(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected error for corrupt history file")
	}
}
