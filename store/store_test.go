package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/chazu/mdt/document"
	"github.com/chazu/mdt/machine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func buildScannerSet() *document.Set {
	m := machine.NewTuringMachine(1, 2, 2)
	m.AddFinalState(1)
	m.AddTransition(0, []machine.Symbol{0}, []machine.Symbol{m.MoveRightMarker()}, 0)
	m.AddTransition(0, []machine.Symbol{1}, []machine.Symbol{m.MoveRightMarker()}, 1)

	a := machine.NewAlphabet()
	a.AddString("01")

	return &document.Set{
		Machine:  m,
		Alphabet: a,
		Tape:     machine.NewTapeFromContent([]machine.Symbol{0, 1}),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("scanner", buildScannerSet()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	set, err := s.Load("scanner", 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if set.Machine.StateCount() != 2 || !set.Machine.IsFinalState(1) {
		t.Error("machine lost in store round-trip")
	}
	if set.Alphabet.SymbolCount() != 2 {
		t.Errorf("alphabet SymbolCount = %d, want 2", set.Alphabet.SymbolCount())
	}
	if set.Tape.Size() != 2 {
		t.Errorf("tape Size = %d, want 2", set.Tape.Size())
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("m", buildScannerSet()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := buildScannerSet()
	other.Machine = machine.NewTuringMachine(1, 3, 2)
	if err := s.Save("m", other); err != nil {
		t.Fatalf("Save replace: %v", err)
	}

	set, err := s.Load("m", 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Machine.StateCount() != 3 {
		t.Errorf("StateCount = %d, want the replacement's 3", set.Machine.StateCount())
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List has %d entries, want 1", len(entries))
	}
}

func TestStoreLoadArityMismatch(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save("scanner", buildScannerSet()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load("scanner", 2); !errors.Is(err, machine.ErrTapeArity) {
		t.Errorf("err = %v, want ErrTapeArity", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load("ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"b", "a", "c"} {
		if err := s.Save(name, buildScannerSet()); err != nil {
			t.Fatalf("Save %q: %v", name, err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List has %d entries, want 3", len(entries))
	}
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Name != want {
			t.Errorf("entry %d = %q, want %q (ordered by name)", i, entries[i].Name, want)
		}
		if entries[i].Tapes != 1 {
			t.Errorf("entry %d tapes = %d, want 1", i, entries[i].Tapes)
		}
	}

	if err := s.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("b", 1); !errors.Is(err, ErrNotFound) {
		t.Error("deleted machine still loads")
	}
	if err := s.Delete("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}
