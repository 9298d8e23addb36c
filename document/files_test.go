package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/mdt/machine"
)

func buildScannerSet() *Set {
	a := machine.NewAlphabet()
	a.AddString("01")
	return &Set{
		Machine:  buildScannerMachine(),
		Alphabet: a,
		Tape:     machine.NewTapeFromContent([]machine.Symbol{0, 1}),
	}
}

func TestSaveLoadSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanner.json")

	if err := SaveSet(path, buildScannerSet()); err != nil {
		t.Fatalf("SaveSet: %v", err)
	}

	// The three sibling files must exist under the derived names.
	for _, f := range []string{"scanner.json", "scanner_alph.json", "scanner_tpe.json"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}

	set, err := LoadSet(path, 1)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if set.Machine.StateCount() != 2 || !set.Machine.IsFinalState(1) {
		t.Error("machine lost in round-trip")
	}
	if set.Alphabet.SymbolCount() != 2 {
		t.Errorf("alphabet SymbolCount = %d, want 2", set.Alphabet.SymbolCount())
	}
	if set.Tape.Size() != 2 || set.Tape.Read() != 0 {
		t.Error("tape lost in round-trip")
	}
}

func TestLoadSetRejectsArityMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanner.json")
	if err := SaveSet(path, buildScannerSet()); err != nil {
		t.Fatalf("SaveSet: %v", err)
	}

	if _, err := LoadSet(path, 2); !errors.Is(err, machine.ErrTapeArity) {
		t.Errorf("err = %v, want ErrTapeArity", err)
	}
}

func TestLoadSetRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"#Tapes":0}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSet(path, 1); err == nil {
		t.Error("invalid document accepted")
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	if _, err := LoadSet(filepath.Join(t.TempDir(), "nope.json"), 1); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoadedSetBehavesLikeSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanner.json")
	if err := SaveSet(path, buildScannerSet()); err != nil {
		t.Fatalf("SaveSet: %v", err)
	}
	set, err := LoadSet(path, 1)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}

	c := machine.NewComputation(1)
	c.UseAlphabet(set.Alphabet)
	c.UseMachine(set.Machine)
	c.InputString("01")
	c.Start()
	c.WaitForTermination()

	if !c.HasAccepted() {
		t.Error("loaded machine should accept 01 like the source")
	}
	if n := c.TransitionCount(); n != 2 {
		t.Errorf("TransitionCount = %d, want 2", n)
	}
}
