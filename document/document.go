// Package document maps machines, alphabets and tapes to and from their
// JSON interchange documents, and handles the on-disk file convention for
// saved machine sets.
//
// The document layouts are format-exact for compatibility with existing
// files: a machine document carries "#Tapes"/"#States"/"#Symbols"/"FStates"/
// "Transitions", an alphabet document is an array of [index, "rune"] pairs
// and a tape document carries "Content" and "Head".
package document

import (
	"encoding/json"
	"fmt"

	"github.com/chazu/mdt/machine"
)

// ---------------------------------------------------------------------------
// Document types
// ---------------------------------------------------------------------------

// Machine is the JSON interchange form of a TuringMachine. Values in a
// transition's "a" tuple may equal #Symbols (move right) or #Symbols+1
// (move left).
type Machine struct {
	Tapes       int          `json:"#Tapes"`
	States      int          `json:"#States"`
	Symbols     int          `json:"#Symbols"`
	FStates     []int        `json:"FStates"`
	Transitions []Transition `json:"Transitions"`
}

// Transition is one table entry of a machine document.
type Transition struct {
	Q int   `json:"q"`
	X []int `json:"x"`
	A []int `json:"a"`
	T int   `json:"t"`
}

// Tape is the JSON interchange form of a tape: its cells and head position.
type Tape struct {
	Content []int `json:"Content"`
	Head    int   `json:"Head"`
}

// Alphabet is the JSON interchange form of an alphabet: one entry per
// symbol, in index order.
type Alphabet []AlphabetEntry

// AlphabetEntry is a single [index, "rune"] pair.
type AlphabetEntry struct {
	Index int
	Char  string
}

// MarshalJSON renders the entry as a two-element array.
func (e AlphabetEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Index, e.Char})
}

// UnmarshalJSON parses a two-element [index, "rune"] array.
func (e *AlphabetEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("document: alphabet entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Index); err != nil {
		return fmt.Errorf("document: alphabet entry index: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Char); err != nil {
		return fmt.Errorf("document: alphabet entry rune: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Encoding and decoding
// ---------------------------------------------------------------------------

// EncodeAlphabet builds an alphabet document, one entry per symbol in index
// order.
func EncodeAlphabet(a *machine.Alphabet) Alphabet {
	doc := make(Alphabet, 0, a.SymbolCount())
	for i := 0; i < a.SymbolCount(); i++ {
		r, _ := a.Rune(machine.Symbol(i))
		doc = append(doc, AlphabetEntry{Index: i, Char: string(r)})
	}
	return doc
}

// DecodeAlphabet rebuilds an alphabet from its document, registering the
// first rune of each entry in document order.
func DecodeAlphabet(doc Alphabet) *machine.Alphabet {
	a := machine.NewAlphabet()
	for _, e := range doc {
		for _, r := range e.Char {
			a.Add(r)
			break
		}
	}
	return a
}

// EncodeTape builds a tape document from a tape's cells and head position.
func EncodeTape(t *machine.Tape) Tape {
	content := t.Content()
	cells := make([]int, len(content))
	for i, s := range content {
		cells[i] = int(s)
	}
	return Tape{Content: cells, Head: t.HeadPosition()}
}

// DecodeTape rebuilds a tape from its document, growing the tape as needed
// to reach the recorded head position.
func DecodeTape(doc Tape) *machine.Tape {
	content := make([]machine.Symbol, len(doc.Content))
	for i, s := range doc.Content {
		content[i] = machine.Symbol(s)
	}
	t := machine.NewTapeFromContent(content)
	for i := 0; i < doc.Head; i++ {
		t.MoveRight()
	}
	return t
}

// EncodeMachine builds a machine document. The machine is run through the
// binary codec first, so the two encodings are cross-checked against each
// other on every save.
func EncodeMachine(m *machine.TuringMachine) (Machine, error) {
	parsed, err := machine.DecodeBinary(m.Tapes(), m.BinaryRepresentation())
	if err != nil {
		return Machine{}, fmt.Errorf("document: binary representation does not round-trip: %w", err)
	}

	doc := Machine{
		Tapes:       parsed.Tapes(),
		States:      int(parsed.StateCount()),
		Symbols:     int(parsed.SymbolCount()),
		FStates:     []int{},
		Transitions: []Transition{},
	}
	for _, f := range parsed.FinalStates() {
		doc.FStates = append(doc.FStates, int(f))
	}
	for _, tr := range parsed.Transitions() {
		doc.Transitions = append(doc.Transitions, Transition{
			Q: int(tr.In),
			X: symbolsToInts(tr.Read),
			A: symbolsToInts(tr.Write),
			T: int(tr.Out),
		})
	}
	return doc, nil
}

// DecodeMachine rebuilds a machine from its document. A document declaring
// a tape count different from the requested arity is rejected with
// machine.ErrTapeArity; nothing is constructed in that case.
func DecodeMachine(doc Machine, tapes int) (*machine.TuringMachine, error) {
	if doc.Tapes != tapes {
		return nil, fmt.Errorf("%w: document declares %d tapes, want %d",
			machine.ErrTapeArity, doc.Tapes, tapes)
	}

	m := machine.NewTuringMachine(tapes, machine.State(doc.States), machine.Symbol(doc.Symbols))
	for _, f := range doc.FStates {
		m.AddFinalState(machine.State(f))
	}
	for _, tr := range doc.Transitions {
		m.AddTransition(machine.State(tr.Q), intsToSymbols(tr.X), intsToSymbols(tr.A), machine.State(tr.T))
	}
	return m, nil
}

func symbolsToInts(syms []machine.Symbol) []int {
	out := make([]int, len(syms))
	for i, s := range syms {
		out[i] = int(s)
	}
	return out
}

func intsToSymbols(ints []int) []machine.Symbol {
	out := make([]machine.Symbol, len(ints))
	for i, s := range ints {
		out[i] = machine.Symbol(s)
	}
	return out
}
