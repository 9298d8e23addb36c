package machine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// TuringMachine: transition table, final states, move markers
// ---------------------------------------------------------------------------

// Transition is one entry of a machine's transition table: in state In,
// reading Read (one symbol per tape), write Write (one symbol or move
// marker per tape) and switch to state Out.
type Transition struct {
	In    State
	Read  []Symbol
	Write []Symbol
	Out   State
}

// TuringMachine is the logical definition of a deterministic Turing machine
// with a fixed number of tapes. It holds no execution state; see Computation
// for running one.
//
// Head movement is expressed through two reserved per-machine values in the
// written half of a transition: with r symbols, r means "move right" and
// r+1 means "move left". These markers are only meaningful inside this
// machine's transitions, never as tape content.
//
// The table is functional in (state, read symbols): adding a transition
// whose key is already present keeps the existing entry and discards the
// new one. This protects the determinism of the model from silent
// overwrites; replacing a transition requires an explicit RemoveTransition
// first.
type TuringMachine struct {
	tapes       int
	stateCount  State
	symbolCount Symbol
	finalStates map[State]struct{}
	transitions map[string]Transition
}

// NewTuringMachine creates a machine with the given tape count, state count
// and symbol count. Non-positive counts are coerced to 1. The counts are
// fixed for the machine's lifetime.
func NewTuringMachine(tapes int, states State, symbols Symbol) *TuringMachine {
	if tapes < 1 {
		tapes = 1
	}
	if states < 1 {
		states = 1
	}
	if symbols < 1 {
		symbols = 1
	}
	return &TuringMachine{
		tapes:       tapes,
		stateCount:  states,
		symbolCount: symbols,
		finalStates: make(map[State]struct{}),
		transitions: make(map[string]Transition),
	}
}

// Tapes returns the number of tapes this machine drives.
func (m *TuringMachine) Tapes() int {
	return m.tapes
}

// StateCount returns the number of states.
func (m *TuringMachine) StateCount() State {
	return m.stateCount
}

// SymbolCount returns the number of symbols in the working alphabet.
func (m *TuringMachine) SymbolCount() Symbol {
	return m.symbolCount
}

// MoveRightMarker returns this machine's "move head right" value.
func (m *TuringMachine) MoveRightMarker() Symbol {
	return m.symbolCount
}

// MoveLeftMarker returns this machine's "move head left" value.
func (m *TuringMachine) MoveLeftMarker() Symbol {
	return m.symbolCount + 1
}

// transitionKey builds the table key for (q, read). Read tuples may contain
// Blank, so symbols are rendered in decimal rather than packed.
func transitionKey(q State, read []Symbol) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(q)))
	for _, s := range read {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}

// AddTransition adds (in, read) -> (write, out) to the table.
//
// Out-of-range input is silently discarded: states must be below the state
// count, read symbols below the symbol count, written values below the
// symbol count plus the two move markers, and both tuples must have one
// entry per tape. Blank is allowed in either tuple.
//
// If a transition with the same (in, read) key exists, the existing entry
// wins and the new one is dropped.
func (m *TuringMachine) AddTransition(in State, read, write []Symbol, out State) {
	if in < 0 || in >= m.stateCount || out < 0 || out >= m.stateCount {
		return
	}
	if len(read) != m.tapes || len(write) != m.tapes {
		return
	}
	for _, s := range read {
		if s < Blank || s >= m.symbolCount {
			return
		}
	}
	for _, s := range write {
		if s < Blank || s >= m.symbolCount+2 {
			return
		}
	}

	key := transitionKey(in, read)
	if _, ok := m.transitions[key]; ok {
		return
	}
	r := make([]Symbol, len(read))
	copy(r, read)
	w := make([]Symbol, len(write))
	copy(w, write)
	m.transitions[key] = Transition{In: in, Read: r, Write: w, Out: out}
}

// RemoveTransition deletes the transition keyed by (q, read), if present.
func (m *TuringMachine) RemoveTransition(q State, read []Symbol) {
	delete(m.transitions, transitionKey(q, read))
}

// GetTransition looks up the transition for (q, read). It returns the out
// state and a copy of the written tuple, or ok == false if the machine has
// no transition for that configuration.
func (m *TuringMachine) GetTransition(q State, read []Symbol) (State, []Symbol, bool) {
	t, ok := m.transitions[transitionKey(q, read)]
	if !ok {
		return 0, nil, false
	}
	w := make([]Symbol, len(t.Write))
	copy(w, t.Write)
	return t.Out, w, true
}

// TransitionCount returns the number of entries in the table.
func (m *TuringMachine) TransitionCount() int {
	return len(m.transitions)
}

// Transitions returns a copy of the transition table, ordered by input
// state and then by read tuple.
func (m *TuringMachine) Transitions() []Transition {
	out := make([]Transition, 0, len(m.transitions))
	for _, t := range m.transitions {
		r := make([]Symbol, len(t.Read))
		copy(r, t.Read)
		w := make([]Symbol, len(t.Write))
		copy(w, t.Write)
		out = append(out, Transition{In: t.In, Read: r, Write: w, Out: t.Out})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].In != out[j].In {
			return out[i].In < out[j].In
		}
		for k := range out[i].Read {
			if out[i].Read[k] != out[j].Read[k] {
				return out[i].Read[k] < out[j].Read[k]
			}
		}
		return false
	})
	return out
}

// AddFinalState marks q as final. Out-of-range states are discarded.
func (m *TuringMachine) AddFinalState(q State) {
	if q < 0 || q >= m.stateCount {
		return
	}
	m.finalStates[q] = struct{}{}
}

// AddFinalStates marks each given state as final, with the same validation
// as AddFinalState.
func (m *TuringMachine) AddFinalStates(states ...State) {
	for _, q := range states {
		m.AddFinalState(q)
	}
}

// IsFinalState reports whether q is marked final.
func (m *TuringMachine) IsFinalState(q State) bool {
	_, ok := m.finalStates[q]
	return ok
}

// FinalStates returns the final states in ascending order.
func (m *TuringMachine) FinalStates() []State {
	out := make([]State, 0, len(m.finalStates))
	for q := range m.finalStates {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String returns a readable dump of the machine: states, final states,
// symbol and marker counts, and every transition. Debug only, not a
// persistence format.
func (m *TuringMachine) String() string {
	var b strings.Builder

	b.WriteString("States Q = { ")
	for i := State(0); i < m.stateCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "q%d", i)
	}
	fmt.Fprintf(&b, " }\n|Q| = %d\n\n", m.stateCount)

	b.WriteString("Final States F = { ")
	for i, q := range m.FinalStates() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "q%d", q)
	}
	b.WriteString(" }\n\n")

	fmt.Fprintf(&b, "Number of symbols |S| = %d\n", m.symbolCount)
	fmt.Fprintf(&b, "Right (R): %d\n", m.MoveRightMarker())
	fmt.Fprintf(&b, "Left (L): %d\n\n", m.MoveLeftMarker())

	fmt.Fprintf(&b, "Number of tapes: %d\n\n", m.tapes)

	b.WriteString("Transitions:\n")
	for _, t := range m.Transitions() {
		fmt.Fprintf(&b, "%d (", t.In)
		for i, s := range t.Read {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", s)
		}
		b.WriteString(") (")
		for i, s := range t.Write {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", s)
		}
		fmt.Fprintf(&b, ") %d\n", t.Out)
	}
	return b.String()
}
