package machine

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Binary representation: self-delimiting unary codec over '0'/'1'
// ---------------------------------------------------------------------------
//
// A non-negative integer n is encoded as a run of n+1 '1' characters, so 0
// stays representable; Blank (-1) encodes as an empty run. Runs are
// separated by fixed-width '0' delimiters. Layout:
//
//	run(tapes) 00
//	run(stateCount) 00
//	run(symbolCount) 00
//	for each final state f, ascending: run(f) 0
//	000
//	for each transition:
//	    run(in) 00
//	    for each read symbol: run(s) 0
//	    0
//	    for each written value: run(s) 0
//	    0
//	    run(out) 000
//	0
//
// The format carries no checksum or magic header (kept bit-compatible with
// the historical representation); the decoder instead validates structure
// explicitly and rejects truncated or trailing input.

// Decode errors.
var (
	// ErrTapeArity is returned when a representation or document declares a
	// tape count different from the one requested.
	ErrTapeArity = errors.New("machine: tape count mismatch")

	// ErrMalformed is returned when a binary representation is truncated or
	// structurally invalid.
	ErrMalformed = errors.New("machine: malformed binary representation")
)

// BinaryRepresentation encodes this machine as a self-delimiting string
// over '0' and '1'. Tape contents are not part of the representation.
func (m *TuringMachine) BinaryRepresentation() string {
	var b strings.Builder

	run := func(n int) {
		for i := 0; i <= n; i++ {
			b.WriteByte('1')
		}
	}

	run(m.tapes)
	b.WriteString("00")
	run(int(m.stateCount))
	b.WriteString("00")
	run(int(m.symbolCount))
	b.WriteString("00")

	for _, f := range m.FinalStates() {
		run(int(f))
		b.WriteByte('0')
	}
	b.WriteString("000")

	for _, t := range m.Transitions() {
		run(int(t.In))
		b.WriteString("00")
		for _, s := range t.Read {
			run(int(s))
			b.WriteByte('0')
		}
		b.WriteByte('0')
		for _, s := range t.Write {
			run(int(s))
			b.WriteByte('0')
		}
		b.WriteByte('0')
		run(int(t.Out))
		b.WriteString("000")
	}
	b.WriteByte('0')

	return b.String()
}

// binReader consumes a binary representation field by field.
type binReader struct {
	s   string
	pos int
}

// run counts a '1' run and returns its length minus one.
func (r *binReader) run() int {
	n := -1
	for r.pos < len(r.s) && r.s[r.pos] == '1' {
		n++
		r.pos++
	}
	return n
}

// delim consumes n '0' delimiter characters.
func (r *binReader) delim(n int) error {
	for i := 0; i < n; i++ {
		if r.pos >= len(r.s) || r.s[r.pos] != '0' {
			return fmt.Errorf("%w: expected delimiter at offset %d", ErrMalformed, r.pos)
		}
		r.pos++
	}
	return nil
}

// more reports whether the next field starts with a '1' run.
func (r *binReader) more() bool {
	return r.pos < len(r.s) && r.s[r.pos] == '1'
}

// DecodeBinary parses a binary representation into a fresh machine of the
// given tape arity. A representation declaring a different tape count is
// rejected with ErrTapeArity; truncated or trailing input is rejected with
// ErrMalformed. On error no machine is returned.
func DecodeBinary(tapes int, repr string) (*TuringMachine, error) {
	r := &binReader{s: repr}

	k := r.run()
	if err := r.delim(2); err != nil {
		return nil, err
	}
	if k != tapes {
		return nil, fmt.Errorf("%w: representation declares %d tapes, want %d", ErrTapeArity, k, tapes)
	}

	states := r.run()
	if err := r.delim(2); err != nil {
		return nil, err
	}
	symbols := r.run()
	if err := r.delim(2); err != nil {
		return nil, err
	}
	if states < 1 || symbols < 1 {
		return nil, fmt.Errorf("%w: non-positive state or symbol count", ErrMalformed)
	}

	m := NewTuringMachine(tapes, State(states), Symbol(symbols))

	for r.more() {
		f := r.run()
		if err := r.delim(1); err != nil {
			return nil, err
		}
		m.AddFinalState(State(f))
	}
	if err := r.delim(3); err != nil {
		return nil, err
	}

	for r.more() {
		in := r.run()
		if err := r.delim(2); err != nil {
			return nil, err
		}

		read := make([]Symbol, tapes)
		for i := range read {
			read[i] = Symbol(r.run())
			if err := r.delim(1); err != nil {
				return nil, err
			}
		}
		if err := r.delim(1); err != nil {
			return nil, err
		}

		write := make([]Symbol, tapes)
		for i := range write {
			write[i] = Symbol(r.run())
			if err := r.delim(1); err != nil {
				return nil, err
			}
		}
		if err := r.delim(1); err != nil {
			return nil, err
		}

		out := r.run()
		if err := r.delim(3); err != nil {
			return nil, err
		}

		m.AddTransition(State(in), read, write, State(out))
	}

	if err := r.delim(1); err != nil {
		return nil, err
	}
	if r.pos != len(r.s) {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrMalformed, r.pos)
	}
	return m, nil
}
