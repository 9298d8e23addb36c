// Package machine implements deterministic multi-tape Turing machines.
//
// This package contains:
//   - Symbol/State indices and the reserved blank sentinel
//   - Alphabet: rune <-> symbol bijection for readable input and output
//   - Tape: left-bounded, right-extensible storage with a head
//   - TuringMachine: the transition table, final states and move markers
//   - The unary binary representation codec
//   - Computation: a controllable run of one machine over a set of tapes
package machine
