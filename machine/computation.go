package machine

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Computation: a controllable run of one machine over a set of tapes
// ---------------------------------------------------------------------------

// Computation executes one TuringMachine over its own set of tapes.
//
// The lifecycle is Idle -> Running -> (Paused <-> Running) -> Terminated or
// Stopped. Terminated means the machine halted on its own (no transition
// applied); Stopped means the caller forced it. Both are terminal, and a
// computation is not restartable.
//
// Exactly one worker goroutine drives stepping. Pause, Resume, Stop and the
// query methods are safe to call from any goroutine while the worker runs.
// Cancellation is cooperative: it is observed between steps, never mid-step,
// so a step always commits atomically with respect to Stop.
//
// A computation owns its tapes exclusively. The machine and alphabet may be
// shared across computations only if nobody mutates them while any of those
// computations run.
type Computation struct {
	arity    int
	alphabet *Alphabet
	machine  *TuringMachine
	tapes    []*Tape

	mu      sync.Mutex
	cond    *sync.Cond
	current State
	input   string

	transitions atomic.Uint64

	paused     atomic.Bool
	stopped    atomic.Bool
	terminated atomic.Bool

	started atomic.Bool
	done    chan struct{}
}

// NewComputation creates an idle computation of the given tape arity.
// Arities below 1 are coerced to 1. It starts with one-cell blank tapes, an
// empty alphabet and a trivial one-state machine, so starting it without
// further configuration terminates immediately.
func NewComputation(arity int) *Computation {
	if arity < 1 {
		arity = 1
	}
	c := &Computation{
		arity:    arity,
		alphabet: NewAlphabet(),
		machine:  NewTuringMachine(arity, 1, 1),
		tapes:    make([]*Tape, arity),
		done:     make(chan struct{}),
	}
	for i := range c.tapes {
		c.tapes[i] = NewTape(1)
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Arity returns the number of tapes this computation drives.
func (c *Computation) Arity() int {
	return c.arity
}

// UseAlphabet sets the alphabet used to translate input and output.
// Call before Start. A nil alphabet is ignored.
func (c *Computation) UseAlphabet(a *Alphabet) {
	if a == nil {
		return
	}
	c.alphabet = a
}

// UseMachine sets the machine to execute. Call before Start. Machines whose
// tape count differs from the computation's arity are ignored.
func (c *Computation) UseMachine(m *TuringMachine) {
	if m == nil || m.Tapes() != c.arity {
		return
	}
	c.machine = m
}

// UseTapes replaces all tapes. Call before Start. Slices whose length
// differs from the arity are ignored.
func (c *Computation) UseTapes(tapes []*Tape) {
	if len(tapes) != c.arity {
		return
	}
	for _, t := range tapes {
		if t == nil {
			return
		}
	}
	copy(c.tapes, tapes)
}

// UseTape replaces the tape at the given index. Call before Start.
// Out-of-range indices and nil tapes are ignored.
func (c *Computation) UseTape(t *Tape, index int) {
	if t == nil || index < 0 || index >= c.arity {
		return
	}
	c.tapes[index] = t
}

// InputString stages a string to be written on tape 0 when the computation
// starts. It is a no-op while no alphabet with at least one symbol is
// configured, since the alphabet is needed for the translation.
func (c *Computation) InputString(w string) {
	if c.alphabet.SymbolCount() == 0 {
		return
	}
	c.mu.Lock()
	c.input = w
	c.mu.Unlock()
}

// Start writes the staged input string, if any, and launches the worker
// goroutine driving the run loop. Calling Start more than once is a no-op.
func (c *Computation) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	w := c.input
	c.mu.Unlock()
	if w != "" {
		c.writeInput(w)
	}
	go c.run()
}

// run is the worker loop: rewind, then step until the machine halts or the
// caller stops it, blocking while paused.
func (c *Computation) run() {
	defer close(c.done)

	c.mu.Lock()
	for _, t := range c.tapes {
		rewind(t)
	}
	c.mu.Unlock()
	c.transitions.Store(0)

	for !c.stopped.Load() && !c.terminated.Load() {
		c.mu.Lock()
		for c.paused.Load() && !c.stopped.Load() {
			c.cond.Wait()
		}
		c.mu.Unlock()
		if c.stopped.Load() {
			break
		}
		if c.Step() {
			c.transitions.Add(1)
		}
	}
}

// Step performs a single transition: read every tape, look up the
// transition for the current configuration and apply it. If no transition
// is defined the computation is flagged terminated, the configuration is
// left unchanged and Step reports false.
func (c *Computation) Step() bool {
	// The whole step runs under c.mu so concurrent queries never observe
	// a half-applied transition or race with the tape writes.
	c.mu.Lock()
	defer c.mu.Unlock()

	read := make([]Symbol, c.arity)
	for i, t := range c.tapes {
		read[i] = t.Read()
	}

	out, write, ok := c.machine.GetTransition(c.current, read)
	if !ok {
		c.terminated.Store(true)
		return false
	}

	for i, t := range c.tapes {
		switch write[i] {
		case c.machine.MoveRightMarker():
			t.MoveRight()
		case c.machine.MoveLeftMarker():
			t.MoveLeft()
		default:
			t.Write(write[i])
		}
	}

	c.current = out
	return true
}

// Pause suspends the worker before its next step. It is a no-op once the
// computation has terminated or was stopped.
func (c *Computation) Pause() {
	if c.terminated.Load() || c.stopped.Load() {
		return
	}
	c.mu.Lock()
	c.paused.Store(true)
	c.mu.Unlock()
}

// Resume wakes a paused worker. It is a no-op unless the computation is
// currently paused and neither terminated nor stopped.
func (c *Computation) Resume() {
	if !c.paused.Load() || c.stopped.Load() || c.terminated.Load() {
		return
	}
	c.mu.Lock()
	c.paused.Store(false)
	c.mu.Unlock()
	c.cond.Broadcast()
}

// Stop forces the computation to end. The worker observes the request
// between steps (a step in progress completes first) and a paused worker is
// woken. Stopping twice is a no-op.
func (c *Computation) Stop() {
	c.mu.Lock()
	c.stopped.Store(true)
	c.mu.Unlock()
	c.cond.Broadcast()
}

// WaitForTermination blocks until the run loop has exited, either naturally
// or through Stop.
func (c *Computation) WaitForTermination() {
	<-c.done
}

// IsTerminated reports whether the machine halted on its own.
func (c *Computation) IsTerminated() bool {
	return c.terminated.Load()
}

// IsPaused reports whether the computation is currently paused.
func (c *Computation) IsPaused() bool {
	return c.paused.Load()
}

// IsStopped reports whether the computation was forced to end by Stop.
func (c *Computation) IsStopped() bool {
	return c.stopped.Load()
}

// HasAccepted reports whether the machine halted in a final state. Only
// meaningful once IsTerminated reports true.
func (c *Computation) HasAccepted() bool {
	if !c.terminated.Load() {
		return false
	}
	return c.machine.IsFinalState(c.CurrentState())
}

// CurrentState returns the machine's current control state.
func (c *Computation) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// TransitionCount returns the number of transitions performed so far.
func (c *Computation) TransitionCount() uint64 {
	return c.transitions.Load()
}

// Output renders the content of one tape as a readable string through the
// alphabet, with a trailing ellipsis for the unused infinite remainder.
// Symbols outside the alphabet render as the blank rune. Out-of-range
// indices yield an empty string.
func (c *Computation) Output(index int) string {
	if index < 0 || index >= c.arity {
		return ""
	}
	c.mu.Lock()
	cells := c.tapes[index].Content()
	c.mu.Unlock()

	var b strings.Builder
	for _, s := range cells {
		r, ok := c.alphabet.Rune(s)
		if !ok {
			r = BlankRune
		}
		b.WriteRune(r)
	}
	b.WriteString("...")
	return b.String()
}

// OutputAll renders every tape, from the last down to the input tape 0,
// one line each.
func (c *Computation) OutputAll() string {
	var b strings.Builder
	for i := c.arity - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%d: %s\n", i, c.Output(i))
	}
	return b.String()
}

// writeInput translates w through the alphabet onto tape 0, one rune per
// cell, blanking the matching cell of every other tape, and rewinds all
// heads. Runes outside the alphabet map to Blank.
func (c *Computation) writeInput(w string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.tapes {
		rewind(t)
	}
	for _, r := range w {
		s := Blank
		if sym, ok := c.alphabet.Symbol(r); ok {
			s = sym
		}
		c.tapes[0].Write(s)
		for i := 1; i < c.arity; i++ {
			c.tapes[i].Write(Blank)
		}
		for _, t := range c.tapes {
			t.MoveRight()
		}
	}
	for _, t := range c.tapes {
		rewind(t)
	}
}

// rewind moves a tape's head back to position 0.
func rewind(t *Tape) {
	for t.MoveLeft() {
	}
}
