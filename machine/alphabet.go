package machine

// ---------------------------------------------------------------------------
// Symbol and State indices
// ---------------------------------------------------------------------------

// Symbol is the index of a letter in a machine's working alphabet.
// Valid symbols are non-negative; Blank is the reserved sentinel for an
// empty cell and is not part of any alphabet.
type Symbol int

// State is the index of a control state. Every machine starts in state 0.
type State int

// Blank marks an empty, unwritten tape cell.
const Blank Symbol = -1

// BlankRune is the readable representation of the blank symbol.
const BlankRune = '*'

// ---------------------------------------------------------------------------
// Alphabet: rune <-> symbol bijection
// ---------------------------------------------------------------------------

// Alphabet maps readable runes to dense symbol indices and back. Runes are
// assigned 0, 1, 2, ... in the order they are first added; adding a rune
// twice is a no-op. BlankRune always resolves to Blank whether or not it
// was added.
//
// Callers that need stable indices across serialization must control
// insertion order themselves.
type Alphabet struct {
	symbols map[rune]Symbol
	runes   map[Symbol]rune
	count   int
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		symbols: make(map[rune]Symbol),
		runes:   make(map[Symbol]rune),
	}
}

// Add registers a rune, assigning it the next free symbol index.
// Already-registered runes keep their index.
func (a *Alphabet) Add(r rune) {
	if _, ok := a.symbols[r]; ok {
		return
	}
	s := Symbol(a.count)
	a.symbols[r] = s
	a.runes[s] = r
	a.count++
}

// AddString registers every rune of s, in order.
func (a *Alphabet) AddString(s string) {
	for _, r := range s {
		a.Add(r)
	}
}

// Symbol returns the symbol assigned to r. BlankRune always resolves to
// Blank; any other unregistered rune reports ok == false.
func (a *Alphabet) Symbol(r rune) (Symbol, bool) {
	if r == BlankRune {
		return Blank, true
	}
	s, ok := a.symbols[r]
	return s, ok
}

// Rune returns the readable rune assigned to s. Blank always resolves to
// BlankRune; any other unassigned symbol reports ok == false.
func (a *Alphabet) Rune(s Symbol) (rune, bool) {
	if s == Blank {
		return BlankRune, true
	}
	r, ok := a.runes[s]
	return r, ok
}

// SymbolCount returns the number of registered runes.
func (a *Alphabet) SymbolCount() int {
	return a.count
}
