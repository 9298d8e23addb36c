package machine

// ---------------------------------------------------------------------------
// Tape: left-bounded, right-extensible cell storage
// ---------------------------------------------------------------------------

// MaxTapeSize is the hard cap on tape growth. Tapes are conceptually
// infinite to the right; the cap turns runaway growth into a reportable
// resource failure instead of unbounded memory use.
const MaxTapeSize = 999999

// Tape is a sequence of symbol cells with a read/write head. Cells are
// blank-initialized. The tape is bounded at position 0 on the left and
// grows on demand to the right, up to MaxTapeSize.
//
// A tape belongs to exactly one computation at a time: it carries the head
// position.
type Tape struct {
	content []Symbol
	head    int
}

// NewTape creates a blank tape with the given number of cells.
// Sizes below 1 are coerced to 1.
func NewTape(size int) *Tape {
	if size < 1 {
		size = 1
	}
	content := make([]Symbol, size)
	for i := range content {
		content[i] = Blank
	}
	return &Tape{content: content}
}

// NewTapeFromContent creates a tape holding a copy of the given cells,
// with the head at position 0. An empty slice yields a one-cell blank tape.
func NewTapeFromContent(content []Symbol) *Tape {
	if len(content) == 0 {
		return NewTape(1)
	}
	c := make([]Symbol, len(content))
	copy(c, content)
	return &Tape{content: c}
}

// Read returns the symbol under the head. It never fails: cells start blank.
func (t *Tape) Read() Symbol {
	return t.content[t.head]
}

// Write sets the cell under the head. Values below Blank are discarded.
func (t *Tape) Write(s Symbol) {
	if s < Blank {
		return
	}
	t.content[t.head] = s
}

// MoveLeft moves the head one cell to the left. It reports false, leaving
// the head unchanged, at position 0.
func (t *Tape) MoveLeft() bool {
	if t.head == 0 {
		return false
	}
	t.head--
	return true
}

// MoveRight moves the head one cell to the right, appending a blank cell
// when the head is at the current end. It reports false once MaxTapeSize
// is reached.
func (t *Tape) MoveRight() bool {
	if t.head == MaxTapeSize {
		return false
	}
	if t.head == len(t.content)-1 {
		t.content = append(t.content, Blank)
	}
	t.head++
	return true
}

// HeadPosition returns the index of the cell the head is on.
func (t *Tape) HeadPosition() int {
	return t.head
}

// Size returns the number of cells in use so far.
func (t *Tape) Size() int {
	return len(t.content)
}

// Content returns a copy of the tape's cells.
func (t *Tape) Content() []Symbol {
	c := make([]Symbol, len(t.content))
	copy(c, t.content)
	return c
}
