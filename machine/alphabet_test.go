package machine

import "testing"

func TestAlphabetAssignsDenseIndices(t *testing.T) {
	a := NewAlphabet()
	a.AddString("abc")

	for i, r := range "abc" {
		s, ok := a.Symbol(r)
		if !ok {
			t.Fatalf("Symbol(%q) not found", r)
		}
		if s != Symbol(i) {
			t.Errorf("Symbol(%q) = %d, want %d", r, s, i)
		}
		back, ok := a.Rune(Symbol(i))
		if !ok || back != r {
			t.Errorf("Rune(%d) = %q, %v, want %q", i, back, ok, r)
		}
	}
	if a.SymbolCount() != 3 {
		t.Errorf("SymbolCount = %d, want 3", a.SymbolCount())
	}
}

func TestAlphabetAddIsIdempotent(t *testing.T) {
	a := NewAlphabet()
	a.Add('x')
	a.Add('y')
	a.Add('x')

	if a.SymbolCount() != 2 {
		t.Fatalf("SymbolCount = %d, want 2", a.SymbolCount())
	}
	if s, _ := a.Symbol('x'); s != 0 {
		t.Errorf("re-adding changed index of 'x': got %d", s)
	}
}

func TestAlphabetUnknownLookups(t *testing.T) {
	a := NewAlphabet()
	a.Add('a')

	if _, ok := a.Symbol('z'); ok {
		t.Error("Symbol('z') should not resolve")
	}
	if _, ok := a.Rune(5); ok {
		t.Error("Rune(5) should not resolve")
	}
}

func TestAlphabetBlankAlwaysResolves(t *testing.T) {
	a := NewAlphabet()

	s, ok := a.Symbol(BlankRune)
	if !ok || s != Blank {
		t.Errorf("Symbol(BlankRune) = %d, %v, want Blank", s, ok)
	}
	r, ok := a.Rune(Blank)
	if !ok || r != BlankRune {
		t.Errorf("Rune(Blank) = %q, %v, want BlankRune", r, ok)
	}
}
