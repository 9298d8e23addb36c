package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/chazu/mdt/machine"
)

func buildScannerMachine() *machine.TuringMachine {
	m := machine.NewTuringMachine(1, 2, 2)
	m.AddFinalState(1)
	m.AddTransition(0, []machine.Symbol{0}, []machine.Symbol{m.MoveRightMarker()}, 0)
	m.AddTransition(0, []machine.Symbol{1}, []machine.Symbol{m.MoveRightMarker()}, 1)
	return m
}

func TestAlphabetDocumentRoundTrip(t *testing.T) {
	a := machine.NewAlphabet()
	a.AddString("01x")

	doc := EncodeAlphabet(a)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[[0,"0"],[1,"1"],[2,"x"]]` {
		t.Errorf("alphabet document = %s", data)
	}

	var back Alphabet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	decoded := DecodeAlphabet(back)
	if decoded.SymbolCount() != 3 {
		t.Fatalf("SymbolCount = %d, want 3", decoded.SymbolCount())
	}
	for i, r := range "01x" {
		s, ok := decoded.Symbol(r)
		if !ok || s != machine.Symbol(i) {
			t.Errorf("Symbol(%q) = %d, %v, want %d", r, s, ok, i)
		}
	}
}

func TestTapeDocumentRoundTrip(t *testing.T) {
	tp := machine.NewTapeFromContent([]machine.Symbol{0, 1, machine.Blank, 1})
	tp.MoveRight()
	tp.MoveRight()

	doc := EncodeTape(tp)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Content":[0,1,-1,1],"Head":2}` {
		t.Errorf("tape document = %s", data)
	}

	var back Tape
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	decoded := DecodeTape(back)
	if decoded.HeadPosition() != 2 {
		t.Errorf("head = %d, want 2", decoded.HeadPosition())
	}
	if got := decoded.Read(); got != machine.Blank {
		t.Errorf("Read at head = %d, want Blank", got)
	}
	if decoded.Size() != 4 {
		t.Errorf("Size = %d, want 4", decoded.Size())
	}
}

func TestMachineDocumentRoundTrip(t *testing.T) {
	m := buildScannerMachine()

	doc, err := EncodeMachine(m)
	if err != nil {
		t.Fatalf("EncodeMachine: %v", err)
	}
	if doc.Tapes != 1 || doc.States != 2 || doc.Symbols != 2 {
		t.Errorf("counts = %d/%d/%d, want 1/2/2", doc.Tapes, doc.States, doc.Symbols)
	}
	if len(doc.FStates) != 1 || doc.FStates[0] != 1 {
		t.Errorf("FStates = %v, want [1]", doc.FStates)
	}
	if len(doc.Transitions) != 2 {
		t.Fatalf("Transitions = %v, want 2 entries", doc.Transitions)
	}

	decoded, err := DecodeMachine(doc, 1)
	if err != nil {
		t.Fatalf("DecodeMachine: %v", err)
	}

	// Same observable behavior: the decoded machine agrees with the source
	// on every configuration the source defines.
	for _, tr := range m.Transitions() {
		out, write, ok := decoded.GetTransition(tr.In, tr.Read)
		if !ok || out != tr.Out || write[0] != tr.Write[0] {
			t.Errorf("transition (%d, %v) lost in round-trip", tr.In, tr.Read)
		}
	}
	if !decoded.IsFinalState(1) {
		t.Error("final state lost in round-trip")
	}
}

func TestDecodeMachineArityMismatch(t *testing.T) {
	doc, err := EncodeMachine(buildScannerMachine())
	if err != nil {
		t.Fatalf("EncodeMachine: %v", err)
	}
	if _, err := DecodeMachine(doc, 3); !errors.Is(err, machine.ErrTapeArity) {
		t.Errorf("err = %v, want ErrTapeArity", err)
	}
}

func TestValidateMachineDocument(t *testing.T) {
	doc, err := EncodeMachine(buildScannerMachine())
	if err != nil {
		t.Fatalf("EncodeMachine: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateMachineDocument(data); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}

	bad := []struct {
		name string
		in   string
	}{
		{"not json", `{"#Tapes": }`},
		{"zero tapes", `{"#Tapes":0,"#States":1,"#Symbols":1,"FStates":[],"Transitions":[]}`},
		{"negative state", `{"#Tapes":1,"#States":1,"#Symbols":1,"FStates":[-1],"Transitions":[]}`},
		{"string count", `{"#Tapes":"1","#States":1,"#Symbols":1,"FStates":[],"Transitions":[]}`},
	}
	for _, tc := range bad {
		if err := ValidateMachineDocument([]byte(tc.in)); err == nil {
			t.Errorf("%s: accepted", tc.name)
		}
	}
}
