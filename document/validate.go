package document

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed machine_schema.cue
var machineSchema string

// ValidateMachineDocument checks raw machine-document JSON against the
// interchange schema before it is decoded: the three counts must be
// positive integers, states non-negative, and every transition tuple a list
// of integers. The binary codec itself carries no self-validation, so this
// is the one place where a malformed document is turned into a diagnosable
// error instead of garbage field values.
func ValidateMachineDocument(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(machineSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("document: machine schema: %w", err)
	}

	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("document: machine document is not valid JSON: %w", err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("document: machine document rejected by schema: %w", err)
	}
	return nil
}
