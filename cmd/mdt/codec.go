package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chazu/mdt/document"
	"github.com/chazu/mdt/machine"
	"github.com/chazu/mdt/manifest"
)

// cmdEncode prints the binary representation of a machine document.
func cmdEncode(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt encode", flag.ExitOnError)
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("encode expects exactly one machine document path")
	}
	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	set, err := document.LoadSet(fs.Arg(0), arity)
	if err != nil {
		return err
	}
	fmt.Println(set.Machine.BinaryRepresentation())
	return nil
}

// cmdDecode rebuilds a machine from a binary representation and dumps it.
func cmdDecode(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt decode", flag.ExitOnError)
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	in := fs.String("in", "", "File holding the representation (reads the argument itself when empty)")
	fs.Parse(args)

	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	var repr string
	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *in, err)
		}
		repr = strings.TrimSpace(string(data))
	} else {
		if fs.NArg() != 1 {
			return fmt.Errorf("decode expects a representation argument or -in file")
		}
		repr = fs.Arg(0)
	}

	m, err := machine.DecodeBinary(arity, repr)
	if err != nil {
		return err
	}
	fmt.Print(m.String())
	return nil
}

// cmdValidate schema-checks a machine document without loading it.
func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("mdt validate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("validate expects exactly one machine document path")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := document.ValidateMachineDocument(data); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", fs.Arg(0))
	return nil
}
