package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/chazu/mdt/document"
	"github.com/chazu/mdt/machine"
	"github.com/chazu/mdt/manifest"
	"github.com/chazu/mdt/snapshot"
)

// cmdPack archives a three-file machine set as one snapshot file.
func cmdPack(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt pack", flag.ExitOnError)
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	out := fs.String("out", "", "Snapshot file to write (defaults to the document name with .mdts)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("pack expects exactly one machine document path")
	}
	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	set, err := document.LoadSet(fs.Arg(0), arity)
	if err != nil {
		return err
	}
	// The document triple only carries the input tape; working tapes
	// start blank.
	tapeSet := make([]*machine.Tape, arity)
	tapeSet[0] = set.Tape
	for i := 1; i < arity; i++ {
		tapeSet[i] = machine.NewTape(1)
	}
	s, err := snapshot.Capture(set.Machine, set.Alphabet, tapeSet)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = strings.Replace(fs.Arg(0), ".json", ".mdts", 1)
	}
	if err := snapshot.WriteFile(path, s); err != nil {
		return err
	}
	log.Infof("packed %s into %s", fs.Arg(0), path)
	fmt.Println(path)
	return nil
}

// cmdUnpack expands a snapshot file back into the JSON document triple.
func cmdUnpack(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt unpack", flag.ExitOnError)
	out := fs.String("out", "", "Machine document path to write (defaults to the snapshot name with .json)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("unpack expects exactly one snapshot path")
	}

	s, err := snapshot.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	m, a, tapes, err := s.Restore()
	if err != nil {
		return err
	}
	if len(tapes) == 0 {
		return fmt.Errorf("snapshot holds no tapes")
	}

	path := *out
	if path == "" {
		path = strings.Replace(fs.Arg(0), ".mdts", ".json", 1)
	}
	set := &document.Set{Machine: m, Alphabet: a, Tape: tapes[0]}
	if err := document.SaveSet(path, set); err != nil {
		return err
	}
	log.Infof("unpacked %s into %s", fs.Arg(0), path)
	fmt.Println(path)
	return nil
}
