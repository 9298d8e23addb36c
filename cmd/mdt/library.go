package main

import (
	"flag"
	"fmt"

	"github.com/chazu/mdt/document"
	"github.com/chazu/mdt/manifest"
	"github.com/chazu/mdt/store"
)

func openLibrary(mf *manifest.Manifest, path string) (*store.Store, error) {
	if path == "" {
		path = mf.StorePath()
	}
	return store.Open(path)
}

// cmdSave stores a machine set in the library under a name.
func cmdSave(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt save", flag.ExitOnError)
	name := fs.String("name", "", "Library name for the machine (required)")
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	db := fs.String("db", "", "Library database path (defaults to the manifest's store.path)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("save requires -name")
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("save expects exactly one machine document path")
	}
	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	set, err := document.LoadSet(fs.Arg(0), arity)
	if err != nil {
		return err
	}

	lib, err := openLibrary(mf, *db)
	if err != nil {
		return err
	}
	defer lib.Close()
	return lib.Save(*name, set)
}

// cmdLoad writes a library machine back out as a document triple.
func cmdLoad(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt load", flag.ExitOnError)
	name := fs.String("name", "", "Library name of the machine (required)")
	out := fs.String("out", "", "Machine document path to write (required)")
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	db := fs.String("db", "", "Library database path (defaults to the manifest's store.path)")
	fs.Parse(args)

	if *name == "" || *out == "" {
		return fmt.Errorf("load requires -name and -out")
	}
	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	lib, err := openLibrary(mf, *db)
	if err != nil {
		return err
	}
	defer lib.Close()

	set, err := lib.Load(*name, arity)
	if err != nil {
		return err
	}
	if err := document.SaveSet(*out, set); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

// cmdList prints the library contents.
func cmdList(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt list", flag.ExitOnError)
	db := fs.String("db", "", "Library database path (defaults to the manifest's store.path)")
	fs.Parse(args)

	lib, err := openLibrary(mf, *db)
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("library is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-24s %d tape(s)  saved %s\n", e.Name, e.Tapes, e.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// cmdDelete removes a machine from the library.
func cmdDelete(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt delete", flag.ExitOnError)
	name := fs.String("name", "", "Library name of the machine (required)")
	db := fs.String("db", "", "Library database path (defaults to the manifest's store.path)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("delete requires -name")
	}
	lib, err := openLibrary(mf, *db)
	if err != nil {
		return err
	}
	defer lib.Close()
	return lib.Delete(*name)
}
