// mdt - deterministic multi-tape Turing machine runner
//
// Build: go build ./cmd/mdt
// Usage:
//   mdt run scanner.json -input 01          # run a saved machine set
//   mdt encode scanner.json                 # emit the binary representation
//   mdt decode -tapes 1 -in repr.txt        # dump a machine from its representation
//   mdt validate scanner.json               # schema-check a machine document
//   mdt pack scanner.json -out scanner.mdts # archive the set as one snapshot file
//   mdt unpack scanner.mdts -out scanner.json
//   mdt save scanner.json -name scanner     # library operations (SQLite)
//   mdt load -name scanner -out scanner.json
//   mdt list
//   mdt delete -name scanner
package main

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/mdt/manifest"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("mdt")

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: mdt <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run       Run a machine set on an input string\n")
	fmt.Fprintf(os.Stderr, "  encode    Print a machine's binary representation\n")
	fmt.Fprintf(os.Stderr, "  decode    Rebuild and dump a machine from its binary representation\n")
	fmt.Fprintf(os.Stderr, "  validate  Schema-check a machine document\n")
	fmt.Fprintf(os.Stderr, "  pack      Archive a machine set as a single snapshot file\n")
	fmt.Fprintf(os.Stderr, "  unpack    Expand a snapshot file back into document files\n")
	fmt.Fprintf(os.Stderr, "  save      Save a machine set into the library\n")
	fmt.Fprintf(os.Stderr, "  load      Load a machine set from the library\n")
	fmt.Fprintf(os.Stderr, "  list      List the machines in the library\n")
	fmt.Fprintf(os.Stderr, "  delete    Delete a machine from the library\n")
	fmt.Fprintf(os.Stderr, "\nRun 'mdt <command> -h' for command options.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mf, err := manifest.LoadOrDefault(wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	commonlog.Configure(mf.Log.Verbosity, nil)

	var cmdErr error
	switch os.Args[1] {
	case "run":
		cmdErr = cmdRun(mf, os.Args[2:])
	case "encode":
		cmdErr = cmdEncode(mf, os.Args[2:])
	case "decode":
		cmdErr = cmdDecode(mf, os.Args[2:])
	case "validate":
		cmdErr = cmdValidate(os.Args[2:])
	case "pack":
		cmdErr = cmdPack(mf, os.Args[2:])
	case "unpack":
		cmdErr = cmdUnpack(mf, os.Args[2:])
	case "save":
		cmdErr = cmdSave(mf, os.Args[2:])
	case "load":
		cmdErr = cmdLoad(mf, os.Args[2:])
	case "list":
		cmdErr = cmdList(mf, os.Args[2:])
	case "delete":
		cmdErr = cmdDelete(mf, os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}
