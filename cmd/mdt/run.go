package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/chazu/mdt/document"
	"github.com/chazu/mdt/machine"
	"github.com/chazu/mdt/manifest"
)

// cmdRun loads a machine set and runs it to termination, printing the
// verdict, the transition count and the final tape contents.
func cmdRun(mf *manifest.Manifest, args []string) error {
	fs := flag.NewFlagSet("mdt run", flag.ExitOnError)
	input := fs.String("input", "", "Input string written on tape 0 (overrides the saved tape)")
	tapes := fs.Int("tapes", 0, "Tape arity (defaults to the manifest's machine.tapes)")
	timeout := fs.Duration("timeout", 0, "Stop a non-halting machine after this duration (0 = run forever)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("run expects exactly one machine document path")
	}
	arity := *tapes
	if arity < 1 {
		arity = mf.Machine.Tapes
	}

	set, err := document.LoadSet(fs.Arg(0), arity)
	if err != nil {
		return err
	}

	c := machine.NewComputation(arity)
	c.UseAlphabet(set.Alphabet)
	c.UseMachine(set.Machine)
	if *input != "" {
		c.InputString(*input)
	} else {
		c.UseTape(set.Tape, 0)
	}

	log.Infof("running %s (%d tapes)", fs.Arg(0), arity)
	start := time.Now()
	c.Start()

	if *timeout > 0 {
		timer := time.AfterFunc(*timeout, c.Stop)
		defer timer.Stop()
	}
	c.WaitForTermination()

	switch {
	case c.IsTerminated() && c.HasAccepted():
		fmt.Println("accepted")
	case c.IsTerminated():
		fmt.Println("rejected")
	default:
		fmt.Println("stopped")
	}
	fmt.Printf("transitions: %d in %v\n", c.TransitionCount(), time.Since(start).Round(time.Millisecond))
	fmt.Print(c.OutputAll())
	return nil
}
