package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/memkit/arena/verify"
	"github.com/spf13/cobra"
)

var (
	verifySize int
	verifyOps  string
)

func init() {
	cmd := newVerifyCmd()
	cmd.Flags().IntVar(&verifySize, "size", 4096, "Arena size in bytes (rounded up to the page size)")
	cmd.Flags().StringVar(&verifyOps, "ops", "", "Comma-separated trace statements to run first")
	rootCmd.AddCommand(cmd)
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [trace-file]",
		Short: "Check the block structure invariants after a workload",
		Long: `The verify command creates an arena, replays a workload against it, and
checks every block structure invariant: contiguous layout, intact end
marker, no adjacent free blocks, footers matching headers, and consistent
prev-state bits.

The workload comes from the trace file argument, from --ops, or is empty
(verifying the bootstrap state). A violation makes the command exit
non-zero.

Example:
  memctl verify trace.txt
  memctl verify --ops "alloc 16, alloc 32, free #1"
  memctl verify --size 65536 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	printVerbose("Creating arena of %d bytes\n", verifySize)

	// Replay silently; only the verdict is printed.
	tr, err := newTraceRunner(verifySize, io.Discard, true)
	if err != nil {
		return err
	}
	defer tr.Close()

	switch {
	case len(args) == 1 && verifyOps != "":
		return fmt.Errorf("pass either a trace file or --ops, not both")
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		if err := tr.Run(f); err != nil {
			return err
		}
	default:
		if err := tr.RunOps(verifyOps); err != nil {
			return err
		}
	}

	checks := []struct {
		name string
		fn   func([]byte) error
	}{
		{"block layout", verify.BlockLayout},
		{"end marker", verify.EndMarker},
		{"no adjacent free blocks", verify.NoAdjacentFree},
		{"free footers", verify.FreeFooters},
		{"prev-state bits", verify.PrevState},
	}

	data := tr.arena.Bytes()
	var firstErr error
	failures := make([]string, 0)

	if !jsonOut {
		printInfo("\nBlock Structure:\n")
	}
	for _, c := range checks {
		err := c.fn(data)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			failures = append(failures, err.Error())
		}
		if jsonOut {
			continue
		}
		if err != nil {
			printInfo("  ✗ %s: %v\n", c.name, err)
		} else {
			printInfo("  ✓ %s\n", c.name)
		}
	}

	if jsonOut {
		result := map[string]interface{}{
			"size":  verifySize,
			"valid": firstErr == nil,
		}
		if len(failures) > 0 {
			result["violations"] = failures
		}
		if err := printJSON(result); err != nil {
			return err
		}
		return firstErr
	}

	if firstErr != nil {
		printInfo("\nResult: ✗ INVALID\n")
		return firstErr
	}
	printInfo("\nResult: ✓ VALID\n")
	return nil
}
