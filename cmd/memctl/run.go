package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	runSize   int
	runStrict bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runSize, "size", 4096, "Arena size in bytes (rounded up to the page size)")
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Stop at the first failing statement")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [trace-file]",
		Short: "Execute an allocator trace against a fresh arena",
		Long: `The run command creates an arena and executes a line-oriented trace of
allocator operations against it, printing the outcome of every statement.

Statements:
  alloc <bytes>   allocate a block; allocations are numbered from 1
  free #<k>       release the k-th allocation
  free <ref>      release an explicit payload ref (decimal or 0x hex)
  dump            print the block table
  stats           print allocator statistics
  verify          check the block structure invariants

Lines starting with '#' are comments. The trace is read from the file
argument, or from standard input when no file is given. Failing statements
are reported and skipped unless --strict is set.

Example:
  memctl run trace.txt
  memctl run --size 65536 --strict trace.txt
  echo "alloc 128" | memctl run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if quiet {
		out = io.Discard
	}

	printVerbose("Creating arena of %d bytes\n", runSize)
	tr, err := newTraceRunner(runSize, out, runStrict)
	if err != nil {
		return err
	}
	defer tr.Close()

	return tr.Run(in)
}
