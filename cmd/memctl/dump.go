package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	dumpSize int
	dumpOps  string
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpSize, "size", 4096, "Arena size in bytes (rounded up to the page size)")
	cmd.Flags().StringVar(&dumpOps, "ops", "", "Comma-separated trace statements to run first")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the block table of an arena after a scripted workload",
		Long: `The dump command creates an arena, runs the --ops statements against it,
and prints the resulting block table: one row per block with its state, the
state of its predecessor, begin and end offsets, and total size.

Example:
  memctl dump
  memctl dump --size 65536 --ops "alloc 16, alloc 32, free #1"
  memctl dump --ops "alloc 100" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDumpTable()
		},
	}
	return cmd
}

func runDumpTable() error {
	printVerbose("Creating arena of %d bytes\n", dumpSize)

	// The workload itself stays silent; only the table is printed.
	tr, err := newTraceRunner(dumpSize, io.Discard, true)
	if err != nil {
		return err
	}
	defer tr.Close()

	if err := tr.RunOps(dumpOps); err != nil {
		return err
	}

	if jsonOut {
		blocks, err := tr.arena.Snapshot()
		if err != nil {
			return err
		}
		return printJSON(map[string]interface{}{
			"capacity": tr.arena.Capacity(),
			"usable":   tr.arena.Usable(),
			"blocks":   blocks,
		})
	}

	out := io.Writer(os.Stdout)
	if quiet {
		out = io.Discard
	}
	return tr.arena.Dump(out)
}
