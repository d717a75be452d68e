package main

import (
	"io"
	"os"

	"github.com/joshuapare/memkit/arena"
	"github.com/spf13/cobra"
)

var (
	statsSize int
	statsOps  string
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsSize, "size", 4096, "Arena size in bytes (rounded up to the page size)")
	cmd.Flags().StringVar(&statsOps, "ops", "", "Comma-separated trace statements to run first")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show allocator statistics after a scripted workload",
		Long: `The stats command creates an arena, runs the --ops statements against it,
and reports the allocator's lifetime counters together with the current
block occupancy.

Example:
  memctl stats --ops "alloc 16, alloc 32, free #1"
  memctl stats --size 65536 --ops "alloc 1024" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArenaStats()
		},
	}
	return cmd
}

// arenaReport pairs the lifetime counters with the occupancy snapshot for
// --json output.
type arenaReport struct {
	Capacity int              `json:"capacity"`
	Usable   int32            `json:"usable"`
	Counters arena.Stats      `json:"counters"`
	Usage    arena.UsageStats `json:"usage"`
}

func runArenaStats() error {
	printVerbose("Creating arena of %d bytes\n", statsSize)

	tr, err := newTraceRunner(statsSize, io.Discard, true)
	if err != nil {
		return err
	}
	defer tr.Close()

	if err := tr.RunOps(statsOps); err != nil {
		return err
	}

	usage, err := tr.arena.GetUsageStats()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(arenaReport{
			Capacity: tr.arena.Capacity(),
			Usable:   tr.arena.Usable(),
			Counters: tr.arena.GetStats(),
			Usage:    usage,
		})
	}

	printInfo("\nArena Statistics:\n")
	printInfo("  Capacity: %d bytes (%d usable)\n\n", tr.arena.Capacity(), tr.arena.Usable())
	if !quiet {
		writeArenaStats(os.Stdout, tr.arena.GetStats(), usage)
	}
	return nil
}
