package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/verify"
)

// traceRunner executes a line-oriented allocator trace against one arena.
//
// Statements, one per line:
//
//	alloc <bytes>   allocate a block; allocations are numbered from 1
//	free #<k>       release the k-th allocation
//	free <ref>      release an explicit payload ref (decimal or 0x hex)
//	dump            print the block table
//	stats           print allocator statistics
//	verify          check the block structure invariants
//
// Lines starting with '#' are comments. Blank lines are skipped.
type traceRunner struct {
	arena  *arena.Arena
	out    io.Writer
	refs   []arena.Ref // every alloc result, in statement order
	strict bool
}

// newTraceRunner creates an arena of the requested size for a trace to run
// against.
func newTraceRunner(size int, out io.Writer, strict bool) (*traceRunner, error) {
	a, err := arena.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}
	return &traceRunner{arena: a, out: out, strict: strict}, nil
}

// Close releases the arena backing the trace.
func (tr *traceRunner) Close() {
	tr.arena.Release()
}

// Run executes every statement read from r. In strict mode the first failing
// statement aborts the run; otherwise failures are reported on the output
// and the run continues.
func (tr *traceRunner) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		stmt := strings.TrimSpace(sc.Text())
		if stmt == "" || strings.HasPrefix(stmt, "#") {
			continue
		}
		if err := tr.exec(stmt); err != nil {
			if tr.strict {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintf(tr.out, "error: line %d: %v\n", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}
	return nil
}

// RunOps executes a comma-separated statement list, the form taken by the
// --ops flag.
func (tr *traceRunner) RunOps(ops string) error {
	for _, stmt := range strings.Split(ops, ",") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := tr.exec(stmt); err != nil {
			if tr.strict {
				return fmt.Errorf("op %q: %w", stmt, err)
			}
			fmt.Fprintf(tr.out, "error: op %q: %v\n", stmt, err)
		}
	}
	return nil
}

// exec runs a single trace statement.
func (tr *traceRunner) exec(stmt string) error {
	fields := strings.Fields(stmt)
	verb := strings.ToLower(fields[0])

	switch verb {
	case "alloc":
		if len(fields) != 2 {
			return fmt.Errorf("alloc takes exactly one size argument")
		}
		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad alloc size %q", fields[1])
		}
		ref, err := tr.arena.Alloc(size)
		if err != nil {
			return err
		}
		tr.refs = append(tr.refs, ref)
		fmt.Fprintf(tr.out, "alloc %d -> #%d @ 0x%08x\n", size, len(tr.refs), ref)
		return nil

	case "free":
		if len(fields) != 2 {
			return fmt.Errorf("free takes exactly one ref argument")
		}
		ref, err := tr.parseRef(fields[1])
		if err != nil {
			return err
		}
		if err := tr.arena.Free(ref); err != nil {
			return err
		}
		fmt.Fprintf(tr.out, "free 0x%08x ok\n", ref)
		return nil

	case "dump":
		return tr.arena.Dump(tr.out)

	case "stats":
		u, err := tr.arena.GetUsageStats()
		if err != nil {
			return err
		}
		writeArenaStats(tr.out, tr.arena.GetStats(), u)
		return nil

	case "verify":
		if err := verify.AllInvariants(tr.arena.Bytes()); err != nil {
			return err
		}
		fmt.Fprintln(tr.out, "verify ok")
		return nil

	default:
		return fmt.Errorf("unknown statement %q", verb)
	}
}

// parseRef resolves a free argument: "#k" names the k-th allocation of the
// trace, anything else is a literal payload ref.
func (tr *traceRunner) parseRef(arg string) (arena.Ref, error) {
	if seq, ok := strings.CutPrefix(arg, "#"); ok {
		k, err := strconv.Atoi(seq)
		if err != nil || k < 1 {
			return 0, fmt.Errorf("bad allocation number %q", arg)
		}
		if k > len(tr.refs) {
			return 0, fmt.Errorf("allocation #%d does not exist (trace has %d)", k, len(tr.refs))
		}
		return tr.refs[k-1], nil
	}

	v, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad ref %q", arg)
	}
	return arena.Ref(v), nil
}

// writeArenaStats renders the counters and the occupancy snapshot as text.
func writeArenaStats(w io.Writer, st arena.Stats, u arena.UsageStats) {
	fmt.Fprintf(w, "Blocks: %d total (%d busy, %d free)\n", u.TotalBlocks, u.BusyBlocks, u.FreeBlocks)
	fmt.Fprintf(w, "  Busy bytes: %d\n", u.BusyBytes)
	fmt.Fprintf(w, "  Free bytes: %d\n", u.FreeBytes)
	fmt.Fprintf(w, "  Largest free block: %d\n", u.LargestFree)
	fmt.Fprintf(w, "Lifetime:\n")
	fmt.Fprintf(w, "  Allocs: %d (%d failed)\n", st.AllocCalls, st.FailedAllocs)
	fmt.Fprintf(w, "  Frees: %d\n", st.FreeCalls)
	fmt.Fprintf(w, "  Splits: %d\n", st.SplitCount)
	fmt.Fprintf(w, "  Merges: %d forward, %d backward\n", st.CoalesceForward, st.CoalesceBackward)
	fmt.Fprintf(w, "  Bytes allocated: %d\n", st.BytesAllocated)
	fmt.Fprintf(w, "  Bytes freed: %d\n", st.BytesFreed)
}
