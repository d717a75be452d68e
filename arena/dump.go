package arena

import (
	"fmt"
	"io"
	"strings"
)

// BlockInfo describes one block of the arena for diagnostics. Begin and End
// are byte offsets of the block's first and last byte.
type BlockInfo struct {
	No       int   `json:"no"`
	Busy     bool  `json:"busy"`
	PrevBusy bool  `json:"prev_busy"`
	Begin    int32 `json:"begin"`
	End      int32 `json:"end"`
	Size     int32 `json:"size"`
}

// Snapshot returns one entry per block in address order. The end sentinel is
// not listed; it carries no payload.
func (a *Arena) Snapshot() ([]BlockInfo, error) {
	if a.data == nil {
		return nil, ErrReleased
	}

	var blocks []BlockInfo
	it := a.Blocks()
	for {
		blk, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, BlockInfo{
			No:       len(blocks) + 1,
			Busy:     blk.Busy(),
			PrevBusy: blk.PrevBusy(),
			Begin:    blk.Offset(),
			End:      blk.End(),
			Size:     blk.Size(),
		})
	}
	return blocks, nil
}

// Dump writes a table of every block to w: sequence number, own state, the
// preceding block's state, begin and end offsets, and total size, followed
// by busy/free totals. Reads only, never mutates.
func (a *Arena) Dump(w io.Writer) error {
	blocks, err := a.Snapshot()
	if err != nil {
		return err
	}

	banner := strings.Repeat("*", 34) + " Block list " + strings.Repeat("*", 34)
	rule := strings.Repeat("-", len(banner))

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "No.\tStatus\tPrev\tBegin\t\tEnd\t\tSize")
	fmt.Fprintln(w, rule)

	var busy, free int64
	for _, b := range blocks {
		fmt.Fprintf(w, "%d\t%s\t%s\t0x%08x\t0x%08x\t%d\n",
			b.No, stateName(b.Busy), stateName(b.PrevBusy), b.Begin, b.End, b.Size)
		if b.Busy {
			busy += int64(b.Size)
		} else {
			free += int64(b.Size)
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, strings.Repeat("*", len(banner)))
	fmt.Fprintf(w, "Total busy size = %d\n", busy)
	fmt.Fprintf(w, "Total free size = %d\n", free)
	fmt.Fprintf(w, "Total size = %d\n", busy+free)
	fmt.Fprintln(w, strings.Repeat("*", len(banner)))
	return nil
}

func stateName(busy bool) string {
	if busy {
		return "Busy"
	}
	return "Free"
}
