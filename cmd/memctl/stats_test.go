package main

import (
	"encoding/json"
	"testing"
)

func TestStatsCommand(t *testing.T) {
	tests := []struct {
		name        string
		ops         string
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name: "fresh arena",
			ops:  "",
			wantContain: []string{
				"Arena Statistics",
				"Blocks: 1 total (0 busy, 1 free)",
				"Allocs: 0 (0 failed)",
			},
		},
		{
			name: "after workload",
			ops:  "alloc 16, alloc 32, free #1",
			wantContain: []string{
				"Blocks: 3 total (1 busy, 2 free)",
				"Allocs: 2 (0 failed)",
				"Frees: 1",
				"Splits: 2",
			},
		},
		{
			name:     "as JSON",
			ops:      "alloc 16",
			wantJSON: true,
			wantContain: []string{
				"\"counters\"",
				"\"usage\"",
				"\"alloc_calls\": 1",
			},
		},
		{
			name:    "bad ops fail",
			ops:     "free #1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			statsSize = 4096
			statsOps = tt.ops

			output, err := captureOutput(t, func() error {
				return runArenaStats()
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runArenaStats() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestStatsCommandJSONConserves(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	statsSize = 4096
	statsOps = "alloc 100, alloc 200, free #2"
	defer func() { jsonOut = false }()

	output, err := captureOutput(t, func() error {
		return runArenaStats()
	})
	if err != nil {
		t.Fatalf("runArenaStats: %v", err)
	}

	var got arenaReport
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Usage.BusyBytes+got.Usage.FreeBytes != int64(got.Usable) {
		t.Errorf("busy %d + free %d must equal usable %d",
			got.Usage.BusyBytes, got.Usage.FreeBytes, got.Usable)
	}
	if got.Counters.AllocCalls != 2 || got.Counters.FreeCalls != 1 {
		t.Errorf("counters = %+v", got.Counters)
	}
}
