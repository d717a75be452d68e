package hostmem

import "testing"

func TestReserveRoundsToPageSize(t *testing.T) {
	pagesize := PageSize()

	r, err := Reserve(1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	if r.Size() != pagesize {
		t.Fatalf("size mismatch: got %d want %d", r.Size(), pagesize)
	}

	r2, err := Reserve(pagesize + 1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r2.Release()

	if r2.Size() != 2*pagesize {
		t.Fatalf("size mismatch: got %d want %d", r2.Size(), 2*pagesize)
	}

	r3, err := Reserve(pagesize)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r3.Release()

	if r3.Size() != pagesize {
		t.Fatalf("exact multiple must not grow: got %d want %d", r3.Size(), pagesize)
	}
}

func TestReserveZeroFilled(t *testing.T) {
	r, err := Reserve(128)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, b)
		}
	}
}

func TestReserveWritable(t *testing.T) {
	r, err := Reserve(64)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	data := r.Bytes()
	data[0] = 0xde
	data[len(data)-1] = 0xad
	if data[0] != 0xde || data[len(data)-1] != 0xad {
		t.Fatalf("writes did not stick")
	}
}

func TestReserveRejectsNonPositive(t *testing.T) {
	if _, err := Reserve(0); err == nil {
		t.Fatalf("expected error for size 0")
	}
	if _, err := Reserve(-4096); err == nil {
		t.Fatalf("expected error for negative size")
	}
}

func TestReleaseTwice(t *testing.T) {
	r, err := Reserve(32)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := r.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if r.Bytes() != nil {
		t.Fatalf("Bytes must be nil after Release")
	}
	if err := r.Release(); err != nil {
		t.Fatalf("second Release must be a no-op: %v", err)
	}
}
