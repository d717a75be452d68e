package arena_test

import (
	"fmt"

	"github.com/joshuapare/memkit/arena"
)

// ExampleNew shows the bootstrap state: one free block spanning the usable
// capacity.
func ExampleNew() {
	a, err := arena.New(4096)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer a.Release()

	blocks, _ := a.Snapshot()
	fmt.Println(len(blocks))
	fmt.Println(blocks[0].Busy)
	// Output:
	// 1
	// false
}

// ExampleArena_Alloc demonstrates that the first allocation lands right
// after the first block header.
func ExampleArena_Alloc() {
	a, err := arena.New(4096)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer a.Release()

	ref, err := a.Alloc(100)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(ref)
	// Output: 8
}

// ExampleArena_Free demonstrates a full cycle collapsing back to one block.
func ExampleArena_Free() {
	a, err := arena.New(4096)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer a.Release()

	ref, _ := a.Alloc(100)
	if err := a.Free(ref); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	blocks, _ := a.Snapshot()
	fmt.Println(len(blocks))
	// Output: 1
}
