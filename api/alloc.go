// Package api defines the interfaces shared between memory allocators
// and their applications.
package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Blocksizes allocatable block sizes, smallest first.
	Blocksizes() (sizes []int64)

	// Alloc allocate a block of at least `n` bytes.
	Alloc(n int64) (unsafe.Pointer, error)

	// Free release a block obtained from Alloc.
	Free(ptr unsafe.Pointer) error

	// Available memory that can still be allocated, not necessarily
	// as a single block.
	Available() int64

	// Allocated memory currently leased out to the application.
	Allocated() int64

	// Info of memory accounting for this allocator.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization map of block-size and its heap utilization.
	Utilization() ([]int, []float64)

	// Release the allocator and all its resources.
	Release()
}
