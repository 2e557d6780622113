// Package buddy supplies fixed capacity memory management using the
// buddy-block algorithm, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * Heap capacity is fixed at construction, there is no growth or
//    shrink and no garbage collection.
//  * Blocks are power of 2 sized, between a configured minblock and
//    the whole heap. Requests round up to the nearest block size.
//  * Freeing both halves of a split block merges them back into their
//    parent, which curbs fragmentation without moving memory.
//  * Returned pointers are only guaranteed minblock aligned.
//
// The heap is a single contiguous buffer. Book-keeping is a complete
// binary tree over the buffer's blocks, kept as a flat array, where
// every node caches the order of the largest free block in its
// subtree. Allocation descends from the root splitting free blocks as
// needed, release walks back up merging buddies, both in time bounded
// by the number of orders.
//
// Allocators come up in one of two ways. NewBuddy owns its buffer and
// is ready immediately:
//
//	setts := buddy.Defaultsettings()
//	b := buddy.NewBuddy(1024*1024, setts)
//	ptr, err := b.Alloc(100)
//
// NewUnpinned defers the buffer to the caller, for environments where
// the storage lives on the stack or in statically reserved memory.
// The buffer shall not move once supplied:
//
//	var storage [1024 * 1024]byte
//	b := buddy.NewUnpinned(1024*1024, setts)
//	b.Initbuffer(storage[:])
//
// Every misuse at runtime, freeing twice, freeing foreign or interior
// pointers, allocating beyond capacity, using an unpinned allocator
// before Initbuffer, is reported as an error, never corrected and
// never panicked on. Construction with invalid parameters is a
// programmer error and panics.
package buddy
