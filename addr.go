package buddy

// Pure arithmetic between (order, index-within-order) pairs and byte
// offsets into the heap. Order `k` blocks are `minblock << k` bytes,
// block `index` at order `k` starts at `index * (minblock << k)`.

// offsetof byte offset into the heap of block `index` at `order`.
func offsetof(minblock, order, index int64) int64 {
	return index * (minblock << uint(order))
}

// blockof index of the block at `order` containing byte `offset`.
// Returns false when offset is not aligned to that order's block size.
func blockof(minblock, offset, order int64) (int64, bool) {
	size := minblock << uint(order)
	if (offset % size) != 0 {
		return 0, false
	}
	return offset / size, true
}

// buddyof two blocks of the same order are buddies iff their indices
// differ only in the low bit.
func buddyof(index int64) int64 {
	return index ^ 1
}
