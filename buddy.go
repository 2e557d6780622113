package buddy

import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/gobuddy/api"

// Buddy is a fixed capacity memory allocator over a single contiguous
// buffer, managed with the buddy-block algorithm. Blocks are powers of
// 2 between minblock and the heap capacity, split on demand to serve
// small requests and merged back with their buddy when both halves are
// free. Functions and methods are not thread safe, callers needing
// concurrent access shall serialize with their own mutex.
type Buddy struct {
	// 64-bit aligned stats
	totalfree int64

	tree  *buddytree
	table *alloctable
	buf   []byte // keeps the backing buffer alive
	base  unsafe.Pointer

	// configuration
	capacity   int64 // heap size in bytes
	minblock   int64 // zero-order block size in bytes
	leafcount  int64 // capacity / minblock
	ordercount int64 // log2(leafcount) + 1
	zero       bool  // zero-fill blocks before returning them

	initialized bool
}

var _ api.Mallocer = (*Buddy)(nil)

// NewBuddy create a new allocator that owns its backing buffer.
// Capacity and the "minblock" setting shall both be powers of 2 with
// minblock <= capacity, violations panic.
func NewBuddy(capacity int64, setts s.Settings) *Buddy {
	buddy := NewUnpinned(capacity, setts)
	buddy.Initbuffer(make([]byte, capacity))
	return buddy
}

// NewUnpinned create an allocator whose backing buffer will be
// supplied later, once the caller has placed it at its final address,
// typically a stack array or statically reserved storage. Until
// Initbuffer is called every operation reports ErrorNotInitialized.
func NewUnpinned(capacity int64, setts s.Settings) *Buddy {
	minblock, zero := setts.Int64("minblock"), setts.Bool("zero")
	if ispowerof2(capacity) == false {
		panicerr("capacity %v is not a power of 2", capacity)
	} else if capacity > Maxcapacity {
		panicerr("capacity cannot exceed %v bytes (%v)", Maxcapacity, capacity)
	} else if ispowerof2(minblock) == false {
		panicerr("minblock %v is not a power of 2", minblock)
	} else if minblock < Minblocksize {
		panicerr("minblock %v less than %v", minblock, Minblocksize)
	} else if capacity < minblock {
		panicerr("capacity %v less than minblock %v", capacity, minblock)
	}
	leafcount := capacity / minblock
	return &Buddy{
		totalfree:  capacity,
		capacity:   capacity,
		minblock:   minblock,
		leafcount:  leafcount,
		ordercount: log2of(leafcount) + 1,
		zero:       zero,
	}
}

// Initbuffer finalize the allocator over `buf`, which shall not move
// or be resized for the allocator's lifetime. The buffer length shall
// equal the configured capacity and Initbuffer shall be called exactly
// once, violations panic.
func (buddy *Buddy) Initbuffer(buf []byte) {
	if buddy.initialized {
		panicerr("allocator already initialized")
	} else if int64(len(buf)) != buddy.capacity {
		panicerr("buffer length %v, expected %v", len(buf), buddy.capacity)
	}
	buddy.buf = buf
	buddy.base = unsafe.Pointer(&buf[0])
	buddy.tree = newbuddytree(buddy.ordercount)
	buddy.table = newalloctable(buddy.leafcount)
	if buddy.zero {
		fillblock(uintptr(buddy.base), buddy.capacity, zeroblkinit)
	}
	buddy.initialized = true
	fmsg := "buddy heap of %v bytes, minblock %v, %v orders\n"
	infof(fmsg, buddy.capacity, buddy.minblock, buddy.ordercount)
}

//---- operations

// Alloc allocate a block of at least `size` bytes, rounded up to the
// nearest power of 2 multiple of minblock. The block's content is
// unspecified unless the allocator was created with the "zero"
// setting.
func (buddy *Buddy) Alloc(size int64) (unsafe.Pointer, error) {
	if buddy.initialized == false {
		return nil, ErrorNotInitialized
	} else if size <= 0 {
		return nil, ErrorInvalidSize
	} else if size > buddy.capacity {
		return nil, ErrorOutofMemory
	}
	order := buddy.orderof(size)
	index, ok := buddy.tree.findreserve(order)
	if ok == false {
		debugf("alloc %v bytes (order %v): out of memory\n", size, order)
		return nil, ErrorOutofMemory
	}
	blocksize := buddy.minblock << uint(order)
	buddy.table.mark(index<<uint(order), order)
	buddy.totalfree -= blocksize
	ptr := uintptr(buddy.base) + uintptr(offsetof(buddy.minblock, order, index))
	if buddy.zero {
		initblock(ptr, blocksize)
	}
	return unsafe.Pointer(ptr), nil
}

// Free release the block at `ptr`, which shall have been returned by
// this allocator's Alloc and not freed since. The block merges with
// its buddy, cascading upward, whenever both halves become free.
func (buddy *Buddy) Free(ptr unsafe.Pointer) error {
	if buddy.initialized == false {
		return ErrorNotInitialized
	} else if ptr == nil {
		return ErrorInvalidPointer
	}
	base := uintptr(buddy.base)
	if uintptr(ptr) < base || uintptr(ptr) >= base+uintptr(buddy.capacity) {
		return ErrorInvalidPointer
	}
	offset := int64(uintptr(ptr) - base)
	if (offset % buddy.minblock) != 0 {
		return ErrorInvalidPointer
	}
	leaf := offset / buddy.minblock
	order, ok := buddy.table.lookup(leaf)
	if ok == false { // double free, or no allocation starts here
		return ErrorInvalidPointer
	}
	index, ok := blockof(buddy.minblock, offset, order)
	if ok == false {
		return ErrorInvalidPointer
	}
	if buddy.tree.release(order, index) == false {
		return ErrorInvalidPointer
	}
	buddy.table.clear(leaf)
	buddy.totalfree += buddy.minblock << uint(order)
	return nil
}

// Reset release every outstanding block and make the whole heap
// available again. All previously returned pointers become invalid.
func (buddy *Buddy) Reset() {
	if buddy.initialized == false {
		return
	}
	buddy.tree.reset()
	buddy.table.reset()
	buddy.totalfree = buddy.capacity
}

// Release implement api.Mallocer{} interface. Drops the backing
// buffer, subsequent operations report ErrorNotInitialized.
func (buddy *Buddy) Release() {
	buddy.buf, buddy.base = nil, nil
	buddy.tree, buddy.table = nil, nil
	buddy.totalfree = 0
	buddy.initialized = false
}

//---- accessors

// Capacity total size of the heap in bytes.
func (buddy *Buddy) Capacity() int64 {
	return buddy.capacity
}

// Minblock size of a zero-order block in bytes.
func (buddy *Buddy) Minblock() int64 {
	return buddy.minblock
}

// Available implement api.Mallocer{} interface. Total free memory,
// which may not be allocatable as a whole due to fragmentation.
func (buddy *Buddy) Available() int64 {
	return buddy.totalfree
}

// Allocated implement api.Mallocer{} interface.
func (buddy *Buddy) Allocated() int64 {
	return buddy.capacity - buddy.totalfree
}

// Blocksizes implement api.Mallocer{} interface. Allocatable block
// sizes, smallest to the whole heap.
func (buddy *Buddy) Blocksizes() []int64 {
	sizes := make([]int64, 0, buddy.ordercount)
	for size := buddy.minblock; size <= buddy.capacity; size <<= 1 {
		sizes = append(sizes, size)
	}
	return sizes
}

//---- local functions

// orderof smallest order whose block size covers `size` bytes.
func (buddy *Buddy) orderof(size int64) int64 {
	order, blocksize := int64(0), buddy.minblock
	for blocksize < size {
		blocksize, order = blocksize<<1, order+1
	}
	return order
}
