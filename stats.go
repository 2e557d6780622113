package buddy

import "unsafe"

import gohumanize "github.com/dustin/go-humanize"

// Info implement api.Mallocer{} interface. Memory accounting for this
// allocator: configured capacity, heap memory held from the Go
// runtime, bytes leased out, and metadata overhead.
func (buddy *Buddy) Info() (capacity, heap, alloc, overhead int64) {
	overhead = int64(unsafe.Sizeof(*buddy))
	if buddy.initialized {
		overhead += buddy.tree.sizeof() + buddy.table.sizeof()
	}
	return buddy.capacity, int64(len(buddy.buf)), buddy.Allocated(), overhead
}

// Utilization implement api.Mallocer{} interface. Block sizes with at
// least one outstanding allocation and, for each, the percentage of
// the heap leased at that size.
func (buddy *Buddy) Utilization() ([]int, []float64) {
	if buddy.initialized == false {
		return nil, nil
	}
	counts := make([]int64, buddy.ordercount)
	for _, order := range buddy.table.orders {
		if order >= 0 {
			counts[order]++
		}
	}
	sizes, zs := make([]int, 0, buddy.ordercount), make([]float64, 0, buddy.ordercount)
	for order, n := range counts {
		if n == 0 {
			continue
		}
		size := buddy.minblock << uint(order)
		sizes = append(sizes, int(size))
		zs = append(zs, (float64(n*size)/float64(buddy.capacity))*100)
	}
	return sizes, zs
}

// Log current statistics, if humanize is true log sizes in human
// readable units.
func (buddy *Buddy) Log(humanize bool) {
	capacity, heap, alloc, overhead := buddy.Info()
	if humanize {
		fmsg := "buddy capacity: %v heap: %v alloc: %v overhead: %v\n"
		infof(fmsg,
			gohumanize.Bytes(uint64(capacity)), gohumanize.Bytes(uint64(heap)),
			gohumanize.Bytes(uint64(alloc)), gohumanize.Bytes(uint64(overhead)))
	} else {
		fmsg := "buddy capacity: %v heap: %v alloc: %v overhead: %v\n"
		infof(fmsg, capacity, heap, alloc, overhead)
	}
	sizes, zs := buddy.Utilization()
	for i, size := range sizes {
		infof("buddy utilization: %v %2.2f%%\n", size, zs[i])
	}
}
