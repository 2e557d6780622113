package buddy

import "unsafe"

// alloctable records, for every order-0 block index at which an
// allocation starts, the order the block was reserved at. Free
// receives a bare pointer and recovers the reservation order from
// here, without caller supplied hints and without stealing header
// bytes from the block itself.
type alloctable struct {
	orders []int8
}

func newalloctable(leafcount int64) *alloctable {
	table := &alloctable{orders: make([]int8, leafcount)}
	table.reset()
	return table
}

func (table *alloctable) reset() {
	for i := range table.orders {
		table.orders[i] = nonefree
	}
}

// mark an allocation of `order` starting at order-0 block `leaf`.
func (table *alloctable) mark(leaf, order int64) {
	table.orders[leaf] = int8(order)
}

// lookup the order recorded at `leaf`, false when no allocation
// starts there.
func (table *alloctable) lookup(leaf int64) (int64, bool) {
	if order := table.orders[leaf]; order >= 0 {
		return int64(order), true
	}
	return 0, false
}

func (table *alloctable) clear(leaf int64) {
	table.orders[leaf] = nonefree
}

func (table *alloctable) sizeof() int64 {
	return int64(unsafe.Sizeof(*table)) + int64(len(table.orders))
}
