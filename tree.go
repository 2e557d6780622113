package buddy

import "unsafe"

// Block states. A split block is never directly allocatable, it only
// delegates to its children.
const (
	blkfree  = byte(iota) // free and whole
	blksplit              // subdivided into two buddies
	blkalloc              // leased to exactly one caller
)

// nonefree sentinel for maxfree, no free block in the subtree.
const nonefree = int8(-1)

// buddytree augmented binary tree over the heap's blocks, laid out as
// a flat array in level order, root at 0. Each node caches the order
// of the largest free block in its subtree so that findreserve is a
// direct descent, not a scan.
type buddytree struct {
	maxorder int64 // order of the root block, spans the whole heap
	state    []byte
	maxfree  []int8
}

func newbuddytree(ordercount int64) *buddytree {
	leafcount := int64(1) << uint(ordercount-1)
	nodes := 2*leafcount - 1
	tree := &buddytree{
		maxorder: ordercount - 1,
		state:    make([]byte, nodes),
		maxfree:  make([]int8, nodes),
	}
	tree.reset()
	return tree
}

// reset every block to free-and-whole, the whole heap available.
func (tree *buddytree) reset() {
	order, width, node := tree.maxorder, int64(1), int64(0)
	for order >= 0 {
		for i := int64(0); i < width; i++ {
			tree.state[node] = blkfree
			tree.maxfree[node] = int8(order)
			node++
		}
		order, width = order-1, width<<1
	}
}

// nodeof flat-array position of block `index` at `order`.
func (tree *buddytree) nodeof(order, index int64) int64 {
	level := tree.maxorder - order
	return (int64(1) << uint(level)) - 1 + index
}

func parentof(node int64) int64 {
	return (node - 1) / 2
}

func leftof(node int64) int64 {
	return 2*node + 1
}

func rightof(node int64) int64 {
	return 2*node + 2
}

func siblingof(node int64) int64 {
	return ((node - 1) ^ 1) + 1
}

// findreserve descend from the root to a free block of exactly
// `order`, splitting larger free blocks along the way and preferring
// the lower-indexed child, then mark it allocated. The augmentation is
// recomputed on the walk back to the root. Returns the reserved
// block's index within `order`, or false when no free block of
// sufficient order exists.
func (tree *buddytree) findreserve(order int64) (int64, bool) {
	if order > tree.maxorder || int64(tree.maxfree[0]) < order {
		return 0, false
	}
	node, o := int64(0), tree.maxorder
	for o > order {
		if tree.state[node] == blkfree {
			tree.split(node, o)
		}
		if left := leftof(node); int64(tree.maxfree[left]) >= order {
			node = left
		} else {
			node = rightof(node)
		}
		o--
	}
	tree.state[node] = blkalloc
	tree.maxfree[node] = nonefree
	tree.refresh(node)
	return node - tree.nodeof(order, 0), true
}

// release the allocated block at (order, index), then merge with its
// buddy while both halves of the split parent are free and whole,
// cascading upward. Returns false unless the block is currently
// allocated. The augmentation is recomputed on the full path to the
// root regardless of how far merging proceeded.
func (tree *buddytree) release(order, index int64) bool {
	node := tree.nodeof(order, index)
	if tree.state[node] != blkalloc {
		return false
	}
	tree.state[node] = blkfree
	tree.maxfree[node] = int8(order)
	for node > 0 && tree.state[siblingof(node)] == blkfree {
		node, order = parentof(node), order+1
		tree.state[node] = blkfree
		tree.maxfree[node] = int8(order)
	}
	tree.refresh(node)
	return true
}

// split a free-and-whole block at `order`, both children start free
// and whole. Entries below the children are stale until their next
// split, findreserve and release never read them.
func (tree *buddytree) split(node, order int64) {
	tree.state[node] = blksplit
	left, right := leftof(node), rightof(node)
	tree.state[left], tree.state[right] = blkfree, blkfree
	tree.maxfree[left] = int8(order - 1)
	tree.maxfree[right] = int8(order - 1)
}

// refresh recompute maxfree for every ancestor of `node`.
func (tree *buddytree) refresh(node int64) {
	for node > 0 {
		node = parentof(node)
		l, r := tree.maxfree[leftof(node)], tree.maxfree[rightof(node)]
		if l > r {
			tree.maxfree[node] = l
		} else {
			tree.maxfree[node] = r
		}
	}
}

func (tree *buddytree) sizeof() int64 {
	self := int64(unsafe.Sizeof(*tree))
	return self + int64(len(tree.state)) + int64(len(tree.maxfree))
}

// validate recompute the augmentation from scratch and panic on any
// mismatch with the cached values. Can be a costly operation.
func (tree *buddytree) validate() {
	tree.validatenode(0, tree.maxorder)
}

func (tree *buddytree) validatenode(node, order int64) int8 {
	switch tree.state[node] {
	case blkfree:
		if int64(tree.maxfree[node]) != order {
			panicerr("node %v free, maxfree %v, expected %v",
				node, tree.maxfree[node], order)
		}
		return int8(order)

	case blkalloc:
		if tree.maxfree[node] != nonefree {
			panicerr("node %v allocated, maxfree %v", node, tree.maxfree[node])
		}
		return nonefree

	case blksplit:
		if order == 0 {
			panicerr("node %v split at order 0", node)
		}
		l := tree.validatenode(leftof(node), order-1)
		r := tree.validatenode(rightof(node), order-1)
		max := l
		if r > max {
			max = r
		}
		if tree.maxfree[node] != max {
			panicerr("node %v split, maxfree %v, expected %v",
				node, tree.maxfree[node], max)
		}
		return max
	}
	panicerr("node %v unknown state %v", node, tree.state[node])
	return nonefree
}
