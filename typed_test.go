package buddy

import "testing"
import "unsafe"

type tnode struct {
	key   int64
	value int64
	left  uint32
	right uint32
}

func TestAllocFor(t *testing.T) {
	b := NewBuddy(1024, testsettings(64))
	node, err := AllocFor[tnode](b)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	node.key, node.value = 10, 20
	node.left, node.right = 1, 2
	if x := b.Allocated(); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	}
	if err = FreeFor(b, node); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if x := b.Available(); x != 1024 {
		t.Errorf("expected %v, got %v", 1024, x)
	}

	// a type larger than minblock spans several zero-order blocks
	big, err := AllocFor[[100]byte](b)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if x := b.Allocated(); x != 128 {
		t.Errorf("expected %v, got %v", 128, x)
	}
	if err = FreeFor(b, big); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}

func TestAllocForAlignment(t *testing.T) {
	// block offsets are only minblock aligned, an 8 byte aligned type
	// cannot be honoured on a 4 byte minblock heap
	b := NewBuddy(1024, testsettings(4))
	if _, err := AllocFor[int64](b); err != ErrorUnsupportedAlign {
		t.Errorf("expected %v, got %v", ErrorUnsupportedAlign, err)
	}
	// rejected before touching the tree
	if x := b.Available(); x != 1024 {
		t.Errorf("expected %v, got %v", 1024, x)
	}
	if x := int64(b.tree.maxfree[0]); x != b.tree.maxorder {
		t.Errorf("expected %v, got %v", b.tree.maxorder, x)
	}
	if _, err := AllocFor[int32](b); err != nil {
		t.Errorf("unexpected %v", err)
	}
}

func TestAllocForEmpty(t *testing.T) {
	b := NewBuddy(1024, testsettings(8))
	if _, err := AllocFor[struct{}](b); err != ErrorInvalidSize {
		t.Errorf("expected %v, got %v", ErrorInvalidSize, err)
	}
}

func TestAllocForSize(t *testing.T) {
	b := NewBuddy(1024, testsettings(8))
	node, err := AllocFor[tnode](b)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	blocksize := b.minblock << uint(b.orderof(int64(unsafe.Sizeof(*node))))
	if x := b.Allocated(); x != blocksize {
		t.Errorf("expected %v, got %v", blocksize, x)
	}
	if err = FreeFor(b, node); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}
