package buddy

import "unsafe"

// AllocFor allocate a block sized for T. Alignment stricter than the
// configured minblock cannot be honoured, block offsets are only
// guaranteed minblock aligned, such types report
// ErrorUnsupportedAlign without touching the tree.
func AllocFor[T any](buddy *Buddy) (*T, error) {
	var v T
	if int64(unsafe.Alignof(v)) > buddy.minblock {
		return nil, ErrorUnsupportedAlign
	}
	ptr, err := buddy.Alloc(int64(unsafe.Sizeof(v)))
	if err != nil {
		return nil, err
	}
	return (*T)(ptr), nil
}

// FreeFor release a block obtained from AllocFor.
func FreeFor[T any](buddy *Buddy, ptr *T) error {
	return buddy.Free(unsafe.Pointer(ptr))
}
