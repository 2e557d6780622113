//go:build debug
// +build debug

package buddy

// initblock fill a fresh block with 0xff so that reads of
// uninitialized memory stand out.
func initblock(block uintptr, size int64) {
	fillblock(block, size, poisonblkinit)
}
