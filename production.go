//go:build !debug
// +build !debug

package buddy

func initblock(block uintptr, size int64) {
	fillblock(block, size, zeroblkinit)
}
