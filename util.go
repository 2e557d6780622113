package buddy

import "fmt"
import "unsafe"

func ispowerof2(x int64) bool {
	return x > 0 && (x&(x-1)) == 0
}

// log2of exponent of `x`, assumes x is an exact power of 2.
func log2of(x int64) int64 {
	n := int64(0)
	for x > 1 {
		x >>= 1
		n++
	}
	return n
}

// floorpow2 largest power of 2 less than or equal to `x`.
func floorpow2(x int64) int64 {
	if x <= 0 {
		return 0
	}
	for (x & (x - 1)) != 0 {
		x &= x - 1
	}
	return x
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

var poisonblkinit = make([]byte, 1024)
var zeroblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poisonblkinit); i++ {
		poisonblkinit[i] = 0xff
	}
}

func fillblock(block uintptr, size int64, pattern []byte) {
	dst := unsafe.Slice((*byte)(unsafe.Pointer(block)), size)
	for n := copy(dst, pattern); int64(n) < size; {
		n += copy(dst[n:], pattern)
	}
}
