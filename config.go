package buddy

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Minblocksize smallest allowed size for a zero-order block.
const Minblocksize = int64(1)

// Maxcapacity maximum size of the heap managed by a single allocator.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultsettings for creating a buddy allocator.
//
// "minblock" (int64, default: 64)
//		Size of a zero-order block, the smallest allocatable block.
//		Shall be a power of 2. The heap capacity shall be a power of 2
//		multiple of minblock.
//
// "zero" (bool, default: false)
//		If true, zero-initialize the heap buffer and zero-fill every
//		block before returning it from Alloc.
func Defaultsettings() s.Settings {
	return s.Settings{
		"minblock": int64(64),
		"zero":     false,
	}
}

// Defaultcapacity pick a heap capacity from freely available system
// memory, rounded down to an exact power of 2. Can be used as capacity
// argument to NewBuddy().
func Defaultcapacity() int64 {
	_, _, free := getsysmem()
	capacity := floorpow2(int64(free / 8))
	if capacity > Maxcapacity {
		capacity = Maxcapacity
	} else if capacity < Minblocksize {
		capacity = Minblocksize
	}
	return capacity
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
