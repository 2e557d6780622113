package main

import "flag"
import "fmt"
import "math/rand"
import "unsafe"

import "github.com/bnclabs/gobuddy"
import gohumanize "github.com/dustin/go-humanize"

var options struct {
	capacity int64
	minblock int64
	count    int
	maxsize  int64
	seed     int64
	zero     bool
}

func argParse() {
	flag.Int64Var(&options.capacity, "capacity", 0,
		"heap capacity in bytes, 0 picks from free system memory")
	flag.Int64Var(&options.minblock, "minblock", 64,
		"zero-order block size in bytes")
	flag.IntVar(&options.count, "count", 1000000,
		"number of alloc/free operations")
	flag.Int64Var(&options.maxsize, "maxsize", 4096,
		"maximum allocation size")
	flag.Int64Var(&options.seed, "seed", 42,
		"seed for the random workload")
	flag.BoolVar(&options.zero, "zero", false,
		"zero-fill blocks before returning them")
	flag.Parse()
}

func main() {
	argParse()

	capacity := options.capacity
	if capacity == 0 {
		// pick something sane from free RAM, capped at 1GB
		capacity = buddy.Defaultcapacity()
		if capacity > 1024*1024*1024 {
			capacity = 1024 * 1024 * 1024
		}
	}
	setts := buddy.Defaultsettings()
	setts["minblock"] = options.minblock
	setts["zero"] = options.zero
	b := buddy.NewBuddy(capacity, setts)

	fmt.Printf("heap %v, minblock %v, sizes %v\n",
		gohumanize.Bytes(uint64(capacity)), options.minblock, b.Blocksizes())

	rnd := rand.New(rand.NewSource(options.seed))
	ptrs := make([]unsafe.Pointer, 0, 1024)
	allocs, frees, ooms := 0, 0, 0
	for i := 0; i < options.count; i++ {
		if len(ptrs) > 0 && rnd.Intn(2) == 0 {
			n := rnd.Intn(len(ptrs))
			if err := b.Free(ptrs[n]); err != nil {
				fmt.Printf("free: unexpected %v\n", err)
				return
			}
			ptrs[n] = ptrs[len(ptrs)-1]
			ptrs = ptrs[:len(ptrs)-1]
			frees++
			continue
		}
		size := rnd.Int63n(options.maxsize) + 1
		ptr, err := b.Alloc(size)
		if err == buddy.ErrorOutofMemory {
			ooms++
			continue
		} else if err != nil {
			fmt.Printf("alloc %v: unexpected %v\n", size, err)
			return
		}
		ptrs = append(ptrs, ptr)
		allocs++
	}

	fmt.Printf("%v allocs, %v frees, %v out-of-memory\n", allocs, frees, ooms)
	fmt.Printf("allocated %v, available %v\n",
		gohumanize.Bytes(uint64(b.Allocated())),
		gohumanize.Bytes(uint64(b.Available())))
	sizes, zs := b.Utilization()
	for i, size := range sizes {
		fmt.Printf("size %6v, utilization %2.2f%%\n", size, zs[i])
	}
	capa, heap, alloc, overhead := b.Info()
	fmt.Printf("capacity %v heap %v alloc %v overhead %v\n",
		capa, heap, alloc, overhead)
}
