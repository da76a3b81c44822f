package gf256

import (
	"encoding/binary"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// kernels bundles the interchangeable implementations of the inner loops.
// Every implementation of a slot is functionally identical;
// only throughput differs.
type kernels struct {
	mulXor func(tbl *[32]byte, src, dst []byte)
	xor    func(src, dst []byte)
}

// activeKernels returns the kernel set for this process.
// The capability probe runs once on first use and the choice is
// read-only afterwards, so concurrent callers never contend.
var activeKernels = sync.OnceValue(detectKernels)

func detectKernels() kernels {
	if hasWideLoadStore() {
		return kernels{
			mulXor: vectMulXorUnrolled,
			xor:    sliceXorWide,
		}
	}
	return kernels{
		mulXor: vectMulXorGeneric,
		xor:    sliceXorGeneric,
	}
}

// hasWideLoadStore reports whether the CPU handles unaligned word-sized
// loads and stores efficiently, which is what the wide XOR path and the
// unrolled multiply-accumulate rely on.
func hasWideLoadStore() bool {
	return cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD)
}

// sliceXorWide accumulates eight bytes per iteration.
func sliceXorWide(src, dst []byte) {
	dst = dst[:len(src)]
	n := 0
	for ; n+8 <= len(src); n += 8 {
		v := binary.LittleEndian.Uint64(src[n:]) ^ binary.LittleEndian.Uint64(dst[n:])
		binary.LittleEndian.PutUint64(dst[n:], v)
	}
	for ; n < len(src); n++ {
		dst[n] ^= src[n]
	}
}
