package gf256

// VectMulInit expands the coefficient c into a 32-byte nibble table:
// entry x of the low half holds c*x for x in 0..15,
// and entry x of the high half holds c*(x<<4).
// A full product for any byte b is then
// table[b&0x0f] XOR table[16 + b>>4].
//
// The layout matches the per-coefficient tables the erasure coding engine
// concatenates into its lookup table set,
// so a table built here can be compared byte-for-byte against
// the corresponding slice of an engine table set.
func VectMulInit(c byte) [32]byte {
	var tbl [32]byte
	for x := byte(0); x < 16; x++ {
		tbl[x] = Mul(c, x)
		tbl[16+x] = Mul(c, x<<4)
	}
	return tbl
}

// VectMul writes the product of coefficient table tbl and each byte of src
// into the corresponding byte of dst, overwriting dst.
// dst must be at least as long as src; src and dst must not overlap.
func VectMul(tbl *[32]byte, src, dst []byte) {
	dst = dst[:len(src)]
	lo, hi := tbl[:16], tbl[16:]
	for n, b := range src {
		dst[n] = lo[b&0x0f] ^ hi[b>>4]
	}
}

// VectMulXor accumulates the product of coefficient table tbl and each byte
// of src into the corresponding byte of dst by XOR.
// dst must be at least as long as src; src and dst must not overlap.
func VectMulXor(tbl *[32]byte, src, dst []byte) {
	activeKernels().mulXor(tbl, src, dst)
}

// SliceXor accumulates src into dst by XOR,
// the coefficient-one special case of [VectMulXor].
// dst must be at least as long as src; src and dst must not overlap.
func SliceXor(src, dst []byte) {
	activeKernels().xor(src, dst)
}

func vectMulXorGeneric(tbl *[32]byte, src, dst []byte) {
	dst = dst[:len(src)]
	lo, hi := tbl[:16], tbl[16:]
	for n, b := range src {
		dst[n] ^= lo[b&0x0f] ^ hi[b>>4]
	}
}

// vectMulXorUnrolled processes four bytes per iteration.
// It is selected over the generic loop on cores where the probe
// indicates the extra instruction-level parallelism pays off.
func vectMulXorUnrolled(tbl *[32]byte, src, dst []byte) {
	dst = dst[:len(src)]
	lo, hi := tbl[:16], tbl[16:]
	n := 0
	for ; n+4 <= len(src); n += 4 {
		b0, b1, b2, b3 := src[n], src[n+1], src[n+2], src[n+3]
		dst[n] ^= lo[b0&0x0f] ^ hi[b0>>4]
		dst[n+1] ^= lo[b1&0x0f] ^ hi[b1>>4]
		dst[n+2] ^= lo[b2&0x0f] ^ hi[b2>>4]
		dst[n+3] ^= lo[b3&0x0f] ^ hi[b3>>4]
	}
	for ; n < len(src); n++ {
		b := src[n]
		dst[n] ^= lo[b&0x0f] ^ hi[b>>4]
	}
}

func sliceXorGeneric(src, dst []byte) {
	dst = dst[:len(src)]
	for n, b := range src {
		dst[n] ^= b
	}
}
