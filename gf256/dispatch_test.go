package gf256

import (
	"bytes"
	"testing"
)

// The dispatched kernels are interchangeable by contract;
// whichever one the probe picked, it must agree with the generic loop.

func TestKernelEquivalence_MulXor(t *testing.T) {
	t.Parallel()

	tbl := VectMulInit(0x8e)
	src := patternBytes(257)

	generic := patternBytes(257)
	unrolled := patternBytes(257)

	vectMulXorGeneric(&tbl, src, generic)
	vectMulXorUnrolled(&tbl, src, unrolled)

	if !bytes.Equal(generic, unrolled) {
		t.Fatalf("unrolled multiply-accumulate disagrees with generic loop")
	}

	active := patternBytes(257)
	activeKernels().mulXor(&tbl, src, active)
	if !bytes.Equal(generic, active) {
		t.Fatalf("dispatched multiply-accumulate disagrees with generic loop")
	}
}

func TestKernelEquivalence_Xor(t *testing.T) {
	t.Parallel()

	src := patternBytes(129)

	generic := patternBytes(129)
	wide := patternBytes(129)

	sliceXorGeneric(src, generic)
	sliceXorWide(src, wide)

	if !bytes.Equal(generic, wide) {
		t.Fatalf("wide XOR disagrees with generic loop")
	}

	active := patternBytes(129)
	activeKernels().xor(src, active)
	if !bytes.Equal(generic, active) {
		t.Fatalf("dispatched XOR disagrees with generic loop")
	}
}

func patternBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + 7)
	}
	return b
}
