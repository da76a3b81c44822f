package gf256

const (
	// fieldPoly is the irreducible polynomial x^8 + x^4 + x^3 + x^2 + 1
	// used for modular reduction of field products.
	fieldPoly = 0x11d

	// generator is a primitive element of the field;
	// its powers enumerate every nonzero element exactly once.
	generator = 2

	// Order is the number of elements in the field.
	Order = 256
)

var (
	// expTable[i] = generator^i.
	// The table is doubled so that Mul and Div can index with the sum or
	// difference of two logs without reducing mod 255 first.
	expTable [510]byte

	// logTable[a] is the discrete log of a, for a != 0.
	logTable [256]byte

	// mulTable[a][b] is the full product table.
	mulTable [256][256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		expTable[i] = x
		expTable[i+255] = x
		logTable[x] = byte(i)
		x = mulPoly(x, generator)
	}

	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			mulTable[a][b] = expTable[int(logTable[a])+int(logTable[b])]
		}
	}
}

// mulPoly is the direct polynomial product of a and b,
// reduced by the field polynomial.
// It is the reference the lookup tables are built from,
// and the tests assert Mul agrees with it for every pair of inputs.
func mulPoly(a, b byte) byte {
	var prod byte
	aw := uint16(a)
	for b != 0 {
		if b&1 != 0 {
			prod ^= byte(aw)
		}
		aw <<= 1
		if aw&0x100 != 0 {
			aw ^= fieldPoly
		}
		b >>= 1
	}
	return prod
}

// Mul returns the field product of a and b.
func Mul(a, b byte) byte {
	return mulTable[a][b]
}

// Div returns a divided by b in the field.
// It panics if b is zero.
func Div(a, b byte) byte {
	if b == 0 {
		panic("gf256: division by zero")
	}
	if a == 0 {
		return 0
	}
	return expTable[int(logTable[a])-int(logTable[b])+255]
}

// Inverse returns the multiplicative inverse of a,
// so that Mul(a, Inverse(a)) == 1.
// It panics if a is zero; zero has no inverse,
// and callers are required to never ask for one.
func Inverse(a byte) byte {
	if a == 0 {
		panic("gf256: inverse of zero")
	}
	return expTable[255-int(logTable[a])]
}

// Exp returns a raised to the n-th power in the field.
func Exp(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return expTable[(int(logTable[a])*n)%255]
}
