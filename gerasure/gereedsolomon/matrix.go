package gereedsolomon

import (
	"fmt"

	"github.com/gordian-engine/gecc/gf256"
)

// Matrix is a row-major matrix of GF(2^8) elements.
// A generator matrix for a code with k data and p parity shards
// has k+p rows and k columns.
type Matrix [][]byte

func newMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	backing := make([]byte, rows*cols)
	for i := range m {
		m[i], backing = backing[:cols:cols], backing[cols:]
	}
	return m
}

// NewCauchyMatrix returns the systematic Cauchy generator matrix for
// dataShards data and parityShards parity shards:
// the identity on the top k rows,
// and parity row i (absolute row index in [k, k+p)), column j,
// holding 1/(i XOR j).
//
// Because i >= k > j, the XOR is never zero and every entry is defined,
// and the construction makes every k x k submatrix invertible,
// so the code tolerates any combination of up to p losses.
func NewCauchyMatrix(dataShards, parityShards int) (Matrix, error) {
	if err := checkShardCounts(dataShards, parityShards); err != nil {
		return nil, err
	}

	m := newMatrix(dataShards+parityShards, dataShards)
	for j := 0; j < dataShards; j++ {
		m[j][j] = 1
	}
	for i := dataShards; i < dataShards+parityShards; i++ {
		for j := 0; j < dataShards; j++ {
			m[i][j] = gf256.Inverse(byte(i) ^ byte(j))
		}
	}
	return m, nil
}

// NewVandermondeMatrix returns a systematic generator matrix whose parity
// rows are the classic Reed-Solomon power sequence:
// parity row r holds g^0, g^1, ..., g^(k-1) with g doubling each row,
// so the first parity row is all ones (a plain XOR of the data shards).
//
// Unlike the Cauchy construction, this layout is not guaranteed to keep
// every k x k submatrix invertible for larger shard counts;
// prefer [NewCauchyMatrix] unless compatibility with an existing
// power-sequence codec is required.
func NewVandermondeMatrix(dataShards, parityShards int) (Matrix, error) {
	if err := checkShardCounts(dataShards, parityShards); err != nil {
		return nil, err
	}

	m := newMatrix(dataShards+parityShards, dataShards)
	for j := 0; j < dataShards; j++ {
		m[j][j] = 1
	}

	g := byte(1)
	for r := 0; r < parityShards; r++ {
		row := m[dataShards+r]
		q := byte(1)
		for j := 0; j < dataShards; j++ {
			row[j] = q
			q = gf256.Mul(q, g)
		}
		g = gf256.Mul(g, 2)
	}
	return m, nil
}

func checkShardCounts(dataShards, parityShards int) error {
	if dataShards <= 0 {
		return fmt.Errorf("%w: data shards must be > 0, got %d", ErrInvalidParams, dataShards)
	}
	if parityShards < 0 {
		return fmt.Errorf("%w: parity shards must be >= 0, got %d", ErrInvalidParams, parityShards)
	}
	if dataShards+parityShards > gf256.Order {
		return fmt.Errorf(
			"%w: %d total shards exceed the %d elements of GF(2^8)",
			ErrInvalidParams, dataShards+parityShards, gf256.Order,
		)
	}
	return nil
}

// SubMatrixRows returns a new matrix consisting of the given rows of m,
// in the given order.
// Reconstruction uses it to restrict the generator
// to the rows of the surviving shards.
func (m Matrix) SubMatrixRows(rows []int) Matrix {
	sub := newMatrix(len(rows), len(m[0]))
	for i, r := range rows {
		copy(sub[i], m[r])
	}
	return sub
}

// Mul returns the matrix product m x right.
func (m Matrix) Mul(right Matrix) Matrix {
	out := newMatrix(len(m), len(right[0]))
	for r := range out {
		for c := range out[r] {
			var acc byte
			for i := range right {
				acc ^= gf256.Mul(m[r][i], right[i][c])
			}
			out[r][c] = acc
		}
	}
	return out
}

// Invert returns the inverse of the square matrix m,
// computed by Gauss-Jordan elimination over GF(2^8)
// on the matrix augmented with the identity.
// Zero pivots are resolved by swapping with a lower row
// holding a nonzero entry in the pivot column;
// if no such row exists the matrix is singular
// and [ErrSingularMatrix] is returned.
// m itself is not modified.
func (m Matrix) Invert() (Matrix, error) {
	n := len(m)
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot invert an empty matrix", ErrInvalidParams)
	}
	if len(m[0]) != n {
		return nil, fmt.Errorf("%w: cannot invert a %dx%d matrix", ErrInvalidParams, n, len(m[0]))
	}

	// Work on (m | I).
	work := newMatrix(n, 2*n)
	for r := range m {
		copy(work[r], m[r])
		work[r][n+r] = 1
	}

	for col := 0; col < n; col++ {
		if work[col][col] == 0 {
			for below := col + 1; below < n; below++ {
				if work[below][col] != 0 {
					work[col], work[below] = work[below], work[col]
					break
				}
			}
		}
		if work[col][col] == 0 {
			return nil, fmt.Errorf("%w: no pivot in column %d", ErrSingularMatrix, col)
		}

		// Scale the pivot row so the pivot becomes 1.
		if pivot := work[col][col]; pivot != 1 {
			scale := gf256.Inverse(pivot)
			row := work[col]
			for c := range row {
				row[c] = gf256.Mul(row[c], scale)
			}
		}

		// Eliminate the pivot column from every other row.
		// Addition and subtraction are both XOR,
		// so one pass clears above and below the diagonal alike.
		for r := 0; r < n; r++ {
			if r == col || work[r][col] == 0 {
				continue
			}
			scale := work[r][col]
			row, pivotRow := work[r], work[col]
			for c := range row {
				row[c] ^= gf256.Mul(scale, pivotRow[c])
			}
		}
	}

	inv := newMatrix(n, n)
	for r := range inv {
		copy(inv[r], work[r][n:])
	}
	return inv, nil
}
