package gereedsolomon

import (
	"fmt"

	"github.com/gordian-engine/gecc/gf256"
)

// tableStride is the size of one coefficient's nibble table.
const tableStride = 32

// LookupTables is the expansion of a generator matrix's parity rows
// into per-coefficient multiplication tables,
// so the encode and reconstruct inner loops replace every field multiply
// with two table lookups and an XOR.
//
// A LookupTables is a pure function of the matrix rows it was built from.
// It is immutable once built, may be cached indefinitely,
// and is safe to share across concurrent encode calls;
// it must be rebuilt only if the matrix changes.
type LookupTables struct {
	dataShards int

	// rows holds the expanded matrix rows (one per output shard),
	// retained so the kernel can special-case 0 and 1 coefficients.
	rows Matrix

	// gft holds tableStride bytes per (row, column) coefficient,
	// row-major: the table for row j, column i
	// starts at (j*dataShards + i) * tableStride.
	gft []byte
}

// InitTables builds the lookup table set for the parity rows of the
// (k+p) x k generator matrix m.
// The result depends only on m's contents:
// building twice from the same matrix yields identical tables.
func InitTables(m Matrix) (*LookupTables, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidParams)
	}
	k := len(m[0])
	if len(m) < k {
		return nil, fmt.Errorf(
			"%w: generator matrix has %d rows for %d data shards",
			ErrInvalidParams, len(m), k,
		)
	}
	for r := range m {
		if len(m[r]) != k {
			return nil, fmt.Errorf("%w: ragged matrix row %d", ErrInvalidParams, r)
		}
	}
	return initTablesForRows(m[k:], k), nil
}

// initTablesForRows builds tables for arbitrary coefficient rows over k
// inputs. Reconstruction uses it with decode rows that are not part of
// any generator matrix.
func initTablesForRows(rows Matrix, k int) *LookupTables {
	// Clone the rows so later mutation of the source matrix
	// cannot desynchronize the coefficients from the tables.
	cloned := newMatrix(len(rows), k)
	for r := range rows {
		copy(cloned[r], rows[r])
	}

	t := &LookupTables{
		dataShards: k,
		rows:       cloned,
		gft:        make([]byte, len(rows)*k*tableStride),
	}
	off := 0
	for _, row := range rows {
		for _, c := range row {
			tbl := gf256.VectMulInit(c)
			copy(t.gft[off:], tbl[:])
			off += tableStride
		}
	}
	return t
}

// DataShards returns the number of input shards the tables expect.
func (t *LookupTables) DataShards() int { return t.dataShards }

// OutputShards returns the number of output shards the tables produce,
// the parity count for tables built by [InitTables].
func (t *LookupTables) OutputShards() int { return len(t.rows) }

// Table returns the raw concatenated nibble tables,
// tableStride bytes per coefficient in row-major order.
// The returned slice aliases the table set and must not be modified.
func (t *LookupTables) Table() []byte { return t.gft }

func (t *LookupTables) at(row, col int) *[32]byte {
	off := (row*t.dataShards + col) * tableStride
	return (*[32]byte)(t.gft[off : off+tableStride])
}

// encodeBlocks runs the table-driven multiply-accumulate,
// computing each output shard as the dot product of its coefficient row
// with the source shards.
// Every output is fully overwritten.
// All buffers must be the same length; a zero length is a no-op.
func (t *LookupTables) encodeBlocks(srcs, outs [][]byte) {
	for j, out := range outs {
		row := t.rows[j]
		wrote := false
		for i, src := range srcs {
			switch c := row[i]; {
			case c == 0:
				// Contributes nothing; only matters if no source ever writes.
			case !wrote && c == 1:
				copy(out, src)
				wrote = true
			case !wrote:
				gf256.VectMul(t.at(j, i), src, out)
				wrote = true
			case c == 1:
				gf256.SliceXor(src, out)
			default:
				gf256.VectMulXor(t.at(j, i), src, out)
			}
		}
		if !wrote {
			clear(out)
		}
	}
}
