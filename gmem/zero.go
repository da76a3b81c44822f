// Package gmem provides small memory-region utilities that sit alongside
// the erasure coding engine as peer primitives,
// used to skip work on runs of zero blocks.
package gmem

import "encoding/binary"

// ZeroDetect reports whether every byte of buf is zero.
// An empty buffer is considered all zeros.
func ZeroDetect(buf []byte) bool {
	// Word-at-a-time scan with a byte tail.
	for len(buf) >= 8 {
		if binary.LittleEndian.Uint64(buf) != 0 {
			return false
		}
		buf = buf[8:]
	}
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
