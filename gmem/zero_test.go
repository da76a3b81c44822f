package gmem_test

import (
	"testing"

	"github.com/gordian-engine/gecc/gmem"
	"github.com/stretchr/testify/require"
)

func TestZeroDetect(t *testing.T) {
	t.Parallel()

	require.True(t, gmem.ZeroDetect(nil))
	require.True(t, gmem.ZeroDetect([]byte{}))

	for _, size := range []int{1, 7, 8, 9, 63, 64, 65, 4096} {
		buf := make([]byte, size)
		require.True(t, gmem.ZeroDetect(buf), "size=%d", size)

		// A single nonzero byte anywhere must be detected,
		// including positions inside the word loop and in the tail.
		for _, pos := range []int{0, size / 2, size - 1} {
			buf[pos] = 1
			require.False(t, gmem.ZeroDetect(buf), "size=%d pos=%d", size, pos)
			buf[pos] = 0
		}
	}
}
