package log_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataplot/palette/pkg/log"
)

func TestCircularBufferWrite(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes          []string
		capacity        int
		expectedEntries []string
		expectedSize    int
		expectedFull    bool
	}{
		"under capacity": {
			capacity:        3,
			writes:          []string{"a", "b"},
			expectedEntries: []string{"a", "b"},
			expectedSize:    2,
			expectedFull:    false,
		},
		"at capacity": {
			capacity:        3,
			writes:          []string{"a", "b", "c"},
			expectedEntries: []string{"a", "b", "c"},
			expectedSize:    3,
			expectedFull:    true,
		},
		"over capacity overwrites oldest": {
			capacity:        3,
			writes:          []string{"a", "b", "c", "d", "e"},
			expectedEntries: []string{"c", "d", "e"},
			expectedSize:    3,
			expectedFull:    true,
		},
		"empty writes are ignored": {
			capacity:        3,
			writes:          []string{"a", "", "b"},
			expectedEntries: []string{"a", "b"},
			expectedSize:    2,
			expectedFull:    false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cb := log.NewCircularBuffer(tc.capacity)
			for _, s := range tc.writes {
				n, err := cb.Write([]byte(s))
				require.NoError(t, err)
				assert.Equal(t, len(s), n)
			}

			entries := cb.Entries()
			require.Len(t, entries, len(tc.expectedEntries))

			for i, want := range tc.expectedEntries {
				assert.Equal(t, want, string(entries[i]))
			}

			assert.Equal(t, tc.expectedSize, cb.Size())
			assert.Equal(t, tc.expectedFull, cb.IsFull())
		})
	}
}

func TestCircularBufferDefaults(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(0)
	assert.Equal(t, 100, cb.Capacity())
}

func TestCircularBufferCopiesData(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(2)

	p := []byte("original")
	_, err := cb.Write(p)
	require.NoError(t, err)

	// Handlers reuse their buffers; the stored entry must not alias p.
	copy(p, "mutated!")

	entries := cb.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "original", string(entries[0]))
}

func TestCircularBufferWriteTo(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(3)
	for _, s := range []string{"one\n", "two\n", "three\n", "four\n"} {
		_, err := cb.Write([]byte(s))
		require.NoError(t, err)
	}

	var buf bytes.Buffer

	n, err := cb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "two\nthree\nfour\n", buf.String())
}

func TestCircularBufferConcurrentWrites(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 10 {
				_, err := cb.Write(fmt.Appendf(nil, "entry-%d-%d\n", i, j))
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, cb.Size())
	assert.True(t, cb.IsFull())
}
