package log

import (
	"fmt"
	"io"
	"sync"
)

// CircularBuffer is a thread-safe ring of recent log entries implementing
// [io.Writer]. While the TUI owns the terminal, log output is written here
// and flushed to stderr after the program exits, so handler output never
// corrupts the alternate screen.
type CircularBuffer struct {
	entries  [][]byte
	capacity int
	size     int
	head     int
	full     bool
	mu       sync.RWMutex
}

// NewCircularBuffer creates a buffer holding at most capacity entries; the
// oldest entry is overwritten once the buffer is full.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = 100
	}

	return &CircularBuffer{
		entries:  make([][]byte, capacity),
		capacity: capacity,
	}
}

// Write implements [io.Writer], storing p as one entry. The data is copied,
// since handlers reuse their buffers.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)

	cb.entries[cb.head] = entry
	cb.head = (cb.head + 1) % cb.capacity

	if !cb.full {
		cb.size++
		if cb.size == cb.capacity {
			cb.full = true
		}
	}

	return len(p), nil
}

// Entries returns a copy of all current entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.size == 0 {
		return nil
	}

	ordered := make([][]byte, 0, cb.size)

	appendEntry := func(i int) {
		if cb.entries[i] == nil {
			return
		}

		entry := make([]byte, len(cb.entries[i]))
		copy(entry, cb.entries[i])
		ordered = append(ordered, entry)
	}

	if cb.full {
		for i := cb.head; i < cb.capacity; i++ {
			appendEntry(i)
		}
		for i := range cb.head {
			appendEntry(i)
		}
	} else {
		for i := range cb.size {
			appendEntry(i)
		}
	}

	return ordered
}

// Size returns the current number of entries.
func (cb *CircularBuffer) Size() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.size
}

// Capacity returns the maximum number of entries.
func (cb *CircularBuffer) Capacity() int {
	return cb.capacity
}

// IsFull reports whether older entries have started being overwritten.
func (cb *CircularBuffer) IsFull() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.full
}

// WriteTo flushes all current entries to w, oldest first. It implements
// [io.WriterTo].
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range cb.Entries() {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}
