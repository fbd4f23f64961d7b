// Package buffer implements an owned, resizable byte region with an
// implicit NUL terminator, mirroring the buffer_t contract of the
// original reactor core: create/copy/concat/resize/append/slice/splice/
// compare/to-string, with views that alias their owner rather than copy.
package buffer

// Buffer is an owned byte region. Its capacity is always at least
// len(data)+1 and the byte at index Len() is always zero.
type Buffer struct {
	data []byte
}

// New creates a zero-filled buffer of the given length.
func New(length int) Buffer {
	return Buffer{data: make([]byte, length, length+1)[:length]}
}

// NewFromString creates a buffer containing a copy of s.
func NewFromString(s string) Buffer {
	b := Buffer{data: make([]byte, len(s), len(s)+1)}
	copy(b.data, s)
	return b
}

// Len returns the number of visible bytes in the buffer.
func (b Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's visible bytes. The returned slice aliases
// the buffer's storage and is invalidated by any subsequent mutating
// call (Append, Resize, Splice) on b.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Copy returns a new buffer with an independent copy of b's bytes.
func Copy(b Buffer) Buffer {
	out := New(b.Len())
	copy(out.data, b.data)
	return out
}

// Concat returns a new buffer containing the bytes of a followed by b.
// Neither a nor b is modified.
func Concat(a, b Buffer) Buffer {
	out := New(a.Len() + b.Len())
	copy(out.data, a.data)
	copy(out.data[a.Len():], b.data)
	return out
}

// Resize changes a's length to n. Growing zero-fills the newly exposed
// tail (including the sentinel byte past the new length); shrinking
// truncates, preserves the prefix, and zeroes the sentinel byte at the
// new length.
func Resize(a *Buffer, n int) {
	if n <= len(a.data) {
		a.data = a.data[:n]
		if n < cap(a.data) {
			a.data[:n+1][n] = 0
		}
		return
	}
	grown := make([]byte, n, n+1)
	copy(grown, a.data)
	a.data = grown
}

// Append resizes a to hold b's bytes appended after its current content.
// b is left unchanged.
func Append(a *Buffer, b Buffer) {
	oldLen := a.Len()
	Resize(a, oldLen+b.Len())
	copy(a.data[oldLen:], b.data)
}

// Slice returns a view over a starting at offset i through the end of a.
// The view aliases a's storage and must not outlive a; it is invalidated
// by any mutating call on a. i must be <= a.Len().
func Slice(a Buffer, i int) (Buffer, bool) {
	if i > a.Len() {
		return Buffer{}, false
	}
	return Buffer{data: a.data[i:]}, true
}

// Splice left-shifts a in place by i bytes, discarding the prefix. It is
// total for i <= a.Len() and preserves the NUL terminator.
func Splice(a *Buffer, i int) bool {
	if i > a.Len() {
		return false
	}
	a.data = a.data[i:]
	return true
}

// Compare lexicographically compares a and b, breaking ties on a common
// prefix by length (shorter is less).
func Compare(a, b Buffer) int {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if a.data[i] != b.data[i] {
			return int(a.data[i]) - int(b.data[i])
		}
	}
	return a.Len() - b.Len()
}

// String returns an allocating copy of a's visible bytes as a string.
func (b Buffer) String() string {
	return string(b.data)
}
