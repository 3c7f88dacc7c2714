package asyncpipe

// ring is a bounded FIFO byte buffer for a single producer and a single
// consumer. Storage is capacity+1 bytes so a full ring and an empty ring
// remain distinguishable without a separate counter.
type ring struct {
	data []byte
	head int // next byte to pop
	tail int // next byte to push
}

func newRing(capacity int) *ring {
	return &ring{data: make([]byte, capacity+1)}
}

// capacity returns the maximum number of buffered bytes.
func (r *ring) capacity() int {
	return len(r.data) - 1
}

// length returns the number of buffered bytes.
func (r *ring) length() int {
	if d := r.tail - r.head; d >= 0 {
		return d
	}
	return len(r.data) - r.head + r.tail
}

// free returns the number of bytes that can be pushed before the ring fills.
func (r *ring) free() int {
	return r.capacity() - r.length()
}

func (r *ring) empty() bool {
	return r.head == r.tail
}

func (r *ring) full() bool {
	return r.free() == 0
}

// push appends up to len(src) bytes and returns how many fit. The copy wraps
// around the end of the storage in at most two chunks.
func (r *ring) push(src []byte) int {
	n := min(r.free(), len(src))
	if n == 0 {
		return 0
	}

	first := min(n, len(r.data)-r.tail)
	copy(r.data[r.tail:], src[:first])
	copy(r.data, src[first:n])
	r.tail = (r.tail + n) % len(r.data)
	return n
}

// pop removes up to len(dst) bytes in FIFO order and returns how many were
// copied out.
func (r *ring) pop(dst []byte) int {
	n := min(r.length(), len(dst))
	if n == 0 {
		return 0
	}

	first := min(n, len(r.data)-r.head)
	copy(dst[:first], r.data[r.head:r.head+first])
	copy(dst[first:n], r.data)
	r.head = (r.head + n) % len(r.data)
	return n
}
