package asyncpipe

import (
	"io"
	"sync"
)

// channelState is the record shared by the two halves of a pipe. Every field
// is guarded by mu; no field is touched without holding it. The halves keep
// the state alive, and the drop hooks installed by Pipe close it when the
// last reference to a half disappears.
type channelState struct {
	mu sync.Mutex

	buf    *ring
	closed bool

	// At most one parked task per side. A slot is cleared either by the
	// wake that consumes it or by a poll on that side completing without
	// parking.
	readerWaker Waker
	writerWaker Waker

	// First close with an error wins; nil means the default for the side
	// (io.EOF for drained reads, ErrBrokenPipe for writes).
	readErr  error
	writeErr error

	id string

	bytesWritten uint64
	bytesRead    uint64
	writerParks  uint64
	readerParks  uint64
}

// Stats is a point-in-time snapshot of one pipe's counters.
type Stats struct {
	// Capacity is the fixed buffer capacity in bytes.
	Capacity int
	// Buffered is the number of bytes currently waiting to be read.
	Buffered int
	// BytesWritten and BytesRead count bytes accepted from the writer and
	// handed to the reader over the pipe's lifetime.
	BytesWritten uint64
	BytesRead    uint64
	// WriterParks and ReaderParks count poll operations that returned
	// ErrWouldBlock for the respective side.
	WriterParks uint64
	ReaderParks uint64
	// Closed reports whether either half has closed the pipe.
	Closed bool
}

func newChannelState(capacity int) *channelState {
	return &channelState{
		buf: newRing(capacity),
		id:  newPipeID(),
	}
}

// takeReaderWaker clears and returns the reader's waker. Callers invoke the
// result after releasing mu.
func (s *channelState) takeReaderWaker() Waker {
	w := s.readerWaker
	s.readerWaker = nil
	return w
}

func (s *channelState) takeWriterWaker() Waker {
	w := s.writerWaker
	s.writerWaker = nil
	return w
}

// readErrLocked is what a read sees once the buffer is drained and the pipe
// is closed.
func (s *channelState) readErrLocked() error {
	if s.readErr != nil {
		return s.readErr
	}
	return io.EOF
}

// writeErrLocked is what a write or flush sees once the pipe is closed.
func (s *channelState) writeErrLocked() error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return ErrBrokenPipe
}

// closeWriterLocked half-closes the pipe from the write side. Buffered bytes
// remain readable; a non-nil err replaces io.EOF for reads after the drain.
// Both wakers are returned so a parked peer always learns about the close.
func (s *channelState) closeWriterLocked(err error) (Waker, Waker) {
	s.closed = true
	if err != nil && s.readErr == nil {
		s.readErr = err
	}
	return s.takeReaderWaker(), s.takeWriterWaker()
}

// closeReaderLocked closes the pipe from the read side. A non-nil err
// replaces ErrBrokenPipe for subsequent writes.
func (s *channelState) closeReaderLocked(err error) (Waker, Waker) {
	s.closed = true
	if err != nil && s.writeErr == nil {
		s.writeErr = err
	}
	return s.takeReaderWaker(), s.takeWriterWaker()
}

func (s *channelState) statsLocked() Stats {
	return Stats{
		Capacity:     s.buf.capacity(),
		Buffered:     s.buf.length(),
		BytesWritten: s.bytesWritten,
		BytesRead:    s.bytesRead,
		WriterParks:  s.writerParks,
		ReaderParks:  s.readerParks,
		Closed:       s.closed,
	}
}

func (s *channelState) stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *channelState) flushed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.empty()
}

// wake invokes the wakers in order, skipping nil slots. Must be called after
// mu is released.
func wake(wakers ...Waker) {
	for _, w := range wakers {
		if w != nil {
			w()
		}
	}
}
