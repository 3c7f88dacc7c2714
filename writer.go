package asyncpipe

import "runtime"

// PipeWriter is the write half of an asynchronous pipe.
type PipeWriter struct {
	s       *channelState
	cleanup runtime.Cleanup
}

// PollWrite appends bytes to the pipe's buffer without blocking.
//
// It returns the number of bytes accepted, which may be less than len(p)
// when the buffer lacks room for the whole slice; callers that need the full
// slice delivered loop until it is (Write does exactly that). When the
// buffer is full, PollWrite registers waker for the write side and returns
// ErrWouldBlock. Once the pipe is closed every PollWrite fails with
// ErrBrokenPipe, or with the error the reader closed with.
//
// A zero-length p succeeds immediately with n = 0.
func (w *PipeWriter) PollWrite(p []byte, waker Waker) (int, error) {
	s := w.s
	s.mu.Lock()
	if s.closed {
		err := s.writeErrLocked()
		s.mu.Unlock()
		return 0, err
	}
	if len(p) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	if s.buf.full() {
		s.writerWaker = waker
		s.writerParks++
		rw := s.takeReaderWaker()
		s.mu.Unlock()
		wake(rw)
		return 0, ErrWouldBlock
	}

	n := s.buf.push(p)
	s.bytesWritten += uint64(n)
	s.writerWaker = nil
	rw := s.takeReaderWaker()
	s.mu.Unlock()
	wake(rw)
	return n, nil
}

// PollFlush reports whether the reader has drained everything written so
// far. It returns nil once the buffer is empty; while bytes remain it
// registers waker and returns ErrWouldBlock. Flushing a closed pipe fails
// the same way a write does.
func (w *PipeWriter) PollFlush(waker Waker) error {
	s := w.s
	s.mu.Lock()
	if s.closed {
		err := s.writeErrLocked()
		s.mu.Unlock()
		return err
	}
	if s.buf.empty() {
		s.writerWaker = nil
		s.mu.Unlock()
		return nil
	}
	s.writerWaker = waker
	s.writerParks++
	rw := s.takeReaderWaker()
	s.mu.Unlock()
	wake(rw)
	return ErrWouldBlock
}

// Close half-closes the pipe. Buffered bytes stay readable; once drained,
// reads return io.EOF. Close is idempotent and always wakes a parked peer.
func (w *PipeWriter) Close() error {
	return w.CloseWithError(nil)
}

// CloseWithError half-closes the pipe like Close, but reads that reach the
// end of the buffered data return err instead of io.EOF. The first error a
// pipe is closed with wins; a nil err keeps io.EOF.
func (w *PipeWriter) CloseWithError(err error) error {
	w.cleanup.Stop()
	s := w.s
	s.mu.Lock()
	rw, ww := s.closeWriterLocked(err)
	s.mu.Unlock()
	wake(rw, ww)
	return nil
}

// Flushed reports whether the buffer is currently empty. It is a snapshot,
// not a guarantee: the peer may change the buffer immediately after.
func (w *PipeWriter) Flushed() bool {
	return w.s.flushed()
}

// ID returns the pipe's unique identifier, shared by both halves.
func (w *PipeWriter) ID() string {
	return w.s.id
}

// Stats returns a snapshot of the pipe's counters.
func (w *PipeWriter) Stats() Stats {
	return w.s.stats()
}
