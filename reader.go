package asyncpipe

import "runtime"

// PipeReader is the read half of an asynchronous pipe.
type PipeReader struct {
	s       *channelState
	cleanup runtime.Cleanup
}

// PollRead copies buffered bytes into p in FIFO order without blocking.
//
// With data available it returns the number of bytes copied, up to len(p),
// and wakes a writer parked on a full buffer or a pending flush. With an
// empty buffer it returns (0, io.EOF) if the pipe is closed — the normal
// end-of-stream signal, or the error the writer closed with — and otherwise
// registers waker for the read side and returns ErrWouldBlock.
//
// A zero-length p succeeds immediately with n = 0.
func (r *PipeReader) PollRead(p []byte, waker Waker) (int, error) {
	s := r.s
	s.mu.Lock()
	if len(p) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	if !s.buf.empty() {
		n := s.buf.pop(p)
		s.bytesRead += uint64(n)
		s.readerWaker = nil
		ww := s.takeWriterWaker()
		s.mu.Unlock()
		wake(ww)
		return n, nil
	}
	if s.closed {
		err := s.readErrLocked()
		s.mu.Unlock()
		return 0, err
	}

	s.readerWaker = waker
	s.readerParks++
	// Speculative: the writer may be parked on a flush that an earlier read
	// already satisfied.
	ww := s.takeWriterWaker()
	s.mu.Unlock()
	wake(ww)
	return 0, ErrWouldBlock
}

// Close closes the pipe. Further writes fail with ErrBrokenPipe; a writer
// parked on a full buffer is woken so it observes the failure instead of
// hanging. Close is idempotent.
func (r *PipeReader) Close() error {
	return r.CloseWithError(nil)
}

// CloseWithError closes the pipe like Close, but subsequent writes fail with
// err instead of ErrBrokenPipe. The first error a pipe is closed with wins;
// a nil err keeps ErrBrokenPipe.
func (r *PipeReader) CloseWithError(err error) error {
	r.cleanup.Stop()
	s := r.s
	s.mu.Lock()
	rw, ww := s.closeReaderLocked(err)
	s.mu.Unlock()
	wake(rw, ww)
	return nil
}

// Flushed reports whether the buffer is currently empty.
func (r *PipeReader) Flushed() bool {
	return r.s.flushed()
}

// ID returns the pipe's unique identifier, shared by both halves.
func (r *PipeReader) ID() string {
	return r.s.id
}

// Stats returns a snapshot of the pipe's counters.
func (r *PipeReader) Stats() Stats {
	return r.s.stats()
}
