package asyncpipe

import "io"

var (
	_ io.Reader     = (*PipeReader)(nil)
	_ io.WriterTo   = (*PipeReader)(nil)
	_ io.Closer     = (*PipeReader)(nil)
	_ io.Writer     = (*PipeWriter)(nil)
	_ io.ReaderFrom = (*PipeWriter)(nil)
	_ io.Closer     = (*PipeWriter)(nil)
)

// parker suspends a blocking adapter between polls. The one-slot channel
// coalesces redundant wakes and never blocks the waking side.
type parker chan struct{}

func newParker() parker {
	return make(parker, 1)
}

func (p parker) wake() {
	select {
	case p <- struct{}{}:
	default:
	}
}

func (p parker) park() {
	<-p
}

// Read implements io.Reader by blocking on PollRead until data or
// end-of-stream arrives.
func (r *PipeReader) Read(p []byte) (int, error) {
	pk := newParker()
	for {
		n, err := r.PollRead(p, pk.wake)
		if err != ErrWouldBlock {
			return n, err
		}
		pk.park()
	}
}

// WriteTo implements io.WriterTo, draining the pipe into dst until
// end-of-stream or an error.
func (r *PipeReader) WriteTo(dst io.Writer) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
			if wn != n {
				return total, io.ErrShortWrite
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}

// Write implements io.Writer by blocking on PollWrite until the whole slice
// is accepted or the pipe fails.
func (w *PipeWriter) Write(p []byte) (int, error) {
	pk := newParker()
	var total int
	for {
		n, err := w.PollWrite(p[total:], pk.wake)
		total += n
		switch {
		case err == ErrWouldBlock:
			pk.park()
		case err != nil:
			return total, err
		case total == len(p):
			return total, nil
		}
	}
}

// Flush blocks until the reader has drained everything written so far.
func (w *PipeWriter) Flush() error {
	pk := newParker()
	for {
		if err := w.PollFlush(pk.wake); err != ErrWouldBlock {
			return err
		}
		pk.park()
	}
}

// ReadFrom implements io.ReaderFrom, copying src into the pipe until EOF or
// an error.
func (w *PipeWriter) ReadFrom(src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}
