package asyncpipe

import (
	"runtime"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the buffer capacity used when Pipe is given a
// non-positive one.
const DefaultCapacity = 1024

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for drop-time diagnostics. The default
// is the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}

func newPipeID() string {
	return uuid.NewV4().String()
}

// Pipe creates an asynchronous pipe with the given buffer capacity and
// returns its two halves. A capacity of zero or less selects DefaultCapacity.
//
// The halves jointly own the shared state. Letting a half become unreachable
// without calling Close still closes the pipe: a runtime cleanup closes it
// once the garbage collector notices, so an abandoned half never leaves the
// peer parked forever. Explicit Close is still preferred, since cleanup runs
// at the collector's leisure.
//
// Each half supports one task at a time; sharing a single half between
// concurrently polling tasks is the caller's responsibility to avoid.
func Pipe(capacity int) (*PipeWriter, *PipeReader) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := newChannelState(capacity)

	w := &PipeWriter{s: s}
	r := &PipeReader{s: s}
	w.cleanup = runtime.AddCleanup(w, dropWriter, s)
	r.cleanup = runtime.AddCleanup(r, dropReader, s)
	return w, r
}

func dropWriter(s *channelState) {
	defer logDropFailure(s, "writer")
	s.mu.Lock()
	rw, ww := s.closeWriterLocked(nil)
	s.mu.Unlock()
	wake(rw, ww)
}

func dropReader(s *channelState) {
	defer logDropFailure(s, "reader")
	s.mu.Lock()
	rw, ww := s.closeReaderLocked(nil)
	s.mu.Unlock()
	wake(rw, ww)
}

// logDropFailure keeps a failing close from escaping the cleanup goroutine.
// Drop must not fail the process, so the error is logged and swallowed.
func logDropFailure(s *channelState, side string) {
	if r := recover(); r != nil {
		logger.WithFields(logrus.Fields{
			"pipe": s.id,
			"side": side,
		}).Warnf("asyncpipe: failed to close pipe on drop: %v", r)
	}
}
