package asyncpipe

import "errors"

// A Waker is an opaque capability that schedules a suspended task for another
// poll. A poll operation that returns ErrWouldBlock has stored the supplied
// waker; the peer half invokes it once the operation may make progress.
// Registering a new waker for the same side replaces the previous one.
//
// Wakers are invoked outside the pipe's internal lock, so a waker may safely
// re-enter the pipe. A wake is a hint, not a guarantee of readiness: the
// repolled operation may block again.
type Waker func()

var (
	// ErrWouldBlock reports that a poll operation cannot complete yet. The
	// registered waker fires once the operation is worth retrying. A poll
	// invoked with a nil waker still returns ErrWouldBlock but registers
	// nothing, turning the call into a pure non-blocking try.
	ErrWouldBlock = errors.New("asyncpipe: operation would block")

	// ErrBrokenPipe reports a write or flush on a pipe whose read side is
	// closed or gone. The stream is permanently done; there is no retry.
	ErrBrokenPipe = errors.New("asyncpipe: broken pipe")
)
