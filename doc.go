// Package asyncpipe provides an in-process, asynchronous, unidirectional byte
// pipe: a write half and a read half sharing one bounded ring buffer. Each
// half exposes non-blocking poll operations that either complete immediately
// or report ErrWouldBlock after registering a Waker, so producer and consumer
// tasks driven by a cooperative scheduler can exchange bytes without parking
// an OS thread. Blocking io.Reader/io.Writer adapters are layered on top for
// callers that prefer the standard library contracts.
package asyncpipe
