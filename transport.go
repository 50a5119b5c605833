package selprotopy

import "time"

// Transport is the capability interface a Session needs from the byte
// stream underneath it: a telnet session, a raw TCP socket, or a serial
// port all satisfy the same four methods.
type Transport interface {
	// ReadUntil blocks until delim has been seen in the accumulated read
	// buffer, the timeout elapses, or the underlying stream errors. It
	// returns everything read so far, including delim.
	ReadUntil(delim []byte, timeout time.Duration) ([]byte, error)

	// ReadEager performs a single non-blocking-ish read of whatever is
	// immediately available, returning a nil/empty slice rather than
	// blocking when nothing is waiting.
	ReadEager() ([]byte, error)

	// Write sends buf in full.
	Write(buf []byte) error

	// Reset discards any buffered-but-unread input.
	Reset() error
}
