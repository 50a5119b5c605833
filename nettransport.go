package selprotopy

import (
	"bufio"
	"bytes"
	"net"
	"time"
)

// TCPTransport adapts a net.Conn (as returned by net.Dial for a telnet or
// raw TCP session to a relay) to the Transport interface.
type TCPTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

// NewTCPTransport wraps conn for use as a Session's Transport.
func NewTCPTransport(conn net.Conn) *TCPTransport {
	return &TCPTransport{conn: conn, reader: bufio.NewReader(conn)}
}

// DialTCP opens a TCP connection to addr and wraps it as a Transport.
func DialTCP(addr string, timeout time.Duration) (*TCPTransport, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return NewTCPTransport(conn), nil
}

func (t *TCPTransport) ReadUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		defer t.conn.SetReadDeadline(time.Time{})
	}
	var buf bytes.Buffer
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			return buf.Bytes(), err
		}
		buf.WriteByte(b)
		if bytes.HasSuffix(buf.Bytes(), delim) {
			return buf.Bytes(), nil
		}
	}
}

func (t *TCPTransport) ReadEager() ([]byte, error) {
	n := t.reader.Buffered()
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := t.reader.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (t *TCPTransport) Write(buf []byte) error {
	_, err := t.conn.Write(buf)
	return err
}

func (t *TCPTransport) Reset() error {
	for t.reader.Buffered() > 0 {
		if _, err := t.reader.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying connection.
func (t *TCPTransport) Close() error {
	return t.conn.Close()
}
