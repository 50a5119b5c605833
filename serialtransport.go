package selprotopy

import (
	"bufio"
	"bytes"
	"time"

	"github.com/tarm/serial"
)

// SerialTransport adapts a github.com/tarm/serial port to the Transport
// interface, for relays reached over RS-232/RS-485 rather than telnet.
type SerialTransport struct {
	port   *serial.Port
	reader *bufio.Reader
}

// OpenSerial opens the named serial device at baud and wraps it as a
// Transport.
func OpenSerial(name string, baud int) (*SerialTransport, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, err
	}
	return &SerialTransport{port: port, reader: bufio.NewReader(port)}, nil
}

func (t *SerialTransport) ReadUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	var buf bytes.Buffer
	for {
		if timeout > 0 && time.Now().After(deadline) {
			return buf.Bytes(), errTimeout{}
		}
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

func (t *SerialTransport) ReadEager() ([]byte, error) {
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

func (t *SerialTransport) Write(buf []byte) error {
	_, err := t.port.Write(buf)
	return err
}

func (t *SerialTransport) Reset() error {
	return t.port.Flush()
}

// Close closes the underlying serial port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}

type errTimeout struct{}

func (errTimeout) Error() string { return "serial transport: read timed out" }
