package selprotopy

import "bytes"

/*
Frame is the uniform preamble every binary SEL protocol message shares:

	| <-   8 bits    -> |
	| 0xA5              |
	| Command            |
	| Length (incl. this preamble and trailing checksum byte)
	| ...payload...
	| Checksum            |

LocateFrame, StripTrailer, and ValidateFrame form the preamble every binary
parser runs before interpreting message-specific fields.
*/

// LocateFrame returns buf sliced from the first occurrence of the 0xA5
// frame header. It fails with MissingHeader if no such byte is present.
func LocateFrame(buf []byte) ([]byte, error) {
	offset := bytes.IndexByte(buf, FrameHeader)
	if offset == -1 {
		return nil, &MissingHeader{}
	}
	return buf[offset:], nil
}

// StripTrailer removes a trailing CR/LF sequence and anything at or after
// the level-0 prompt sentinel, which telnet/serial transports often append
// after the device's own framed response.
func StripTrailer(buf []byte) []byte {
	if idx := bytes.Index(buf, Level0); idx != -1 {
		buf = buf[:idx]
	}
	buf = bytes.TrimSuffix(buf, CR)
	return buf
}

// ValidateFrame reads the declared length from buf[2], confirms buf is at
// least that long, and verifies that the declared checksum byte
// (buf[length-1]) matches Checksum(buf[0:length-1]). It returns the
// validated, length-trimmed frame.
func ValidateFrame(buf []byte) ([]byte, error) {
	if len(buf) < 3 {
		return nil, &MalformedByteArray{Declared: 3, Got: len(buf)}
	}
	length := int(buf[2])
	if len(buf) < length {
		return nil, &MalformedByteArray{Declared: length, Got: len(buf)}
	}
	frame := buf[:length]
	checksumByte := frame[length-1]
	expected := Checksum(frame[:length-1])
	if checksumByte != expected {
		return nil, &ChecksumFail{Expected: expected, Found: checksumByte}
	}
	return frame, nil
}

// ExtractFrame runs the full preamble: locate the 0xA5 header, strip any
// transport-added trailer, and validate the length/checksum. This is the
// single choke-point every binary parser calls before interpreting its
// message-specific fields.
func ExtractFrame(buf []byte) ([]byte, error) {
	located, err := LocateFrame(buf)
	if err != nil {
		return nil, err
	}
	stripped := StripTrailer(located)
	return ValidateFrame(stripped)
}
