package selprotopy

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mockTransport is a Transport whose ReadUntil responses are scripted in
// advance, one slice per call, independent of what Write sends. It exists
// purely to drive deterministic Session tests without a real relay.
type mockTransport struct {
	writes    [][]byte
	responses [][]byte
	readCalls int
}

func (m *mockTransport) Write(buf []byte) error {
	m.writes = append(m.writes, append([]byte{}, buf...))
	return nil
}

func (m *mockTransport) ReadUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	if m.readCalls >= len(m.responses) {
		return nil, io.EOF
	}
	resp := m.responses[m.readCalls]
	m.readCalls++
	return resp, nil
}

func (m *mockTransport) ReadEager() ([]byte, error) { return nil, nil }
func (m *mockTransport) Reset() error               { return nil }

func relayDefinitionFrame(t *testing.T) []byte {
	t.Helper()
	body := []byte{
		0xA5, 0xC0, 0x10, 0x01, 0x01, 0x00,
		0xA5, 0xC1, 0xA5, 0xD1,
		0x00, 0x01, 0x00,
	}
	// length byte (0x10 == 16) counts the whole frame including the
	// trailing checksum, so the pre-checksum body is padded to 15 bytes.
	for len(body) < 15 {
		body = append(body, 0x00)
	}
	return append(body, Checksum(body))
}

func TestSession_VerifyConnection_Succeeds(t *testing.T) {
	transport := &mockTransport{responses: [][]byte{[]byte("\r\n=\r\n")}}
	s := &Session{transport: transport, options: NewSessionOptions()}
	require.NoError(t, s.VerifyConnection())
}

func TestSession_VerifyConnection_ExhaustsAttempts(t *testing.T) {
	opts := NewSessionOptions().SetConnectionCheckAttempts(2).SetInterCommandDelay(0)
	transport := &mockTransport{responses: [][]byte{[]byte("garbage"), []byte("garbage")}}
	s := &Session{transport: transport, options: opts}
	err := s.VerifyConnection()
	require.Error(t, err)
	var cvf *ConnVerificationFail
	require.ErrorAs(t, err, &cvf)
}

// TestSession_AutoConfig_S6RetriesOnceOnTruncatedFrame is S6: a mock
// transport returns a truncated Relay Definition on the first read and a
// well-formed one on the second. The test runs AutoConfig's relay-definition
// step (withRetry around requestFrame and ParseRelayDefinition) directly,
// and that step must retry exactly once and succeed.
func TestSession_AutoConfig_S6RetriesOnceOnTruncatedFrame(t *testing.T) {
	full := relayDefinitionFrame(t)
	truncated := full[:4]

	transport := &mockTransport{
		responses: [][]byte{
			append(truncated, CR...), // first relay definition attempt: truncated
			append(full, CR...),      // second attempt: well-formed
		},
	}
	opts := NewSessionOptions().SetConnectionCheckAttempts(3).SetInterCommandDelay(0).SetNoVerify(true).SetAutoConfigOnStart(false)
	s, err := NewSession(transport, opts)
	require.NoError(t, err)

	err = withRetry("relay definition", 3, 0, func() error {
		frame, ferr := s.requestFrame(RelayDefinition)
		if ferr != nil {
			return ferr
		}
		def, perr := ParseRelayDefinition(frame)
		if perr != nil {
			return perr
		}
		s.Definition = def
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, s.Definition)
	require.Equal(t, 1, s.Definition.NumProtocolsSupported)
	require.Equal(t, 2, transport.readCalls)
}
