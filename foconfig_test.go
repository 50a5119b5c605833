package selprotopy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFOConfig_BreakersAndRemoteBitsWithPulse(t *testing.T) {
	buf := []byte{
		0xA5, 0xCE, // command
		0x00,       // length
		0x01,       // numBreakers
		0x00, 0x02, // numRemoteBits
		0x01, // pulseSupported
		0x00, // reserved
	}
	// breaker 0: open=0x01 close=0x02
	buf = append(buf, 0x01, 0x02)
	// remote bit 0: clear=0x03 set=0x04 pulse=0x05
	buf = append(buf, 0x03, 0x04, 0x05)
	// remote bit 1: clear=0x06 set=0x07 pulse=0x08
	buf = append(buf, 0x06, 0x07, 0x08)

	cfg, err := ParseFOConfig(buf)
	require.NoError(t, err)
	require.Len(t, cfg.Breakers, 1)
	require.Equal(t, byte(0x01), cfg.Breakers[0].Open)
	require.Equal(t, byte(0x02), cfg.Breakers[0].Close)
	require.Len(t, cfg.RemoteBits, 2)
	require.NotNil(t, cfg.RemoteBits[1].Pulse)
	require.Equal(t, byte(0x08), *cfg.RemoteBits[1].Pulse)
}

func TestParseFOConfig_NoPulseSupport(t *testing.T) {
	buf := []byte{
		0xA5, 0xCE,
		0x00,
		0x00,       // numBreakers
		0x00, 0x01, // numRemoteBits
		0x00, // pulseSupported
		0x00, // reserved
		0x03, 0x04, // remote bit 0: clear, set
	}
	cfg, err := ParseFOConfig(buf)
	require.NoError(t, err)
	require.False(t, cfg.PulseSupported)
	require.Nil(t, cfg.RemoteBits[0].Pulse)
}
