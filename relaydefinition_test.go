package selprotopy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRelayDefinition_S2(t *testing.T) {
	body := []byte{
		0xA5, 0xC0, // command
		0x10,       // length
		0x01,       // numProtocolsSupported
		0x01,       // fmMessagesSupported
		0x00,       // statusFlagsSupported
		0xA5, 0xC1, // fm config command
		0xA5, 0xD1, // fm data command
		0x00,       // fmType
		0x01, 0x00, // protocol 0: capability byte (bit0 FastOperate), family SEL_STANDARD
	}
	for len(body) < 15 {
		body = append(body, 0x00)
	}
	frame := append(body, Checksum(body))

	def, err := ParseRelayDefinition(frame)
	require.NoError(t, err)
	require.Equal(t, 1, def.NumProtocolsSupported)
	require.Equal(t, 1, def.FMMessagesSupported)
	require.Len(t, def.FMCommandInfo, 1)
	require.Equal(t, []byte{0xA5, 0xC1}, def.FMCommandInfo[0].ConfigCommand)
	require.Equal(t, []byte{0xA5, 0xD1}, def.FMCommandInfo[0].Command)
	require.Len(t, def.Protocols, 1)
	require.Equal(t, SELStandard, def.Protocols[0].Family)
	require.True(t, def.Protocols[0].FastOperateEnabled)
	require.False(t, def.Protocols[0].FastMessageEnabled)
	require.Equal(t, FOConfigBlock, def.FastOperateConfigCommand)
	require.Nil(t, def.FastMessageConfigCommand)
}
