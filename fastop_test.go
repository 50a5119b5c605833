package selprotopy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareRemoteBitFastOp_S3Pulse(t *testing.T) {
	frame := PrepareRemoteBitFastOp(0x07)
	want := []byte{0xA5, 0xE0, 0x06, 0x07, 0x1D}
	require.Equal(t, want, frame[:5])
	require.Equal(t, Checksum(frame[:5]), frame[5])
}

func TestRemoteBitControl_UnsupportedPulse(t *testing.T) {
	_, err := remoteBitControl(RemoteBitOps{Clear: 1, Set: 2}, RemoteBitPulse)
	require.Error(t, err)
	var ict *InvalidCommandType
	require.ErrorAs(t, err, &ict)
}

func TestEventRecordRequest_Range(t *testing.T) {
	frame, err := EventRecordRequest(5)
	require.NoError(t, err)
	require.Equal(t, []byte{0xA5, 0x65}, frame)

	_, err = EventRecordRequest(65)
	require.Error(t, err)
	var ict *InvalidCommandType
	require.ErrorAs(t, err, &ict)

	_, err = EventRecordRequest(-1)
	require.Error(t, err)
	require.ErrorAs(t, err, &ict)
}
