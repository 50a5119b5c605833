package selprotopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s1Frame() []byte {
	body := []byte{0xA5, 0xC0, 0x06, 0x01, 0x02}
	return append(body, Checksum(body))
}

func TestValidateFrame_S1Checksum(t *testing.T) {
	frame := s1Frame()
	validated, err := ValidateFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, frame, validated)
}

func TestValidateFrame_ChecksumFail(t *testing.T) {
	frame := s1Frame()
	frame[1] = 0xC1 // mutate an earlier byte; checksum byte now stale
	_, err := ValidateFrame(frame)
	require.Error(t, err)
	var cf *ChecksumFail
	require.ErrorAs(t, err, &cf)
}

func TestLocateFrame_MissingHeader(t *testing.T) {
	_, err := LocateFrame([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	var mh *MissingHeader
	require.ErrorAs(t, err, &mh)
}

func TestLocateFrame_SkipsLeadingNoise(t *testing.T) {
	frame := s1Frame()
	noisy := append([]byte{0x00, 0x00}, frame...)
	located, err := LocateFrame(noisy)
	require.NoError(t, err)
	assert.Equal(t, frame, located)
}

func TestStripTrailer(t *testing.T) {
	frame := s1Frame()
	withTrailer := append(append([]byte{}, frame...), CR...)
	withTrailer = append(withTrailer, Level0...)
	assert.Equal(t, frame, StripTrailer(withTrailer))
}

func TestExtractFrame_FullPipeline(t *testing.T) {
	frame := s1Frame()
	noisy := append([]byte{0x00}, frame...)
	noisy = append(noisy, CR...)
	extracted, err := ExtractFrame(noisy)
	require.NoError(t, err)
	assert.Equal(t, frame, extracted)
}
