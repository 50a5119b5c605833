package selprotopy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIDBlock_S4ValidChecksum(t *testing.T) {
	prefix := `"FID=SEL-XXX",`
	want := Checksum([]byte(prefix))
	line := prefix + `"` + hex2(want) + `"`
	ident, err := ParseIDBlock([]byte(line))
	require.NoError(t, err)
	require.Equal(t, "SEL-XXX", ident.FID)
}

func TestParseIDBlock_S4BadChecksum(t *testing.T) {
	line := `"FID=SEL-XXX","0123"`
	_, err := ParseIDBlock([]byte(line))
	require.Error(t, err)
	var cf *ChecksumFail
	require.ErrorAs(t, err, &cf)
}

func hex2(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}

func TestParseDNABlock_StripsPreambleAndValidates(t *testing.T) {
	names := []string{"IN1", "IN2", "IN3", "IN4", "IN5", "IN6", "IN7", "IN8"}
	literal := buildQuotedRow(names)
	check := Checksum([]byte(literal))
	row := ""
	for i, n := range names {
		if i > 0 {
			row += ","
		}
		row += n
	}
	row += "," + hex2(check)
	buf := []byte(">DNA\r\n" + row + "\r\n")

	dna, err := ParseDNABlock(buf)
	require.NoError(t, err)
	require.Len(t, dna, 1)
	require.Equal(t, names, []string(dna[0]))
}

func TestParseBNABlock_ProcessesAllRows(t *testing.T) {
	row1 := []string{"OC1", "OC2", "OC3", "OC4", "OC5", "OC6", "OC7", "OC8"}
	row2 := []string{"SV1", "SV2", "SV3", "SV4", "SV5", "SV6", "SV7", "SV8"}

	buildLine := func(names []string) string {
		literal := buildQuotedRow(names)
		check := Checksum([]byte(literal))
		line := ""
		for i, n := range names {
			if i > 0 {
				line += ","
			}
			line += n
		}
		return line + "," + hex2(check)
	}

	buf := []byte(buildLine(row1) + "\r\n" + buildLine(row2) + "\r\n")
	bna, err := ParseBNABlock(buf)
	require.NoError(t, err)
	require.Len(t, bna, 2, "must process every row, not just the first")
	require.Equal(t, row1, []string(bna[0]))
	require.Equal(t, row2, []string(bna[1]))
}

func TestParseDNABlock_DropsRowWithBadChecksumInsteadOfFailing(t *testing.T) {
	good := []string{"IN1", "IN2", "IN3", "IN4", "IN5", "IN6", "IN7", "IN8"}
	literal := buildQuotedRow(good)
	check := Checksum([]byte(literal))
	goodLine := "IN1,IN2,IN3,IN4,IN5,IN6,IN7,IN8," + hex2(check)
	badLine := "BAD1,BAD2,BAD3,BAD4,BAD5,BAD6,BAD7,BAD8,FFFF"

	buf := []byte(">DNA\r\n" + badLine + "\r\n" + goodLine + "\r\n")
	dna, err := ParseDNABlock(buf)
	require.NoError(t, err, "a bad row checksum drops the row, it does not fail the block")
	require.Len(t, dna, 1)
	require.Equal(t, good, []string(dna[0]))
}

func TestCleanPrompt(t *testing.T) {
	require.True(t, CleanPrompt([]byte("=\r\n")))
	require.False(t, CleanPrompt([]byte("=>\r\n")))
}
