package selprotopy

import (
	"bytes"
	"strconv"
	"strings"
)

// DnaMap is the ordered set of digital-point-name rows parsed from a DNA
// block, one row per Fast Meter digital bank, eight names per row.
type DnaMap [][]string

// RelayIdent is a relay's identification strings, parsed from an ID block.
type RelayIdent struct {
	FID     string
	BFID    string
	CID     string
	DEVID   string
	DEVCODE string
	PARTNO  string
	CONFIG  string
	SPECIAL string
}

var idKeys = []string{"FID", "BFID", "CID", "DEVID", "DEVCODE", "PARTNO", "CONFIG", "SPECIAL"}

func printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r <= 0x7F {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseRowChecksum splits a trailing `,"HHHH"` hex checksum field off line
// and validates it against Checksum of the preceding literal bytes,
// including the trailing comma.
func parseRowChecksum(line string) (prefix string, err error) {
	idx := strings.LastIndex(line, ",\"")
	if idx == -1 {
		return line, nil
	}
	prefix = line[:idx+1]
	hexPart := strings.Trim(line[idx+2:], "\"")
	want, parseErr := strconv.ParseInt(hexPart, 16, 32)
	if parseErr != nil {
		return prefix, nil
	}
	got := Checksum([]byte(prefix))
	if byte(want) != got {
		return prefix, &ChecksumFail{Expected: byte(want), Found: got}
	}
	return prefix, nil
}

// ParseIDBlock parses an ID command's ASCII reply: one `"KEY=value","HHHH"`
// line per recognized key, each independently checksum-validated.
func ParseIDBlock(buf []byte) (*RelayIdent, error) {
	ident := &RelayIdent{}
	lines := strings.Split(string(buf), "\r\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		prefix, err := parseRowChecksum(line)
		if err != nil {
			return nil, err
		}
		inner := strings.Trim(prefix, "\",")
		parts := strings.SplitN(inner, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		switch key {
		case "FID":
			ident.FID = value
		case "BFID":
			ident.BFID = value
		case "CID":
			ident.CID = value
		case "DEVID":
			ident.DEVID = value
		case "DEVCODE":
			ident.DEVCODE = value
		case "PARTNO":
			ident.PARTNO = value
		case "CONFIG":
			ident.CONFIG = value
		case "SPECIAL":
			ident.SPECIAL = value
		}
	}
	return ident, nil
}

// ParseDNABlock parses a DNA command's ASCII reply into a DnaMap: one row
// of eight point names (plus a validated trailing row checksum) per line.
// A leading ">DNA" preamble line, if present, is stripped.
func ParseDNABlock(buf []byte) (DnaMap, error) {
	return parseNameRowBlock(buf, ">DNA")
}

// ParseBNABlock parses a BNA command's ASCII reply into a DnaMap of bit
// names, processing every row (not just the first).
func ParseBNABlock(buf []byte) (DnaMap, error) {
	return parseNameRowBlock(buf, ">BNA")
}

func parseNameRowBlock(buf []byte, preamble string) (DnaMap, error) {
	text := string(buf)
	text = strings.TrimPrefix(strings.TrimSpace(text), preamble)
	lines := strings.Split(text, "\r\n")
	var rows DnaMap
	for _, line := range lines {
		line = strings.ToUpper(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 9 {
			continue
		}
		names := make([]string, 8)
		for i := 0; i < 8; i++ {
			names[i] = printable(strings.TrimSpace(fields[i]))
		}
		checkLiteral := buildQuotedRow(names)
		hexPart := strings.Trim(fields[8], "\"")
		want, err := strconv.ParseInt(hexPart, 16, 32)
		if err == nil {
			got := Checksum([]byte(checkLiteral))
			if byte(want) != got {
				// A bad row checksum drops the row rather than failing
				// the whole block, matching the source's per-row
				// exception swallow; only the ID block hard-fails.
				continue
			}
		}
		rows = append(rows, names)
	}
	return rows, nil
}

func buildQuotedRow(names []string) string {
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(n)
		b.WriteByte('"')
	}
	b.WriteByte(',')
	return b.String()
}

// CleanPrompt reports whether buf contains the relay's idle level-0 prompt
// pattern "=\r\n", meaning the channel is quiet enough for a new command.
func CleanPrompt(buf []byte) bool {
	return bytes.Contains(buf, append(append([]byte{}, Level0...), CR...))
}
