package selprotopy

// AnalogChannel describes one analog input channel as defined by a Fast
// Meter Configuration Block.
type AnalogChannel struct {
	Name        string
	ChannelType byte
	FactorType  byte
	ScaleOffset int16
}

// CalcBlock describes one calculation block as defined by a Fast Meter
// Configuration Block: rotation, voltage/current connection, computation
// type, and the analog-channel indices it references.
type CalcBlock struct {
	Line           byte
	Rotation       string // "ABC" or "ACB"
	Voltage        string // "Y", "AB-BC-CA", or "AC-BA-CB"
	Current        string // "Y", "AB-BC-CA", or "AC-BA-CB"
	Type           byte
	TypeDesc       string
	SkewOffset     []byte
	RsOffset       []byte
	XsOffset       []byte
	IAIndex        byte
	IBIndex        byte
	ICIndex        byte
	VAIndex        byte
	VBIndex        byte
	VCIndex        byte
}

var calcTypeDescriptions = map[byte]string{
	0: "standard-power",
	1: "2-1/2 element delta power",
	2: "voltages only",
	3: "currents only",
	4: "single-phase IA and VA only",
	5: "standard-power with two sets of currents",
	6: "2-1/2 element delta power with two sets of currents",
}

// FMConfig is a Fast Meter Configuration Block, describing how to decode a
// corresponding Fast Meter Data Block (one of regular, demand, or
// peak-demand, as identified by Command).
type FMConfig struct {
	Command            []byte
	Length             int
	NumStatusFlags     int
	ScaleFactorLoc     byte
	NumScaleFactors    int
	NumAnalogIns       int
	NumSamplesPerChan  int
	NumDigitalBanks    int
	NumCalcBlocks      int
	AnalogChanOffset   int
	TimestampOffset    int
	DigitalOffset      int
	AnalogChannels     []AnalogChannel
	CalcBlocks         []CalcBlock
}

// ParseFMConfig parses a validated "0xA5 0xC1/0xC2/0xC3" Fast Meter
// Configuration frame.
func ParseFMConfig(buf []byte) (*FMConfig, error) {
	if len(buf) < 16 {
		return nil, &MalformedByteArray{Declared: 16, Got: len(buf)}
	}
	cfg := &FMConfig{
		Command:           append([]byte{}, buf[0:2]...),
		Length:            int(buf[2]),
		NumStatusFlags:    int(buf[3]),
		ScaleFactorLoc:    buf[4],
		NumScaleFactors:   int(buf[5]),
		NumAnalogIns:      int(buf[6]),
		NumSamplesPerChan: int(buf[7]),
		NumDigitalBanks:   int(buf[8]),
		NumCalcBlocks:     int(buf[9]),
		AnalogChanOffset:  int(parseBigEndianInt16(buf[10:12])),
		TimestampOffset:   int(parseBigEndianInt16(buf[12:14])),
		DigitalOffset:     int(parseBigEndianInt16(buf[14:16])),
	}
	ind := 16
	for i := 0; i < cfg.NumAnalogIns; i++ {
		if ind+10 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 10, Got: len(buf)}
		}
		name := ""
		for _, b := range buf[ind : ind+6] {
			if b != 0 {
				name += string(rune(b))
			}
		}
		ind += 6
		channel := AnalogChannel{
			Name:        name,
			ChannelType: buf[ind],
			FactorType:  buf[ind+1],
			ScaleOffset: parseBigEndianInt16(buf[ind+2 : ind+4]),
		}
		ind += 4
		cfg.AnalogChannels = append(cfg.AnalogChannels, channel)
	}
	for i := 0; i < cfg.NumCalcBlocks; i++ {
		if ind+14 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 14, Got: len(buf)}
		}
		lineByte := buf[ind]
		bits := IntToBoolVec(int(lineByte), true, false)
		rot, vConDP, vConDN, iConDP, iConDN := bits[0], bits[1], bits[2], bits[3], bits[4]
		block := CalcBlock{Line: lineByte}
		if rot {
			block.Rotation = "ACB"
		} else {
			block.Rotation = "ABC"
		}
		switch {
		case vConDN:
			block.Voltage = "AC-BA-CB"
		case vConDP:
			block.Voltage = "AB-BC-CA"
		default:
			block.Voltage = "Y"
		}
		switch {
		case iConDN:
			block.Current = "AC-BA-CB"
		case iConDP:
			block.Current = "AB-BC-CA"
		default:
			block.Current = "Y"
		}
		ind++
		block.Type = buf[ind]
		if desc, ok := calcTypeDescriptions[block.Type]; ok {
			block.TypeDesc = desc
		} else {
			block.TypeDesc = calcTypeDescriptions[6]
		}
		ind++
		block.SkewOffset = append([]byte{}, buf[ind:ind+2]...)
		block.RsOffset = append([]byte{}, buf[ind+2:ind+4]...)
		block.XsOffset = append([]byte{}, buf[ind+4:ind+6]...)
		ind += 6
		block.IAIndex = buf[ind+0]
		block.IBIndex = buf[ind+1]
		block.ICIndex = buf[ind+2]
		block.VAIndex = buf[ind+3]
		block.VBIndex = buf[ind+4]
		block.VCIndex = buf[ind+5]
		ind += 6
		cfg.CalcBlocks = append(cfg.CalcBlocks, block)
	}
	return cfg, nil
}
