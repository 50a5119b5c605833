package selprotopy

import "math"

// AnalogValue is a complex analog result: a 2-sample/channel pass produces
// a phasor with both a real and an imaginary component.
type AnalogValue struct {
	Real float64
	Imag float64
}

// Magnitude returns the complex modulus of the value.
func (v AnalogValue) Magnitude() float64 {
	return math.Hypot(v.Real, v.Imag)
}

// Angle returns the phase angle of the value, in radians.
func (v AnalogValue) Angle() float64 {
	return math.Atan2(v.Imag, v.Real)
}

// AnalogSample is a tagged union for one analog channel's decoded value:
// exactly one of Scalar, Phasor, or Series is populated, depending on
// FMConfig.NumSamplesPerChan (1, 2, or >=3 respectively).
type AnalogSample struct {
	Scalar *float64
	Phasor *AnalogValue
	Series []float64
}

// FastMeterSample is a decoded Fast Meter Data block: the relay's status
// flags, one AnalogSample per configured analog channel, and the decoded
// digital point states.
type FastMeterSample struct {
	Command     []byte
	StatusFlags []byte
	Analogs     map[string]AnalogSample
	Digitals    map[string]bool
}

// analogWordSize maps an analog channel's channelType to its on-wire byte
// width. Types 2 and 3 are reserved in the source and are not decoded.
func analogWordSize(channelType byte) int {
	switch channelType {
	case 0:
		return 2
	case 1:
		return 4
	case 2, 8:
		return 8
	default:
		return 8
	}
}

func decodeAnalogWord(buf []byte, channelType byte) (float64, error) {
	switch channelType {
	case 0:
		return float64(parseBigEndianInt16(buf[0:2])), nil
	case 1:
		return DecodeIEEEFloat4(buf[0:4], 7), nil
	default:
		return 0, &ReservedChannelType{ChannelType: channelType}
	}
}

// ParseFMData parses a validated "0xA5 0xD1/0xD2/0xD3" Fast Meter Data
// frame. It is a pure function of buf plus the FMConfig and DnaMap
// previously captured during auto-config: config tells it where the
// analog and digital regions begin and how wide each analog word is;
// dnaMap supplies the point names for the digital banks.
func ParseFMData(buf []byte, config *FMConfig, dnaMap DnaMap) (*FastMeterSample, error) {
	if config.NumDigitalBanks != len(dnaMap) {
		return nil, &DnaDigitalsMismatch{NumDigitalBanks: config.NumDigitalBanks, DnaRows: len(dnaMap)}
	}
	if len(buf) < 3+config.NumStatusFlags {
		return nil, &MalformedByteArray{Declared: 3 + config.NumStatusFlags, Got: len(buf)}
	}
	sample := &FastMeterSample{
		Command:     append([]byte{}, buf[0:2]...),
		StatusFlags: append([]byte{}, buf[3:3+config.NumStatusFlags]...),
		Analogs:     make(map[string]AnalogSample, len(config.AnalogChannels)),
		Digitals:    make(map[string]bool),
	}

	passes := config.NumSamplesPerChan
	series := make(map[string][]float64, len(config.AnalogChannels))
	ind := config.AnalogChanOffset
	for pass := 0; pass < passes; pass++ {
		for _, ch := range config.AnalogChannels {
			if ch.FactorType != 255 {
				return nil, &UnsupportedScaleFactor{FactorType: ch.FactorType}
			}
			width := analogWordSize(ch.ChannelType)
			if ind+width > len(buf) {
				return nil, &MalformedByteArray{Declared: ind + width, Got: len(buf)}
			}
			value, err := decodeAnalogWord(buf[ind:ind+width], ch.ChannelType)
			if err != nil {
				return nil, err
			}
			series[ch.Name] = append(series[ch.Name], value)
			ind += width
		}
	}

	for _, ch := range config.AnalogChannels {
		values := series[ch.Name]
		switch {
		case passes == 1:
			v := values[0]
			sample.Analogs[ch.Name] = AnalogSample{Scalar: &v}
		case passes == 2:
			imag := values[0]
			if math.Abs(imag) <= 1e-8 {
				imag = 0
			}
			real := values[1]
			sample.Analogs[ch.Name] = AnalogSample{Phasor: &AnalogValue{Real: real, Imag: imag}}
		default:
			sample.Analogs[ch.Name] = AnalogSample{Series: values}
		}
	}

	digInd := config.DigitalOffset
	for bank := 0; bank < config.NumDigitalBanks; bank++ {
		if digInd >= len(buf) {
			return nil, &MalformedByteArray{Declared: digInd + 1, Got: len(buf)}
		}
		bits := IntToBoolVec(int(buf[digInd]), true, false)
		names := dnaMap[bank]
		for i := 0; i < len(names) && i < len(bits); i++ {
			if names[i] == "*" {
				continue
			}
			sample.Digitals[names[i]] = bits[i]
		}
		digInd++
	}

	return sample, nil
}
