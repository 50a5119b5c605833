package selprotopy

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// defaultLogger is the logger every Session uses. SetLogger replaces it
// for Sessions constructed afterwards.
var defaultLogger = logrus.New()

// SetLogger replaces the package-level default logger.
func SetLogger(lg *logrus.Logger) {
	defaultLogger = lg
}

// Binary command headers. Every command is two bytes, 0xA5 followed by a
// message-specific code.
var (
	RelayDefinition   = []byte{0xA5, 0xC0}
	FMConfigBlock     = []byte{0xA5, 0xC1}
	FMDemandConfig    = []byte{0xA5, 0xC2}
	FMPeakConfig      = []byte{0xA5, 0xC3}
	FOConfigBlock     = []byte{0xA5, 0xCE}
	FOConfigBlockAlt  = []byte{0xA5, 0xCF}
	FMOldStdBlock     = []byte{0xA5, 0xDC}
	FMOldExtBlock     = []byte{0xA5, 0xDA}
	FastMeterRegular  = []byte{0xA5, 0xD1}
	FastMeterDemand   = []byte{0xA5, 0xD2}
	FastMeterPeak     = []byte{0xA5, 0xD3}
	FastOpRemoteBit   = []byte{0xA5, 0xE0}
	FastOpBreakerBit  = []byte{0xA5, 0xE3}
	FastOpOpen        = []byte{0xA5, 0xE5}
	FastOpClose       = []byte{0xA5, 0xE6}
	FastOpSet         = []byte{0xA5, 0xE7}
	FastOpClear       = []byte{0xA5, 0xE8}
	FastOpPulse       = []byte{0xA5, 0xE9}
	OldestUnackEvent  = []byte{0xA5, 0xB2}
	AckEvent          = []byte{0xA5, 0xB5}
	ClearStatus       = []byte{0xA5, 0xB9}
	MostRecentEvent   = []byte{0xA5, 0x60}
	FastMsgConfig     = []byte{0xA5, 0x46}
)

// FrameHeader is the leading byte of every binary frame.
const FrameHeader byte = 0xA5

// ASCII commands, terminated by CR.
var (
	CR      = []byte("\r\n")
	CmdID   = append([]byte("ID"), CR...)
	CmdENA  = append([]byte("ENA"), CR...)
	CmdDNA  = append([]byte("DNA"), CR...)
	CmdBNA  = append([]byte("BNA"), CR...)
	CmdQuit = append([]byte("QUI"), CR...)
	CmdACC  = append([]byte("ACC"), CR...)
	Cmd2AC  = append([]byte("2AC"), CR...)
)

// Default relay passwords, overridable per call.
const (
	DefaultPassACC = "OTTER"
	DefaultPass2AC = "TAIL"
)

// Access-level prompt sentinels.
var (
	Level0      = []byte("=")
	Level1      = []byte("=>")
	Level2      = []byte("=>>")
	LevelC      = []byte("==>>")
	Prompt      = append(append([]byte{}, CR...), Level0...)
	PassPrompt  = []byte("Password:")
	invalidText = "Invalid"
)

// AccessLevel identifies one of the relay's four privilege states.
type AccessLevel int

const (
	AccessLevelNone AccessLevel = iota // "="
	AccessLevelACC                     // "=>"
	AccessLevel2AC                     // "=>>"
	AccessLevelCAL                     // "==>>"
)

func (a AccessLevel) String() string {
	switch a {
	case AccessLevelACC:
		return "ACC"
	case AccessLevel2AC:
		return "2AC"
	case AccessLevelCAL:
		return "CAL"
	default:
		return ""
	}
}

// ProtocolFamily enumerates the protocol families a relay may report
// support for in its Relay Definition block.
type ProtocolFamily int

const (
	SELStandard ProtocolFamily = iota
	SELLmd
	Modbus
	SyMax
	RSel
	Dnp3
	R6Sel
)

func (p ProtocolFamily) String() string {
	switch p {
	case SELStandard:
		return "SEL_STANDARD"
	case SELLmd:
		return "SEL_LMD"
	case Modbus:
		return "MODBUS"
	case SyMax:
		return "SY_MAX"
	case RSel:
		return "R_SEL"
	case Dnp3:
		return "DNP3"
	case R6Sel:
		return "R6_SEL"
	default:
		return "UNKNOWN"
	}
}

func serializeBigEndianUint16(i uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, i)
	return b
}

func parseBigEndianInt16(x []byte) int16 {
	return int16(binary.BigEndian.Uint16(x))
}
