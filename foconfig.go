package selprotopy

// BreakerBitCommand identifies a Fast Operate command for a breaker bit.
type BreakerBitCommand string

const (
	BreakerOpen  BreakerBitCommand = "open"
	BreakerClose BreakerBitCommand = "close"
)

// RemoteBitCommand identifies a Fast Operate command for a remote bit.
type RemoteBitCommand string

const (
	RemoteBitSet   RemoteBitCommand = "set"
	RemoteBitClear RemoteBitCommand = "clear"
	RemoteBitPulse RemoteBitCommand = "pulse"
)

// BreakerBitOps are the control codes for one breaker's open/close commands.
type BreakerBitOps struct {
	Open  byte
	Close byte
}

// RemoteBitOps are the control codes for one remote bit's clear/set/pulse
// commands. Pulse is only populated when the relay's Fast Operate
// Configuration advertises pulse support.
type RemoteBitOps struct {
	Clear byte
	Set   byte
	Pulse *byte
}

// FOConfig is a Fast Operate Configuration Block ("0xA5 0xCE/0xCF"),
// describing the control codes for every breaker and remote bit the relay
// exposes to Fast Operate.
type FOConfig struct {
	Command        []byte
	Length         int
	NumBreakers    int
	NumRemoteBits  int
	PulseSupported bool
	Breakers       []BreakerBitOps
	RemoteBits     []RemoteBitOps
}

// ParseFOConfig parses a validated "0xA5 0xCE/0xCF" Fast Operate
// Configuration frame.
func ParseFOConfig(buf []byte) (*FOConfig, error) {
	if len(buf) < 8 {
		return nil, &MalformedByteArray{Declared: 8, Got: len(buf)}
	}
	cfg := &FOConfig{
		Command:        append([]byte{}, buf[0:2]...),
		Length:         int(buf[2]),
		NumBreakers:    int(buf[3]),
		NumRemoteBits:  int(parseBigEndianInt16(buf[4:6])),
		PulseSupported: buf[6] == 1,
		// buf[7] is reserved.
	}
	ind := 8
	for i := 0; i < cfg.NumBreakers; i++ {
		if ind+2 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 2, Got: len(buf)}
		}
		cfg.Breakers = append(cfg.Breakers, BreakerBitOps{Open: buf[ind], Close: buf[ind+1]})
		ind += 2
	}
	for i := 0; i < cfg.NumRemoteBits; i++ {
		tupleWidth := 2
		if cfg.PulseSupported {
			tupleWidth = 3
		}
		if ind+tupleWidth > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + tupleWidth, Got: len(buf)}
		}
		ops := RemoteBitOps{Clear: buf[ind], Set: buf[ind+1]}
		if cfg.PulseSupported {
			p := buf[ind+2]
			ops.Pulse = &p
		}
		cfg.RemoteBits = append(cfg.RemoteBits, ops)
		ind += tupleWidth
	}
	return cfg, nil
}
