package selprotopy

// FMCommandPair names the (config, data) command pair for one of the
// relay's supported Fast Meter messages (regular, demand, peak-demand).
type FMCommandPair struct {
	ConfigCommand []byte
	Command       []byte
}

// StatusFlagInfo names the command affected by a given status bit.
type StatusFlagInfo struct {
	StatusBit       []byte
	AffectedCommand []byte
}

// ProtocolInfo describes one protocol family a relay reports support for.
type ProtocolInfo struct {
	Family             ProtocolFamily
	FastOperateEnabled bool
	FastMessageEnabled bool
}

// RelayDefinition is the relay's top-level binary capability descriptor,
// the "0xA5 0xC0" Relay Definition reply.
type RelayDefinition struct {
	Command               []byte
	Length                int
	NumProtocolsSupported  int
	FMMessagesSupported    int
	StatusFlagsSupported   int
	FMCommandInfo          []FMCommandPair
	FMType                 byte
	StatusFlagInfo         []StatusFlagInfo
	Protocols              []ProtocolInfo

	// Derived from Protocols: the command to request Fast Operate /
	// Fast Message configuration, or nil if no reporting protocol family
	// advertises that capability.
	FastOperateConfigCommand []byte
	FastMessageConfigCommand []byte
}

// ParseRelayDefinition parses a validated "0xA5 0xC0" Relay Definition
// frame. buf must already have passed ExtractFrame/ValidateFrame.
func ParseRelayDefinition(buf []byte) (*RelayDefinition, error) {
	if len(buf) < 6 {
		return nil, &MalformedByteArray{Declared: 6, Got: len(buf)}
	}
	def := &RelayDefinition{
		Command:              append([]byte{}, buf[0:2]...),
		Length:               int(buf[2]),
		NumProtocolsSupported: int(buf[3]),
		FMMessagesSupported:   int(buf[4]),
		StatusFlagsSupported:  int(buf[5]),
	}
	ind := 6
	for i := 0; i < def.FMMessagesSupported; i++ {
		if ind+4 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 4, Got: len(buf)}
		}
		def.FMCommandInfo = append(def.FMCommandInfo, FMCommandPair{
			ConfigCommand: append([]byte{}, buf[ind:ind+2]...),
			Command:       append([]byte{}, buf[ind+2:ind+4]...),
		})
		ind += 4
	}
	if ind >= len(buf) {
		return nil, &MalformedByteArray{Declared: ind + 1, Got: len(buf)}
	}
	def.FMType = buf[ind]
	ind++
	for i := 0; i < def.StatusFlagsSupported; i++ {
		if ind+8 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 8, Got: len(buf)}
		}
		def.StatusFlagInfo = append(def.StatusFlagInfo, StatusFlagInfo{
			StatusBit:       append([]byte{}, buf[ind:ind+2]...),
			AffectedCommand: append([]byte{}, buf[ind+2:ind+8]...),
		})
		ind += 8
	}
	for i := 0; i < def.NumProtocolsSupported; i++ {
		if ind+2 > len(buf) {
			return nil, &MalformedByteArray{Declared: ind + 2, Got: len(buf)}
		}
		capability := IntToBoolVec(int(buf[ind]), false, false)
		for len(capability) < 2 {
			capability = append(capability, false)
		}
		family := ProtocolFamily(buf[ind+1])
		info := ProtocolInfo{Family: family}
		switch family {
		case SELStandard, SELLmd:
			info.FastOperateEnabled = capability[0]
			info.FastMessageEnabled = capability[1]
			if info.FastOperateEnabled {
				def.FastOperateConfigCommand = FOConfigBlock
			}
			if info.FastMessageEnabled {
				def.FastMessageConfigCommand = FastMsgConfig
			}
		}
		def.Protocols = append(def.Protocols, info)
		ind += 2
	}
	return def, nil
}
