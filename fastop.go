package selprotopy

import "fmt"

// PrepareRemoteBitFastOp assembles a 6-byte Fast Operate frame for a remote
// bit, given the control byte FOConfig reports for the requested command.
func PrepareRemoteBitFastOp(control byte) []byte {
	return assembleFastOp(FastOpRemoteBit, control)
}

// PrepareBreakerBitFastOp assembles a 6-byte Fast Operate frame for a
// breaker bit, given the control byte FOConfig reports for the requested
// command.
func PrepareBreakerBitFastOp(control byte) []byte {
	return assembleFastOp(FastOpBreakerBit, control)
}

func assembleFastOp(header []byte, control byte) []byte {
	frame := make([]byte, 0, 6)
	frame = append(frame, header...)
	frame = append(frame, 0x06)
	frame = append(frame, control)
	validation := byte((int(control)*4 + 1) % 256)
	frame = append(frame, validation)
	frame = append(frame, Checksum(frame))
	return frame
}

// remoteBitControl resolves a RemoteBitCommand against one remote bit's
// configured control codes.
func remoteBitControl(ops RemoteBitOps, cmd RemoteBitCommand) (byte, error) {
	switch cmd {
	case RemoteBitClear:
		return ops.Clear, nil
	case RemoteBitSet:
		return ops.Set, nil
	case RemoteBitPulse:
		if ops.Pulse == nil {
			return 0, &InvalidCommandType{Command: string(cmd)}
		}
		return *ops.Pulse, nil
	default:
		return 0, &InvalidCommandType{Command: string(cmd)}
	}
}

// breakerBitControl resolves a BreakerBitCommand against one breaker's
// configured control codes.
func breakerBitControl(ops BreakerBitOps, cmd BreakerBitCommand) (byte, error) {
	switch cmd {
	case BreakerOpen:
		return ops.Open, nil
	case BreakerClose:
		return ops.Close, nil
	default:
		return 0, &InvalidCommandType{Command: string(cmd)}
	}
}

// MaxEventRecord is the largest event index the relay's event-record
// commands accept.
const MaxEventRecord = 64

// EventRecordRequest builds the "0xA5 0x60+n" binary command requesting
// event record n, where n must be in [0, MaxEventRecord].
func EventRecordRequest(n int) ([]byte, error) {
	if n < 0 || n > MaxEventRecord {
		return nil, &InvalidCommandType{Command: fmt.Sprintf("event record %d", n)}
	}
	return []byte{FrameHeader, byte(0x60 + n)}, nil
}
