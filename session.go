package selprotopy

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Session wraps a Transport with the relay's access-level state machine and
// the auto-config records (RelayDefinition, per-message FMConfig, FOConfig,
// DnaMap, RelayIdent) needed to poll Fast Meter data and issue Fast Operate
// commands. One Session owns one Transport; see the concurrency notes in
// DESIGN.md before sharing a Session across goroutines.
type Session struct {
	transport Transport
	options   *SessionOptions
	log       *logrus.Logger

	level AccessLevel

	Definition *RelayDefinition
	FOConfig   *FOConfig
	DnaMap     DnaMap
	Ident      *RelayIdent

	fmConfigs map[string]*FMConfig // keyed by hex command, e.g. "A5D1"
}

// NewSession constructs a Session around transport, verifies the
// connection, and — unless options.SetAutoConfigOnStart(false) was used —
// runs AutoConfig before returning.
func NewSession(transport Transport, options *SessionOptions) (*Session, error) {
	if options == nil {
		options = NewSessionOptions()
	}
	log := defaultLogger
	if options.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	s := &Session{
		transport: transport,
		options:   options,
		log:       log,
		fmConfigs: make(map[string]*FMConfig),
	}
	if !options.noVerify {
		if err := s.VerifyConnection(); err != nil {
			return nil, err
		}
	}
	if options.autoConfigOnStart {
		if err := s.AutoConfig(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func commandKey(cmd []byte) string {
	const hexDigits = "0123456789ABCDEF"
	out := make([]byte, 0, len(cmd)*2)
	for _, b := range cmd {
		out = append(out, hexDigits[b>>4], hexDigits[b&0x0F])
	}
	return string(out)
}

// VerifyConnection writes three bare line terminators and reads until it
// observes the level-0 prompt sentinel, retrying up to
// options.connectionCheckAttempts times.
func (s *Session) VerifyConnection() error {
	attempts := s.options.connectionCheckAttempts
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := s.transport.Write(CR); err != nil {
			return err
		}
		if err := s.transport.Write(CR); err != nil {
			return err
		}
		if err := s.transport.Write(CR); err != nil {
			return err
		}
		buf, err := s.transport.ReadUntil(CR, s.options.readTimeout)
		if err == nil && CleanPrompt(append(buf, CR...)) {
			return nil
		}
		if err == nil && containsLevel0(buf) {
			return nil
		}
		time.Sleep(s.options.interCommandDelay)
	}
	return &ConnVerificationFail{Attempts: attempts}
}

func containsLevel0(buf []byte) bool {
	for i := 0; i+len(Level0) <= len(buf); i++ {
		if string(buf[i:i+len(Level0)]) == string(Level0) {
			return true
		}
	}
	return false
}

// AwaitCleanPrompt sends a lone line terminator and accumulates the
// response until three consecutive clean-prompt matches are seen, then
// drains any remaining buffered bytes. It is the precondition every
// command that expects a fresh, bounded reply relies on.
func (s *Session) AwaitCleanPrompt() error {
	consecutive := 0
	for consecutive < 3 {
		if err := s.transport.Write(CR); err != nil {
			return err
		}
		buf, err := s.transport.ReadUntil(CR, s.options.readTimeout)
		if err != nil {
			return err
		}
		if CleanPrompt(buf) {
			consecutive++
		} else {
			consecutive = 0
		}
	}
	_, err := s.transport.ReadEager()
	return err
}

// AccessLevel returns the Session's last-known access level.
func (s *Session) AccessLevel() AccessLevel {
	return s.level
}

// Quit issues "QUI\r\n" and reads until the level-0 prompt returns.
func (s *Session) Quit() error {
	if err := s.transport.Write(CmdQuit); err != nil {
		return err
	}
	_, err := s.transport.ReadUntil(Level0, s.options.readTimeout)
	s.level = AccessLevelNone
	return err
}

// AccessLevel1 issues "ACC\r\n", waits for the "Password:" prompt whatever
// the current level, and supplies password. Success is indicated by a
// prompt that does not contain "Invalid"; a reply containing "Invalid" is
// returned as InvalidCommand, and a failed read while waiting for either
// prompt is returned as ConnVerificationFail.
func (s *Session) AccessLevel1(password string) error {
	if password == "" {
		password = DefaultPassACC
	}
	if err := s.transport.Write(CmdACC); err != nil {
		return err
	}
	buf, err := s.transport.ReadUntil(PassPrompt, s.options.readTimeout)
	if err != nil {
		return &ConnVerificationFail{Attempts: 1}
	}
	if containsInvalid(buf) {
		return &InvalidCommand{Response: string(buf)}
	}
	time.Sleep(s.options.interCommandDelay)
	if err := s.transport.Write(append([]byte(password), CR...)); err != nil {
		return err
	}
	resp, err := s.transport.ReadUntil(Level1, s.options.readTimeout)
	if err != nil {
		return &ConnVerificationFail{Attempts: 1}
	}
	if containsInvalid(resp) {
		return &InvalidCommand{Response: string(resp)}
	}
	s.level = AccessLevelACC
	return nil
}

// AccessLevel2 issues "2AC\r\n", first ascending through AccessLevel1 if
// starting from L0.
func (s *Session) AccessLevel2(passACC, pass2AC string) error {
	if s.level == AccessLevelNone {
		if err := s.AccessLevel1(passACC); err != nil {
			return err
		}
	}
	if pass2AC == "" {
		pass2AC = DefaultPass2AC
	}
	if err := s.transport.Write(Cmd2AC); err != nil {
		return err
	}
	buf, err := s.transport.ReadUntil(PassPrompt, s.options.readTimeout)
	if err != nil {
		return &ConnVerificationFail{Attempts: 1}
	}
	if containsInvalid(buf) {
		return &InvalidCommand{Response: string(buf)}
	}
	time.Sleep(s.options.interCommandDelay)
	if err := s.transport.Write(append([]byte(pass2AC), CR...)); err != nil {
		return err
	}
	resp, err := s.transport.ReadUntil(Level2, s.options.readTimeout)
	if err != nil {
		return &ConnVerificationFail{Attempts: 1}
	}
	if containsInvalid(resp) {
		return &InvalidCommand{Response: string(resp)}
	}
	s.level = AccessLevel2AC
	return nil
}

func containsInvalid(buf []byte) bool {
	return indexOfSubstring(string(buf), invalidText) != -1
}

func indexOfSubstring(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

// requestFrame issues cmd, reads until a frame bearing the same command
// bytes arrives, and returns the extracted frame.
func (s *Session) requestFrame(cmd []byte) ([]byte, error) {
	if err := s.transport.Write(cmd); err != nil {
		return nil, err
	}
	buf, err := s.transport.ReadUntil(CR, s.options.readTimeout)
	if err != nil {
		return nil, err
	}
	return ExtractFrame(buf)
}

// AutoConfig runs the full discovery sequence: quit, request the Relay
// Definition, request and parse each supported Fast Meter configuration,
// request the Fast Operate configuration if advertised, escalate to L1,
// then capture the DNA and ID blocks. An advertised Fast Message
// configuration command is kept on Definition and is not requested. Each
// request-and-parse step is retried per the Session's options.
func (s *Session) AutoConfig() error {
	attempts := s.options.connectionCheckAttempts
	delay := s.options.interCommandDelay

	if err := s.Quit(); err != nil {
		s.log.WithError(err).Debug("quit before auto-config failed; continuing")
	}

	if err := withRetry("relay definition", attempts, delay, func() error {
		frame, err := s.requestFrame(RelayDefinition)
		if err != nil {
			return err
		}
		def, err := ParseRelayDefinition(frame)
		if err != nil {
			return err
		}
		s.Definition = def
		return nil
	}); err != nil {
		return err
	}

	for _, pair := range s.Definition.FMCommandInfo {
		pair := pair
		if err := withRetry("fast meter configuration", attempts, delay, func() error {
			frame, err := s.requestFrame(pair.ConfigCommand)
			if err != nil {
				return err
			}
			cfg, err := ParseFMConfig(frame)
			if err != nil {
				return err
			}
			s.fmConfigs[commandKey(pair.Command)] = cfg
			return nil
		}); err != nil {
			return err
		}
	}

	if s.Definition.FastOperateConfigCommand != nil {
		if err := withRetry("fast operate configuration", attempts, delay, func() error {
			frame, err := s.requestFrame(s.Definition.FastOperateConfigCommand)
			if err != nil {
				return err
			}
			cfg, err := ParseFOConfig(frame)
			if err != nil {
				return err
			}
			s.FOConfig = cfg
			return nil
		}); err != nil {
			return err
		}
	}

	if s.level == AccessLevelNone {
		if err := s.AccessLevel1(""); err != nil {
			return err
		}
	}

	if err := withRetry("dna block", attempts, delay, func() error {
		if err := s.transport.Write(CmdDNA); err != nil {
			return err
		}
		buf, err := s.transport.ReadUntil(Level1, s.options.readTimeout)
		if err != nil {
			return err
		}
		dna, err := ParseDNABlock(buf)
		if err != nil {
			return err
		}
		s.DnaMap = dna
		return nil
	}); err != nil {
		return err
	}

	if err := withRetry("id block", attempts, delay, func() error {
		if err := s.transport.Write(CmdID); err != nil {
			return err
		}
		buf, err := s.transport.ReadUntil(Level1, s.options.readTimeout)
		if err != nil {
			return err
		}
		ident, err := ParseIDBlock(buf)
		if err != nil {
			return err
		}
		s.Ident = ident
		return nil
	}); err != nil {
		return err
	}

	return nil
}

// maxPollIterations bounds the read-for-command loop so a misbehaving
// relay that never echoes the expected command cannot hang PollFastMeter
// forever.
const maxPollIterations = 10

// PollFastMeter requires that the regular Fast Meter configuration has
// already been captured by AutoConfig. It cleans the prompt, emits the
// regular Fast Meter command, and reads until a response frame bearing the
// same command bytes arrives.
func (s *Session) PollFastMeter() (*FastMeterSample, error) {
	cfg, ok := s.fmConfigs[commandKey(FastMeterRegular)]
	if !ok {
		return nil, &AutoConfigurationFailure{Step: "poll fast meter", Err: &MissingHeader{}}
	}
	if err := s.AwaitCleanPrompt(); err != nil {
		return nil, err
	}
	if err := s.transport.Write(FastMeterRegular); err != nil {
		return nil, err
	}
	var lastLen int
	for i := 0; i < maxPollIterations; i++ {
		buf, err := s.transport.ReadUntil(CR, s.options.readTimeout)
		if err != nil {
			return nil, err
		}
		if len(buf) == lastLen {
			break
		}
		lastLen = len(buf)
		frame, err := ExtractFrame(buf)
		if err != nil {
			continue
		}
		if len(frame) >= 2 && frame[0] == FastMeterRegular[0] && frame[1] == FastMeterRegular[1] {
			return ParseFMData(frame, cfg, s.DnaMap)
		}
	}
	return nil, &AutoConfigurationFailure{Step: "poll fast meter", Err: &MissingHeader{}}
}

// SendRemoteBitFastOp assembles and emits a Fast Operate command for the
// remote bit at index bitIndex (0-based, into FOConfig.RemoteBits). No
// structured reply is expected.
func (s *Session) SendRemoteBitFastOp(bitIndex int, cmd RemoteBitCommand) error {
	if s.FOConfig == nil || bitIndex < 0 || bitIndex >= len(s.FOConfig.RemoteBits) {
		return &InvalidControlType{ControlType: "remote_bit"}
	}
	control, err := remoteBitControl(s.FOConfig.RemoteBits[bitIndex], cmd)
	if err != nil {
		return err
	}
	return s.transport.Write(PrepareRemoteBitFastOp(control))
}

// SendBreakerBitFastOp assembles and emits a Fast Operate command for the
// breaker at index breakerIndex (0-based, into FOConfig.Breakers). No
// structured reply is expected.
func (s *Session) SendBreakerBitFastOp(breakerIndex int, cmd BreakerBitCommand) error {
	if s.FOConfig == nil || breakerIndex < 0 || breakerIndex >= len(s.FOConfig.Breakers) {
		return &InvalidControlType{ControlType: "breaker_bit"}
	}
	control, err := breakerBitControl(s.FOConfig.Breakers[breakerIndex], cmd)
	if err != nil {
		return err
	}
	return s.transport.Write(PrepareBreakerBitFastOp(control))
}
