package selprotopy

import "time"

const (
	DefaultConnectionCheckAttempts = 5
	DefaultInterCommandDelay       = 25 * time.Millisecond
	DefaultReadTimeout             = 60 * time.Second
)

// NewSessionOptions returns a SessionOptions populated with the package
// defaults: 5 connection-check attempts, a 25ms inter-command delay, a 60s
// read timeout, auto-config on start, and non-verbose logging.
func NewSessionOptions() *SessionOptions {
	return &SessionOptions{
		connectionCheckAttempts: DefaultConnectionCheckAttempts,
		interCommandDelay:       DefaultInterCommandDelay,
		readTimeout:             DefaultReadTimeout,
		autoConfigOnStart:       true,
		verbose:                 false,
		noVerify:                false,
	}
}

// SessionOptions configures a Session's connection-verification behavior,
// timing, and logging. Construct with NewSessionOptions and adjust with the
// fluent SetX methods.
type SessionOptions struct {
	connectionCheckAttempts int
	interCommandDelay       time.Duration
	readTimeout             time.Duration
	autoConfigOnStart       bool
	verbose                 bool
	noVerify                bool
}

// SetConnectionCheckAttempts bounds how many times VerifyConnection retries
// before returning ConnVerificationFail. A value <= 0 is ignored.
func (o *SessionOptions) SetConnectionCheckAttempts(attempts int) *SessionOptions {
	if attempts > 0 {
		o.connectionCheckAttempts = attempts
	}
	return o
}

// SetInterCommandDelay sets the pause observed between retried commands.
func (o *SessionOptions) SetInterCommandDelay(delay time.Duration) *SessionOptions {
	if delay >= 0 {
		o.interCommandDelay = delay
	}
	return o
}

// SetReadTimeout sets the timeout passed to Transport.ReadUntil.
func (o *SessionOptions) SetReadTimeout(timeout time.Duration) *SessionOptions {
	if timeout > 0 {
		o.readTimeout = timeout
	}
	return o
}

// SetAutoConfigOnStart controls whether NewSession runs AutoConfig
// immediately after connection verification.
func (o *SessionOptions) SetAutoConfigOnStart(enabled bool) *SessionOptions {
	o.autoConfigOnStart = enabled
	return o
}

// SetVerbose raises the Session's logger to debug level.
func (o *SessionOptions) SetVerbose(enabled bool) *SessionOptions {
	o.verbose = enabled
	return o
}

// SetNoVerify skips VerifyConnection's prompt check, useful against mock
// transports and relays that don't answer a bare carriage return.
func (o *SessionOptions) SetNoVerify(enabled bool) *SessionOptions {
	o.noVerify = enabled
	return o
}
