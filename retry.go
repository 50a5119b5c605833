package selprotopy

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
)

// withRetry wraps step as a higher-order retry policy around one
// auto-config operation: attempts == 0 means retry forever; attempts > 0
// bounds the number of tries. delay sets the fixed pause between attempts,
// mirroring the source's inter-command delay rather than exponential
// backoff (the relay's prompt either answers promptly or it doesn't).
func withRetry(step string, attempts int, delay time.Duration, fn func() error) error {
	b := backoff.NewConstantBackOff(delay)
	var policy backoff.BackOff = b
	if attempts > 0 {
		policy = backoff.WithMaxRetries(b, uint64(attempts-1))
	}
	var lastErr error
	op := func() error {
		err := fn()
		lastErr = err
		if err == nil {
			return nil
		}
		// Only a truncated/short read is worth retrying; every other
		// error class (checksum, protocol, mismatch) is permanent, per
		// the source's `__retry__` decorator, which only ever catches
		// MalformedByteArray.
		var malformed *MalformedByteArray
		if !errors.As(err, &malformed) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, policy); err != nil {
		// Only a MalformedByteArray exhausting the attempt budget becomes
		// AutoConfigurationFailure; every other error class is surfaced
		// immediately, undecorated.
		var malformed *MalformedByteArray
		if errors.As(err, &malformed) {
			return &AutoConfigurationFailure{Step: step, Err: err}
		}
		return lastErr
	}
	return nil
}
