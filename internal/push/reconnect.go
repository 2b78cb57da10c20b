package push

import "time"

// ReconnectPolicy decides how long to wait before reconnecting.
// attempt starts at 1 after each drop and resets once a connection is established.
// serverRetry is the last "retry" value sent by the server, zero if none.
type ReconnectPolicy interface {
	Delay(attempt int, serverRetry time.Duration) time.Duration
}

// PolicyFunc adapts a function to ReconnectPolicy
type PolicyFunc func(attempt int, serverRetry time.Duration) time.Duration

func (f PolicyFunc) Delay(attempt int, serverRetry time.Duration) time.Duration {
	return f(attempt, serverRetry)
}

// FixedPolicy waits the server-provided retry time, or Interval if the server sent none.
// This is how EventSource transports reconnect.
type FixedPolicy struct {
	Interval time.Duration
}

func (p FixedPolicy) Delay(_ int, serverRetry time.Duration) time.Duration {
	if serverRetry > 0 {
		return serverRetry
	}
	return p.Interval
}
