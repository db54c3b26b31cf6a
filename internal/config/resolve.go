package config

import "fmt"

const (
	defaultTimeoutMS = 2000
	defaultTTY       = "/dev/tty"
	minTimeoutMS     = 1
	maxTimeoutMS     = 60000
)

// Merge overlays b onto a; fields set in b win.
func Merge(a, b Config) Config {
	out := a
	if b.TimeoutMS != nil {
		out.TimeoutMS = b.TimeoutMS
	}
	if b.TTY != nil {
		out.TTY = b.TTY
	}
	if b.Debug != nil {
		out.Debug = b.Debug
	}
	return out
}

// Resolve applies defaults and validates ranges. The 2 s reply deadline is
// the reference behavior; it can be tuned per process but stays fixed for
// the duration of one invocation.
func (c Config) Resolve() (Settings, error) {
	s := Settings{TimeoutMS: defaultTimeoutMS, TTY: defaultTTY}
	if c.TimeoutMS != nil {
		s.TimeoutMS = *c.TimeoutMS
	}
	if c.TTY != nil && *c.TTY != "" {
		s.TTY = *c.TTY
	}
	if c.Debug != nil {
		s.Debug = *c.Debug
	}
	if s.TimeoutMS < minTimeoutMS || s.TimeoutMS > maxTimeoutMS {
		return Settings{}, fmt.Errorf("timeout_ms must be in [%d, %d], got %d", minTimeoutMS, maxTimeoutMS, s.TimeoutMS)
	}
	return s, nil
}
