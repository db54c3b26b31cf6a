// Package detect orchestrates the background detection pipeline:
// interrogate the terminal, parse the reply payload, classify the
// luminance. One attempt per invocation; no retries.
package detect

import (
	"time"

	"github.com/phyten/lumen/internal/colorutil"
	"github.com/phyten/lumen/internal/termcolor"
	"github.com/phyten/lumen/internal/termio"
	"github.com/phyten/lumen/internal/util"
)

// Options configure a single detection attempt.
type Options struct {
	// Timeout bounds the wait for the terminal's reply. Zero means
	// termio.DefaultTimeout.
	Timeout time.Duration
	// TTYPath is the terminal device to interrogate. Empty means the
	// controlling terminal.
	TTYPath string
}

// Querier performs one background color exchange and returns the color
// payload from the terminal's reply.
type Querier interface {
	QueryBackground(timeout time.Duration) (string, error)
}

// RestoreError wraps a failure to put the terminal back into its original
// mode. It is fatal in a way detection failures are not: the user's
// terminal is left in raw mode, so it must never collapse into an
// "unknown" classification.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string { return e.Err.Error() }
func (e *RestoreError) Unwrap() error { return e.Err }

// Run performs one detection attempt against a real terminal session.
// Every failure kind maps to SchemeUnknown; the returned error carries the
// reason for diagnostics only, except a RestoreError, which callers must
// treat as fatal.
func Run(opts Options) (termcolor.Scheme, error) {
	q, err := openSession(opts.TTYPath)
	if err != nil {
		return termcolor.SchemeUnknown, err
	}
	defer q.close()
	return run(q, opts.Timeout)
}

func run(q Querier, timeout time.Duration) (termcolor.Scheme, error) {
	if timeout <= 0 {
		timeout = termio.DefaultTimeout
	}

	payload, err := q.QueryBackground(timeout)
	if err != nil {
		return termcolor.SchemeUnknown, err
	}
	util.Debugf("reply=%q", payload)

	rgb, err := colorutil.ParseColor(payload)
	if err != nil {
		return termcolor.SchemeUnknown, err
	}
	util.Debugf("rgb=%v", rgb)

	lum := colorutil.Luminance(rgb)
	util.Debugf("lum=%v", lum)

	return termcolor.ClassifyLuminance(lum), nil
}

// sessionQuerier runs the exchange over a real termio.Session, pairing
// EnterRaw with an unconditional Restore.
type sessionQuerier struct {
	sess *termio.Session
}

func openSession(path string) (*sessionQuerier, error) {
	var (
		sess *termio.Session
		err  error
	)
	if path == "" || path == termio.DefaultPath {
		sess, err = termio.Open()
	} else {
		sess, err = termio.OpenPath(path)
	}
	if err != nil {
		return nil, err
	}
	return &sessionQuerier{sess: sess}, nil
}

func (q *sessionQuerier) QueryBackground(timeout time.Duration) (string, error) {
	if err := q.sess.EnterRaw(); err != nil {
		return "", err
	}
	payload, err := q.exchange(timeout)
	if rerr := q.sess.Restore(); rerr != nil {
		return "", &RestoreError{Err: rerr}
	}
	return payload, err
}

func (q *sessionQuerier) exchange(timeout time.Duration) (string, error) {
	if err := q.sess.SendQuery(); err != nil {
		return "", err
	}
	reply, err := q.sess.ReceiveReply(timeout)
	if err != nil {
		return "", err
	}
	util.Debugf("raw=%q", reply)
	return termio.ExtractColor(reply)
}

func (q *sessionQuerier) close() {
	q.sess.Close()
}
