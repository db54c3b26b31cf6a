package termio

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/sys/unix"

	"github.com/phyten/lumen/internal/colorutil"
)

// oscQuery asks the terminal for its default background color (OSC 11,
// BEL-terminated).
const oscQuery = "\x1b]11;?\x07"

// DefaultTimeout bounds the wait for a reply.
const DefaultTimeout = 2 * time.Second

// maxReplyLen caps the accumulated reply. Real OSC 11 responses are a few
// dozen bytes; the cap bounds a terminal that streams unrelated input.
const maxReplyLen = 1024

// oscReplyRe extracts the color payload from the reply envelope
// (ESC ] 11 ; <payload> BEL|ST). Some terminals pad after the bracket.
var oscReplyRe = regexp.MustCompile(`\]\s*11;([^\x07\x1b]*)`)

// SendQuery writes the OSC 11 background color query to the terminal.
func (s *Session) SendQuery() error {
	if _, err := unix.Write(s.fd, []byte(oscQuery)); err != nil {
		return fmt.Errorf("write OSC 11 query: %w", err)
	}
	return nil
}

// ReceiveReply accumulates reply bytes until a BEL or ST terminator
// arrives, failing with ErrTimeout when the deadline elapses first.
func (s *Session) ReceiveReply(deadline time.Duration) ([]byte, error) {
	return receiveReply(s.fd, deadline)
}

// receiveReply blocks in poll with the remaining deadline as the poll
// timeout, so waiting on an unresponsive terminal costs no CPU. The
// descriptor is non-blocking for the duration of the exchange and
// switched back before returning.
func receiveReply(fd int, deadline time.Duration) ([]byte, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("set non-blocking: %w", err)
	}
	defer unix.SetNonblock(fd, false)

	var buf []byte
	start := time.Now()
	for {
		remaining := deadline - time.Since(start)
		if remaining <= 0 {
			return nil, ErrTimeout
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining.Milliseconds())+1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("poll terminal: %w", err)
		}
		if n == 0 {
			return nil, ErrTimeout
		}
		chunk := make([]byte, 64)
		rn, err := unix.Read(fd, chunk)
		if err == unix.EAGAIN {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read terminal reply: %w", err)
		}
		if rn == 0 {
			// EOF before any terminator; hand back what arrived.
			return buf, nil
		}
		buf = append(buf, chunk[:rn]...)
		if hasTerminator(buf) || len(buf) >= maxReplyLen {
			return buf, nil
		}
	}
}

// hasTerminator reports whether buf contains a BEL or an ST (ESC \).
func hasTerminator(buf []byte) bool {
	return bytes.IndexByte(buf, 0x07) >= 0 || bytes.Contains(buf, []byte("\x1b\\"))
}

// ExtractColor pulls the color payload out of an OSC 11 reply envelope.
// A reply with no recognizable payload is a parse failure, not a device
// failure.
func ExtractColor(reply []byte) (string, error) {
	m := oscReplyRe.FindSubmatch(reply)
	if m == nil {
		return "", fmt.Errorf("%w: no OSC 11 payload in reply %q", colorutil.ErrParse, reply)
	}
	return string(m[1]), nil
}
