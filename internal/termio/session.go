// Package termio opens the controlling terminal device and performs the
// OSC 11 background color exchange over it.
package termio

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultPath is the controlling terminal device on POSIX systems.
const DefaultPath = "/dev/tty"

var (
	// ErrNoTerminal reports that the process has no controlling terminal
	// to interrogate (output redirected, no tty attached).
	ErrNoTerminal = errors.New("no controlling terminal")

	// ErrTimeout reports that no terminated reply arrived within the
	// deadline.
	ErrTimeout = errors.New("timed out waiting for terminal reply")
)

// Session owns the terminal device descriptor and the saved line
// discipline for one invocation. After EnterRaw succeeds, Restore must run
// on every exit path; the session also restores on SIGINT/SIGTERM while
// raw mode is active.
type Session struct {
	fd      int
	saved   *unix.Termios
	sigs    chan os.Signal
	sigDone chan struct{}
}

// Open opens the controlling terminal. It fails with ErrNoTerminal when
// stdout is not attached to a terminal.
func Open() (*Session, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNoTerminal
	}
	return OpenPath(DefaultPath)
}

// OpenPath opens the given terminal device read/write without adopting it
// as the controlling terminal.
func OpenPath(path string) (*Session, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrNoTerminal, path, err)
	}
	return &Session{fd: fd}, nil
}

// EnterRaw saves the current terminal attributes and clears canonical
// input and local echo, so the reply arrives byte-by-byte and is not
// echoed back at the user. The rest of the line discipline is left alone.
func (s *Session) EnterRaw() error {
	if s.saved != nil {
		return errors.New("raw mode already entered")
	}
	old, err := tcgetattr(s.fd)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}
	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := tcsetattr(s.fd, &raw); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	s.saved = old

	s.sigs = make(chan os.Signal, 1)
	s.sigDone = make(chan struct{})
	signal.Notify(s.sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-s.sigs:
			// The process is about to die; put the terminal back first.
			_ = tcsetattr(s.fd, s.saved)
			if n, ok := sig.(syscall.Signal); ok {
				os.Exit(128 + int(n))
			}
			os.Exit(1)
		case <-s.sigDone:
		}
	}()
	return nil
}

// Restore reapplies the attributes captured by EnterRaw. A restore failure
// leaves the user's terminal unusable, so it is surfaced rather than
// swallowed. Calling Restore without a preceding EnterRaw is a no-op.
func (s *Session) Restore() error {
	if s.saved == nil {
		return nil
	}
	signal.Stop(s.sigs)
	close(s.sigDone)
	err := tcsetattr(s.fd, s.saved)
	s.saved = nil
	if err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	return nil
}

// Close releases the device descriptor.
func (s *Session) Close() error {
	return unix.Close(s.fd)
}
