//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package termio

import "golang.org/x/sys/unix"

func tcgetattr(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, unix.TIOCGETA)
}

func tcsetattr(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, unix.TIOCSETA, t)
}
