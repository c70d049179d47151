//go:build darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/abrezinsky/electiondash/internal/logger"
)

// listenForKeyboard reads single key presses from a raw terminal until quit
func listenForKeyboard(dashboardURL string, appLog *logger.SlogLogger, quit func()) {
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		// Not a terminal
		return
	}

	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, &newState); err != nil {
		return
	}
	defer unix.IoctlSetTermios(fd, unix.TIOCSETA, oldState)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if !handleKey(buf[0], dashboardURL, appLog, openBrowser, quit) {
			return
		}
	}
}
