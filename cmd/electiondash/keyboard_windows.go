//go:build windows

package main

import (
	"os"

	"github.com/abrezinsky/electiondash/internal/logger"
)

// listenForKeyboard reads key presses line by line on Windows
func listenForKeyboard(dashboardURL string, appLog *logger.SlogLogger, quit func()) {
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
