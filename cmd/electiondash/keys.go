package main

import (
	"fmt"
	"strings"

	"github.com/abrezinsky/electiondash/internal/browser"
	"github.com/abrezinsky/electiondash/internal/logger"
)

// handleKey performs the action bound to one key press.
// It returns false once the key asked the server to stop.
func handleKey(key byte, dashboardURL string, appLog *logger.SlogLogger, open func(string) error, quit func()) bool {
	switch strings.ToLower(string(key)) {
	case "d":
		fmt.Printf("%sOpening dashboard in browser...%s\n", cyan, reset)
		if err := open(dashboardURL); err != nil {
			fmt.Printf("%sError opening browser: %v%s\n", red, err, reset)
		}
	case "h":
		toggleHTTPLogging(appLog)
	case "l":
		cycleLogLevel(appLog)
	case "q", "\x03": // Ctrl+C arrives as a byte in raw mode
		fmt.Printf("%sShutting down server...%s\n", yellow, reset)
		quit()
		return false
	case "?":
		printKeyboardHelp()
	}
	return true
}

func openBrowser(url string) error {
	return browser.Open(url)
}
