package tui

import (
	"os"
)

// GetLogFilePath returns the path to the log file, or "" when file logging
// is off. The flag value wins over ACTIONPIN_LOG_FILE.
func GetLogFilePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("ACTIONPIN_LOG_FILE")
}
