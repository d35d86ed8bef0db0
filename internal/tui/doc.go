// Package tui provides terminal output for actionpin.
//
// It handles:
//   - Structured logging and status reporting (Splog), with optional rotated file logs
//   - Terminal colors (using lipgloss, with the profile picked by termenv and isatty)
//   - Yes/no confirmation prompts (using survey)
package tui
