// Package logging provides opt-in file-based logging with rotation for the
// ranking core. When --debug is set, comprehensive logs are written to
// ~/.rankcore/logs/ for debugging and troubleshooting.
//
// By default (without --debug), logging is minimal and goes to stderr only.
package logging
