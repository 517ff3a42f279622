//go:build !windows

package render

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminalWidth probes stdout with the winsize ioctl and falls back to the
// COLUMNS variable when stdout is not a tty.
func TerminalWidth() int {
	if ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ); err == nil && ws != nil && ws.Col > 0 {
		return int(ws.Col)
	}
	return columnsFromEnv()
}
