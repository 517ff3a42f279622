package render

import (
	"os"
	"strconv"
)

// TerminalWidth reports the terminal width in columns, or 0 when it cannot
// be determined. Zero disables the side-by-side layout. Declared per
// platform in terminal_posix.go and terminal_windows.go.

// columnsFromEnv reads the COLUMNS variable, the shell convention for
// non-tty output.
func columnsFromEnv() int {
	cols, ok := os.LookupEnv("COLUMNS")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(cols)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
