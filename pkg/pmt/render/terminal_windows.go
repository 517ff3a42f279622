//go:build windows

package render

// TerminalWidth reads the COLUMNS variable; there is no winsize ioctl here.
func TerminalWidth() int {
	return columnsFromEnv()
}
