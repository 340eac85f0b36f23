// Package terminal draws the dice table on an ANSI terminal: cursor
// addressing, live dice, the results graph, and raw keyboard mode.
package terminal

import "strconv"

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"

	// Foreground colors
	Red   = "\033[31m"
	Green = "\033[32m"
)

// Screen control sequences.
const (
	ClearScreen  = "\033[2J"
	HideCursor   = "\033[?25l"
	ShowCursor   = "\033[?25h"
	EnterAltScrn = "\033[?1049h"
	ExitAltScrn  = "\033[?1049l"
)

// Goto returns the sequence that moves the cursor to the 1-based (col, row).
//
// Postcondition: coordinates below 1 are sent as 1.
func Goto(col, row int) string {
	return "\033[" + strconv.Itoa(max(row, 1)) + ";" + strconv.Itoa(max(col, 1)) + "H"
}

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// StripANSI removes all CSI escape sequences from a string: colours as well
// as cursor movement. Useful for measuring or asserting on drawn output.
//
// Postcondition: Returns text with every \033[ ... <final byte> sequence removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			// Skip parameter bytes up to the final byte in 0x40..0x7E.
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}
