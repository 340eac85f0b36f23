package terminal

import (
	"bytes"
	"strconv"
	"strings"
)

// vt is a minimal virtual terminal for assertions: it understands cursor
// positioning and full clears, and ignores every other escape sequence.
type vt struct {
	cols, rows int
	raw        bytes.Buffer
}

func newVT(cols, rows int) *vt { return &vt{cols: cols, rows: rows} }

func (v *vt) Write(p []byte) (int, error) { return v.raw.Write(p) }

func (v *vt) size() SizeFunc { return FixedSize(v.cols, v.rows) }

// grid replays everything written so far.
func (v *vt) grid() [][]byte {
	g := make([][]byte, v.rows)
	clear := func() {
		for i := range g {
			g[i] = bytes.Repeat([]byte{' '}, v.cols)
		}
	}
	clear()
	col, row := 1, 1
	p := v.raw.Bytes()
	for i := 0; i < len(p); i++ {
		if p[i] == '\033' && i+1 < len(p) && p[i+1] == '[' {
			j := i + 2
			for j < len(p) && (p[j] < 0x40 || p[j] > 0x7e) {
				j++
			}
			if j == len(p) {
				break
			}
			params := string(p[i+2 : j])
			switch p[j] {
			case 'H':
				parts := strings.SplitN(params, ";", 2)
				row, _ = strconv.Atoi(parts[0])
				col, _ = strconv.Atoi(parts[1])
			case 'J':
				clear()
			}
			i = j
			continue
		}
		if row >= 1 && row <= v.rows && col >= 1 && col <= v.cols {
			g[row-1][col-1] = p[i]
		}
		col++
	}
	return g
}

// line returns 1-based row with trailing blanks trimmed.
func (v *vt) line(row int) string {
	return strings.TrimRight(string(v.grid()[row-1]), " ")
}

// text returns every row joined by newlines.
func (v *vt) text() string {
	var b strings.Builder
	for i := 1; i <= v.rows; i++ {
		b.WriteString(v.line(i))
		b.WriteByte('\n')
	}
	return b.String()
}
