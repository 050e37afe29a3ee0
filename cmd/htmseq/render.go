package main

import (
	"bufio"
	"io"
	"os"

	htm "github.com/htm-community/htmseq"
	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// columnGlyph returns the grid character and colour of a column.
//
//	B  active, burst
//	A  active, was predicted
//	p  predicted for the next tick
//	.  idle
func columnGlyph(col *htm.Column) (byte, string) {
	switch {
	case col.IsActive() && col.IsBursting():
		return 'B', ansiRed
	case col.IsActive():
		return 'A', ansiGreen
	case col.IsPredictive():
		return 'p', ansiYellow
	default:
		return '.', ""
	}
}

// renderGrid draws the column grid, one row per line.
func renderGrid(w io.Writer, region *htm.Region, color bool) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < region.Height(); y++ {
		for x := 0; x < region.Width(); x++ {
			glyph, code := columnGlyph(region.Column(x, y))
			if color && code != "" {
				bw.WriteString(code)
				bw.WriteByte(glyph)
				bw.WriteString(ansiReset)
			} else {
				bw.WriteByte(glyph)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
