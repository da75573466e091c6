package cpu

import (
	"bufio"
	"io"
	"strings"
)

// Line is a line of assembler source.
type Line struct {
	LineNo int    // 1-based line number in the source file.
	Text   string // Source text, without comment or trailing whitespace.
}

// Clean reads assembler source, removing '#' comments, trailing whitespace,
// and blank lines. Leading whitespace is kept, as it is significant to
// label definitions.
func Clean(r io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if n := strings.IndexByte(text, '#'); n >= 0 {
			text = text[:n]
		}
		text = strings.TrimRight(text, " \t\r")
		if len(strings.TrimSpace(text)) == 0 {
			continue
		}
		lines = append(lines, Line{LineNo: lineNo, Text: text})
	}

	err = scanner.Err()
	return
}
