package parser

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

// SplitLines reads native markup into lines. Line terminators, including a
// trailing carriage return, are dropped; blank lines are kept.
func SplitLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}
