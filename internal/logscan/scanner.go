package logscan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// PuzzleMarker is the substring that identifies a puzzle path.
const PuzzleMarker = "puzzle"

// maxLineSize bounds a single log line. Apache combined-log lines with long
// referrers or user agents exceed bufio's 64KB default only rarely, but a
// single oversized line would otherwise abort the whole scan.
const maxLineSize = 1024 * 1024

// requestPattern matches the request fragment of an access log line.
// The path is a single non-whitespace token between "GET" and "HTTP".
var requestPattern = regexp.MustCompile(`GET\s+(\S+)\s+HTTP`)

// ExtractPath returns the request path of the first "GET <path> HTTP"
// fragment in line. The path is returned verbatim. The second return value
// is false when the line carries no such fragment.
func ExtractPath(line string) (string, bool) {
	m := requestPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsPuzzle reports whether line carries a request path containing "puzzle".
func IsPuzzle(line string) bool {
	path, ok := ExtractPath(line)
	if !ok {
		return false
	}
	return strings.Contains(path, PuzzleMarker)
}

// LineFunc is called for every line read by Scan.
// lineNo starts at 1. Returning an error stops the scan.
type LineFunc func(lineNo int, line string) error

// Scan reads r line by line and calls fn for each line.
// The context is checked between lines so that a cancelled run stops
// promptly on large logs.
func Scan(ctx context.Context, r io.Reader, fn LineFunc) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		if err := fn(lineNo, scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log at line %d: %w", lineNo+1, err)
	}
	return nil
}

// PuzzlePaths scans r and returns the path of every puzzle line in file
// order. Duplicates are preserved; callers deduplicate.
func PuzzlePaths(ctx context.Context, r io.Reader) ([]string, error) {
	paths := make([]string, 0)
	err := Scan(ctx, r, func(_ int, line string) error {
		path, ok := ExtractPath(line)
		if ok && strings.Contains(path, PuzzleMarker) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
