// Package override parses the manual override table: hand-written rosters
// that replace computed ones for specific areas.
//
// Each non-blank line reads
//
//	AREA DIFFICULTY SLOT1 ... SLOTn
//
// with exactly capacity slots. Text after '#' is a comment.
package override

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Difficulty bounds, exclusive.
const (
	MinDifficulty = 1
	MaxDifficulty = 50000
)

// Entry is one area override.
type Entry struct {
	Area       string
	Difficulty int
	Slots      []string
}

// LineError reports an invalid override line.
type LineError struct {
	Line    int
	Area    string
	Message string
}

func (e *LineError) Error() string {
	if e.Area != "" {
		return fmt.Sprintf("override line %d (%s): %s", e.Line, e.Area, e.Message)
	}
	return fmt.Sprintf("override line %d: %s", e.Line, e.Message)
}

// Parse reads override entries with capacity slots each, in file order.
// A later entry for the same area replaces an earlier one.
func Parse(r io.Reader, capacity int) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		area := fields[0]
		if len(fields) < 2 {
			return nil, &LineError{Line: line, Area: area, Message: "missing difficulty"}
		}
		diff, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &LineError{Line: line, Area: area, Message: fmt.Sprintf("difficulty %q is not an integer", fields[1])}
		}
		if diff <= MinDifficulty || diff >= MaxDifficulty {
			return nil, &LineError{Line: line, Area: area, Message: fmt.Sprintf("invalid difficulty %d", diff)}
		}
		slots := fields[2:]
		if len(slots) != capacity {
			return nil, &LineError{Line: line, Area: area, Message: fmt.Sprintf("expected %d creatures, got %d", capacity, len(slots))}
		}

		entries = append(entries, Entry{Area: area, Difficulty: diff, Slots: slots})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return entries, nil
}

// ParseFile is Parse over the file at path.
func ParseFile(path string, capacity int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()
	return Parse(f, capacity)
}

// Check returns an error naming the first entry whose area is
// unknown to the feed.
func Check(entries []Entry, known func(area string) bool) error {
	for _, e := range entries {
		if !known(e.Area) {
			return fmt.Errorf("override: unknown area %s", e.Area)
		}
	}
	return nil
}
