package twoda

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultWidth is the minimum column width used by Save.
const DefaultWidth = 10

// ParseError reports a structurally invalid table.
type ParseError struct {
	Line    int // 1-based, 0 when not tied to a line
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("2da line %d: %s", e.Line, e.Message)
	}
	return "2da: " + e.Message
}

// Load parses a table that must hold exactly capacity creature rows.
func Load(r io.Reader, capacity int) (*Table, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read 2da: %w", err)
	}

	// Trailing blank lines are not rows.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 4 {
		return nil, &ParseError{Message: fmt.Sprintf("want at least 4 lines, got %d", len(lines))}
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "2DA") {
		return nil, &ParseError{Line: 1, Message: fmt.Sprintf("bad signature %q", lines[0])}
	}

	t := &Table{Default: strings.TrimSpace(lines[1])}

	names := strings.Fields(lines[2])
	t.Groups = make([]Group, len(names))
	for i, name := range names {
		t.Groups[i] = Group{Name: name, Creatures: make([]string, 0, capacity)}
	}

	diff := strings.Fields(lines[3])
	if len(diff) != len(names)+1 {
		return nil, &ParseError{Line: 4, Message: fmt.Sprintf("difficulty row has %d columns, want %d", len(diff), len(names)+1)}
	}
	t.DifficultyLabel = diff[0]
	for i, d := range diff[1:] {
		t.Groups[i].Difficulty = d
	}

	body := lines[4:]
	if len(body) != capacity {
		return nil, &ParseError{Message: fmt.Sprintf("want %d creature rows, got %d", capacity, len(body))}
	}
	for y, line := range body {
		cells := strings.Fields(line)
		if len(cells) != len(names)+1 {
			return nil, &ParseError{Line: y + 5, Message: fmt.Sprintf("creature row has %d columns, want %d", len(cells), len(names)+1)}
		}
		t.SlotLabels = append(t.SlotLabels, cells[0])
		for x, c := range cells[1:] {
			t.Groups[x].Creatures = append(t.Groups[x].Creatures, c)
		}
	}

	return t, nil
}

// LoadFile is Load over the file at path.
func LoadFile(path string, capacity int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open 2da: %w", err)
	}
	defer f.Close()
	return Load(f, capacity)
}

// Save writes t with every cell left-justified to at least width characters
// and cells separated by tabs.
func Save(w io.Writer, t *Table, width int) error {
	for _, g := range t.Groups {
		if len(g.Creatures) != t.Capacity() {
			return fmt.Errorf("save 2da: group %s has %d creatures, want %d", g.Name, len(g.Creatures), t.Capacity())
		}
	}

	bw := bufio.NewWriter(w)
	pad := func(s string) string { return fmt.Sprintf("%-*s", width, s) }
	row := func(label string, cell func(Group) string) {
		cells := make([]string, 0, len(t.Groups)+1)
		cells = append(cells, pad(label))
		for _, g := range t.Groups {
			cells = append(cells, pad(cell(g)))
		}
		bw.WriteString(strings.Join(cells, "\t"))
		bw.WriteByte('\n')
	}

	def := t.Default
	if def == "" {
		def = "0"
	}
	bw.WriteString(Signature + "\n")
	bw.WriteString(def + "\n")
	row("", func(g Group) string { return g.Name })
	row(t.DifficultyLabel, func(g Group) string { return g.Difficulty })
	for slot, label := range t.SlotLabels {
		row(label, func(g Group) string { return g.Creatures[slot] })
	}
	return bw.Flush()
}

// SaveFile writes t to path, replacing any existing file.
func SaveFile(path string, t *Table, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create 2da: %w", err)
	}
	if err := Save(f, t, width); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
