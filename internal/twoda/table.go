package twoda

import "fmt"

// Signature is the first line of every 2DA file.
const Signature = "2DA V1.0"

// Group is one column of the table: a spawn group and its creature slots.
type Group struct {
	Name       string
	Difficulty string
	Creatures  []string
}

// Table is an in-memory spawn group table.
type Table struct {
	// Default is the value on the second line of the file.
	Default string

	// DifficultyLabel labels the difficulty row.
	DifficultyLabel string

	// SlotLabels label the creature rows; len(SlotLabels) == Capacity().
	SlotLabels []string

	Groups []Group
}

// New creates an empty table with capacity numbered slot rows.
func New(capacity int) *Table {
	t := &Table{
		Default:         "0",
		DifficultyLabel: "DIFFICULTY",
		SlotLabels:      make([]string, capacity),
	}
	for i := range t.SlotLabels {
		t.SlotLabels[i] = fmt.Sprintf("%d", i+1)
	}
	return t
}

// Capacity returns the number of creature rows.
func (t *Table) Capacity() int {
	return len(t.SlotLabels)
}

// Group returns the group named name.
func (t *Table) Group(name string) (Group, bool) {
	for _, g := range t.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Upsert replaces the same-named group in place or appends g.
// Returns an error if g does not have exactly Capacity() creatures.
func (t *Table) Upsert(g Group) error {
	if len(g.Creatures) != t.Capacity() {
		return fmt.Errorf("group %s: %d creatures, table holds %d", g.Name, len(g.Creatures), t.Capacity())
	}
	for i := range t.Groups {
		if t.Groups[i].Name == g.Name {
			t.Groups[i] = g
			return nil
		}
	}
	t.Groups = append(t.Groups, g)
	return nil
}

// Names returns the group names in column order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		names[i] = g.Name
	}
	return names
}
