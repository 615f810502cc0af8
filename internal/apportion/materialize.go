package apportion

import "sort"

// Placeholder marks an unfilled roster position.
const Placeholder = "*"

// Roster is the externally visible slot sequence. Entries are items or
// Placeholder.
type Roster []string

// materialize expands slot counts in the given order into a roster of exactly
// capacity entries, padding with Placeholder or truncating as needed.
func materialize(order []string, slots map[string]int, capacity int) Roster {
	roster := make(Roster, 0, capacity)
	for _, item := range order {
		for n := slots[item]; n > 0 && len(roster) < capacity; n-- {
			roster = append(roster, item)
		}
	}
	for len(roster) < capacity {
		roster = append(roster, Placeholder)
	}
	return roster
}

// Empty returns a roster of capacity placeholders.
func Empty(capacity int) Roster {
	return materialize(nil, nil, capacity)
}

// Counts returns item → occurrences in r, ignoring placeholders.
func (r Roster) Counts() map[string]int {
	out := make(map[string]int)
	for _, entry := range r {
		if entry != Placeholder {
			out[entry]++
		}
	}
	return out
}

// Distinct returns the non-placeholder items of r in order of first appearance.
func (r Roster) Distinct() []string {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range r {
		if entry == Placeholder || seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}

// Grouped returns a copy of r with items clustered by descending frequency,
// ties broken alphabetically, placeholders last.
func (r Roster) Grouped() Roster {
	counts := r.Counts()
	items := make([]string, 0, len(counts))
	for item := range counts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if counts[items[i]] != counts[items[j]] {
			return counts[items[i]] > counts[items[j]]
		}
		return items[i] < items[j]
	})
	return materialize(items, counts, len(r))
}
