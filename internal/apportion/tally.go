package apportion

import "sort"

// Tally maps items to occurrence counts and remembers first-seen order.
// Every item present has a count of at least 1.
type Tally struct {
	order  []string
	counts map[string]int
}

// Count folds an ordered item sequence into a Tally.
// An empty sequence yields an empty Tally.
func Count(items []string) *Tally {
	t := &Tally{counts: make(map[string]int)}
	for _, item := range items {
		if _, seen := t.counts[item]; !seen {
			t.order = append(t.order, item)
		}
		t.counts[item]++
	}
	return t
}

// Len returns the number of distinct items.
func (t *Tally) Len() int {
	return len(t.order)
}

// Items returns the distinct items in first-seen order.
func (t *Tally) Items() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Count returns the occurrences of item, 0 if absent.
func (t *Tally) Count(item string) int {
	return t.counts[item]
}

// Total returns the sum of all counts.
func (t *Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Reduce returns a Tally holding at most capacity distinct items and the
// items it dropped. Items are dropped in ascending count order; ties go to the
// earliest-seen item first. Survivors keep their first-seen order.
//
// If the Tally already fits, Reduce returns it unchanged with no drops.
func (t *Tally) Reduce(capacity int) (*Tally, []string) {
	if capacity < 0 {
		capacity = 0
	}
	if len(t.order) <= capacity {
		return t, nil
	}

	ascending := t.Items()
	sort.SliceStable(ascending, func(i, j int) bool {
		return t.counts[ascending[i]] < t.counts[ascending[j]]
	})

	excess := len(t.order) - capacity
	dropped := ascending[:excess]
	gone := make(map[string]bool, excess)
	for _, item := range dropped {
		gone[item] = true
	}

	reduced := &Tally{counts: make(map[string]int, capacity)}
	for _, item := range t.order {
		if gone[item] {
			continue
		}
		reduced.order = append(reduced.order, item)
		reduced.counts[item] = t.counts[item]
	}
	return reduced, dropped
}
