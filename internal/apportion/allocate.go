package apportion

import (
	"fmt"
	"sort"
)

// allocation is the call-scoped slot assignment shared by allocate, repair
// and materialize. It is never retained across calls.
type allocation struct {
	capacity int
	total    int
	order    []string       // enumeration order (first-seen)
	counts   map[string]int // weights the shares were computed from
	slots    map[string]int // assigned slots, sum == capacity after allocate

	// byRemainder is order stably sorted by descending fractional remainder.
	byRemainder []string
}

// allocate runs the largest remainder method over counts.
//
// ideal(e) = counts[e] * capacity / total. Each item first receives
// floor(ideal(e)); the leftover is handed out one slot at a time in
// descending remainder order, earliest-seen first on ties.
func allocate(order []string, counts map[string]int, capacity int) (*allocation, error) {
	total := 0
	for _, item := range order {
		total += counts[item]
	}
	if total <= 0 {
		return nil, ErrEmptyPool
	}

	a := &allocation{
		capacity: capacity,
		total:    total,
		order:    order,
		counts:   counts,
		slots:    make(map[string]int, len(order)),
	}

	used := 0
	for _, item := range order {
		floor := a.scaled(item) / int64(total)
		a.slots[item] = int(floor)
		used += int(floor)
	}

	leftover := capacity - used
	if leftover < 0 {
		return nil, fmt.Errorf("allocate %d slots over %d occurrences: %w", capacity, total, ErrNegativeLeftover)
	}

	a.byRemainder = make([]string, len(order))
	copy(a.byRemainder, order)
	sort.SliceStable(a.byRemainder, func(i, j int) bool {
		return a.remainder(a.byRemainder[i]) > a.remainder(a.byRemainder[j])
	})

	for i := 0; leftover > 0 && i < len(a.byRemainder); i++ {
		a.slots[a.byRemainder[i]]++
		leftover--
	}

	return a, nil
}

// scaled returns counts[item] * capacity, the numerator of ideal(item).
func (a *allocation) scaled(item string) int64 {
	return int64(a.counts[item]) * int64(a.capacity)
}

// remainder returns the fractional remainder of ideal(item) as a numerator
// over total.
func (a *allocation) remainder(item string) int64 {
	return a.scaled(item) % int64(a.total)
}

// surplus returns slots[item] - ideal(item) as a numerator over total.
func (a *allocation) surplus(item string) int64 {
	return int64(a.slots[item])*int64(a.total) - a.scaled(item)
}

// ideal returns the real-valued fair share of item, for reporting only.
func (a *allocation) ideal(item string) float64 {
	return float64(a.counts[item]) / float64(a.total) * float64(a.capacity)
}

// zeros returns the items holding no slots, in enumeration order.
func (a *allocation) zeros() []string {
	var out []string
	for _, item := range a.order {
		if a.slots[item] == 0 {
			out = append(out, item)
		}
	}
	return out
}

// assigned returns the sum of all assigned slots.
func (a *allocation) assigned() int {
	sum := 0
	for _, n := range a.slots {
		sum += n
	}
	return sum
}
