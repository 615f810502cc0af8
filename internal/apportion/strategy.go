package apportion

import (
	"errors"
	"fmt"
	"sort"
)

// Strategy turns an item multiset into a roster of exactly capacity entries.
//
// Implementations must be deterministic (same input sequence, same output)
// and stateless.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Allocate apportions capacity slots among items.
	// Returns ErrInvalidCapacity if capacity < 1.
	Allocate(items []string, capacity int) (*Result, error)
}

// Slot reports the slots assigned to one item.
type Slot struct {
	Item  string  `json:"item"`
	Count int     `json:"count"` // occurrences in the input
	Ideal float64 `json:"ideal"` // fair share of capacity
	Slots int     `json:"slots"` // slots actually assigned
}

// Result is the outcome of one apportionment call.
type Result struct {
	Roster Roster `json:"roster"`

	// Slots lists surviving items in the order they were materialized.
	Slots []Slot `json:"slots"`

	// Dropped lists items removed by cardinality reduction, in drop order.
	Dropped []string `json:"dropped,omitempty"`

	// Unrepaired lists surviving items left with zero slots. For the repairing
	// strategies this means no donor had a slot to spare.
	Unrepaired []string `json:"unrepaired,omitempty"`
}

// Strategy names accepted by Lookup.
const (
	NamePlain               = "plain"
	NameGuaranteedJankRatio = "guaranteed-jank-ratio"
	NameStealFromRichest    = "steal-from-richest"
	NameStealByRatio        = "steal-by-ratio"
)

// Default is the strategy used by Apportion.
var Default Strategy = StealByRatio{}

var registry = map[string]Strategy{
	NamePlain:               Plain{},
	NameGuaranteedJankRatio: GuaranteedJankRatio{},
	NameStealFromRichest:    StealFromRichest{},
	NameStealByRatio:        StealByRatio{},
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, name, Names())
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apportion runs the default strategy and returns only the roster.
// An empty items slice yields a roster of placeholders.
func Apportion(items []string, capacity int) (Roster, error) {
	res, err := Default.Allocate(items, capacity)
	if err != nil {
		return nil, err
	}
	return res.Roster, nil
}

// StealByRatio reduces cardinality, allocates by largest remainder and lifts
// zero-slot items by taking from the most overrepresented donor.
// Rosters list items in first-seen order.
type StealByRatio struct{}

func (StealByRatio) Name() string { return NameStealByRatio }

func (StealByRatio) Allocate(items []string, capacity int) (*Result, error) {
	return guaranteed(items, capacity, (*allocation).stealByRatio, false)
}

// StealFromRichest is StealByRatio with the donor chosen by raw slot count.
// Rosters list items in remainder order.
type StealFromRichest struct{}

func (StealFromRichest) Name() string { return NameStealFromRichest }

func (StealFromRichest) Allocate(items []string, capacity int) (*Result, error) {
	return guaranteed(items, capacity, (*allocation).stealFromRichest, true)
}

// guaranteed is the reduce, allocate, repair, materialize pipeline shared by
// the two repairing strategies.
func guaranteed(items []string, capacity int, repair func(*allocation), remainderOrder bool) (*Result, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	tally, dropped := Count(items).Reduce(capacity)
	if tally.Len() == 0 {
		return &Result{Roster: Empty(capacity), Dropped: dropped}, nil
	}

	a, err := allocate(tally.order, tally.counts, capacity)
	if err != nil {
		return nil, err
	}
	repair(a)

	order := a.order
	if remainderOrder {
		order = a.byRemainder
	}
	return a.result(order, dropped), nil
}

// Plain is the unrepaired largest remainder method. It never drops items, so
// low-frequency items may receive no slot. Rosters list items in remainder
// order.
type Plain struct{}

func (Plain) Name() string { return NamePlain }

func (Plain) Allocate(items []string, capacity int) (*Result, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	tally := Count(items)
	if tally.Len() == 0 {
		return &Result{Roster: Empty(capacity)}, nil
	}
	a, err := allocate(tally.order, tally.counts, capacity)
	if err != nil {
		return nil, err
	}
	return a.result(a.byRemainder, nil), nil
}

// GuaranteedJankRatio reserves one slot per surviving item up front, then
// apportions the remaining capacity by largest remainder over each item's
// occurrences beyond the first. When every item occurs exactly once the
// remaining capacity is left as placeholders.
//
// Floors are handed out positionally: the i-th item in first-seen order
// receives the floor computed for the i-th item in remainder order. Leftover
// slots then go to the leading items in remainder order. Rosters list items
// in first-seen order.
type GuaranteedJankRatio struct{}

func (GuaranteedJankRatio) Name() string { return NameGuaranteedJankRatio }

func (GuaranteedJankRatio) Allocate(items []string, capacity int) (*Result, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	tally, dropped := Count(items).Reduce(capacity)
	if tally.Len() == 0 {
		return &Result{Roster: Empty(capacity), Dropped: dropped}, nil
	}

	slots := make(map[string]int, tally.Len())
	for _, item := range tally.order {
		slots[item] = 1
	}
	if spare := capacity - tally.Len(); spare > 0 {
		extra, err := jankExtra(tally, spare)
		if err != nil {
			return nil, err
		}
		for item, n := range extra {
			slots[item] += n
		}
	}

	full, err := allocate(tally.order, tally.counts, capacity)
	if err != nil {
		return nil, err
	}
	full.slots = slots
	return full.result(tally.order, dropped), nil
}

// jankExtra splits spare slots over occurrences beyond the first, pairing
// floors by position across first-seen and remainder order. Returns nil when
// no item occurs more than once.
func jankExtra(tally *Tally, spare int) (map[string]int, error) {
	weights := make(map[string]int, tally.Len())
	for _, item := range tally.order {
		weights[item] = tally.counts[item] - 1
	}
	a, err := allocate(tally.order, weights, spare)
	if errors.Is(err, ErrEmptyPool) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	extra := make(map[string]int, tally.Len())
	used := 0
	for i, item := range tally.order {
		floor := int(a.scaled(a.byRemainder[i]) / int64(a.total))
		extra[item] = floor
		used += floor
	}
	for i := 0; used < spare && i < len(a.byRemainder); i++ {
		extra[a.byRemainder[i]]++
		used++
	}
	return extra, nil
}

// result materializes a into a Result, listing slots in order.
func (a *allocation) result(order []string, dropped []string) *Result {
	res := &Result{
		Roster:  materialize(order, a.slots, a.capacity),
		Slots:   make([]Slot, 0, len(order)),
		Dropped: dropped,
	}
	for _, item := range order {
		res.Slots = append(res.Slots, Slot{
			Item:  item,
			Count: a.counts[item],
			Ideal: a.ideal(item),
			Slots: a.slots[item],
		})
	}
	res.Unrepaired = a.zeros()
	return res
}
