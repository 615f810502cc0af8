package harness

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/roach88/spawngen/internal/apportion"
)

// Result is the outcome of running one scenario.
type Result struct {
	Pass    bool
	Errors  []string
	Outcome *apportion.Result
}

// Run executes a scenario and evaluates its expectations.
// An error is returned only when the engine itself fails.
func Run(s *Scenario) (*Result, error) {
	strategy := apportion.Default
	if s.Strategy != "" {
		var err error
		if strategy, err = apportion.Lookup(s.Strategy); err != nil {
			return nil, err
		}
	}

	items := s.Input()
	outcome, err := strategy.Allocate(items, s.Capacity)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	res := &Result{Outcome: outcome}
	res.Errors = check(s, items, outcome)
	res.Pass = len(res.Errors) == 0
	return res, nil
}

// check evaluates every expectation and returns one message per failure.
func check(s *Scenario, items []string, out *apportion.Result) []string {
	var errs []string
	exp := s.Expect

	if len(out.Roster) != s.Capacity {
		errs = append(errs, fmt.Sprintf("roster length %d, want %d", len(out.Roster), s.Capacity))
	}

	if exp.Roster != nil && !reflect.DeepEqual([]string(out.Roster), exp.Roster) {
		errs = append(errs, fmt.Sprintf("roster = %v, want %v", out.Roster, exp.Roster))
	}

	if exp.Slots != nil {
		got := out.Roster.Counts()
		for _, item := range sortedKeys(exp.Slots) {
			if got[item] != exp.Slots[item] {
				errs = append(errs, fmt.Sprintf("slots[%s] = %d, want %d", item, got[item], exp.Slots[item]))
			}
		}
	}

	if exp.Dropped != nil && !equalLists(out.Dropped, *exp.Dropped) {
		errs = append(errs, fmt.Sprintf("dropped = %v, want %v", out.Dropped, *exp.Dropped))
	}

	if exp.Unrepaired != nil && !equalLists(out.Unrepaired, *exp.Unrepaired) {
		errs = append(errs, fmt.Sprintf("unrepaired = %v, want %v", out.Unrepaired, *exp.Unrepaired))
	}

	if exp.DistinctAll {
		dropped := make(map[string]bool, len(out.Dropped))
		for _, d := range out.Dropped {
			dropped[d] = true
		}
		present := out.Roster.Counts()
		for _, item := range apportion.Count(items).Items() {
			if !dropped[item] && present[item] == 0 {
				errs = append(errs, fmt.Sprintf("item %s missing from roster", item))
			}
		}
	}

	return errs
}

func equalLists(got, want []string) bool {
	if len(got) == 0 && len(want) == 0 {
		return true
	}
	return reflect.DeepEqual(got, want)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
