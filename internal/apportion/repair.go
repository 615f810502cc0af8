package apportion

// stealByRatio lifts every zero-slot item to one slot, taking each slot from
// the donor most overrepresented relative to its ideal share. Only donors
// holding more than one slot qualify, re-checked against current counts for
// every zero item. Items are visited in enumeration order in a single pass.
func (a *allocation) stealByRatio() {
	for _, z := range a.zeros() {
		donor, ok := a.pickDonor(func(best, cand string) bool {
			return a.surplus(cand) > a.surplus(best)
		})
		if !ok {
			// Donors only ever lose slots, so no later zero item can be served.
			return
		}
		a.slots[donor]--
		a.slots[z] = 1
	}
}

// stealFromRichest lifts zero-slot items by taking a slot from whichever item
// currently holds the most slots, provided it holds more than one.
func (a *allocation) stealFromRichest() {
	for _, z := range a.zeros() {
		richest := a.order[0]
		for _, item := range a.order[1:] {
			if a.slots[item] > a.slots[richest] {
				richest = item
			}
		}
		if a.slots[richest] <= 1 {
			continue
		}
		a.slots[richest]--
		a.slots[z] = 1
	}
}

// pickDonor returns the first item in enumeration order with more than one
// slot that no later candidate beats according to better.
func (a *allocation) pickDonor(better func(best, cand string) bool) (string, bool) {
	var donor string
	found := false
	for _, item := range a.order {
		if a.slots[item] <= 1 {
			continue
		}
		if !found || better(donor, item) {
			donor, found = item, true
		}
	}
	return donor, found
}
