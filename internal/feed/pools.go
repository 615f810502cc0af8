package feed

// Pools is the feed folded by area.
type Pools struct {
	// Areas lists every area in the order it first appears in the feed,
	// including areas with no hostile actors.
	Areas []string

	// Mobs maps each area to its hostile creatures in feed order. Repetition
	// encodes frequency.
	Mobs map[string][]string

	// Creatures maps a creature file to every actor record placing it.
	Creatures map[string][]Actor
}

// Fold groups actors by area.
func Fold(actors []Actor) *Pools {
	p := &Pools{
		Mobs:      make(map[string][]string),
		Creatures: make(map[string][]Actor),
	}
	for _, a := range actors {
		p.Creatures[a.Creature] = append(p.Creatures[a.Creature], a)

		if _, ok := p.Mobs[a.Area]; !ok {
			p.Areas = append(p.Areas, a.Area)
			p.Mobs[a.Area] = nil
		}
		if !a.CountsAsHostile() {
			continue
		}
		p.Mobs[a.Area] = append(p.Mobs[a.Area], a.Creature)
	}
	return p
}

// Has reports whether area appears in the feed.
func (p *Pools) Has(area string) bool {
	_, ok := p.Mobs[area]
	return ok
}

// AreaPower returns the strongest positive creature power among roster
// entries, or -1 if none is known.
func (p *Pools) AreaPower(roster []string) float64 {
	best := -1.0
	for _, mob := range roster {
		actors := p.Creatures[mob]
		if len(actors) == 0 {
			continue
		}
		if power := actors[0].Power(); power > 0 && power > best {
			best = power
		}
	}
	return best
}
