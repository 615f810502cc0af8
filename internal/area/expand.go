package area

import (
	"log/slog"
	"strings"
)

// Expansion records how a sparse pool was widened.
type Expansion struct {
	// Prefix is the last name prefix merged, "" if the pool was not widened.
	Prefix string `json:"prefix,omitempty"`

	// Steps is the number of prefix shortenings applied.
	Steps int `json:"steps,omitempty"`
}

// expand widens the pool of area until it holds at least minDistinct
// distinct creatures. Each step drops one more trailing character from the
// area name and appends the pools of every area starting with that prefix,
// the area itself included. Pools are always read unwidened, so the result
// does not depend on the order areas are processed.
//
// Empty pools are left alone: an area with no hostiles stays empty. Widening
// stops once the prefix is empty.
func expand(area string, areas []string, pools map[string][]string, minDistinct int, logger *slog.Logger) ([]string, Expansion) {
	mobs := append([]string(nil), pools[area]...)
	var exp Expansion

	for exp.Steps < len(area) {
		distinct := Uniques(mobs)
		if len(distinct) >= minDistinct || len(distinct) == 0 {
			break
		}
		exp.Steps++
		exp.Prefix = area[:len(area)-exp.Steps]
		logger.Warn("sparse area pool, filling from neighbors",
			"area", area,
			"enemies", len(distinct),
			"distinct", distinct,
			"prefix", exp.Prefix+"*",
		)
		for _, neighbor := range areas {
			if strings.HasPrefix(neighbor, exp.Prefix) {
				mobs = append(mobs, pools[neighbor]...)
			}
		}
	}
	return mobs, exp
}
