package area

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/spawngen/internal/apportion"
	"github.com/roach88/spawngen/internal/config"
	"github.com/roach88/spawngen/internal/feed"
	"github.com/roach88/spawngen/internal/override"
	"github.com/roach88/spawngen/internal/twoda"
)

// Spawn is the computed spawn group of one area.
type Spawn struct {
	Area       string           `json:"area"`
	Difficulty int              `json:"difficulty"`
	Roster     apportion.Roster `json:"roster"`
	Overridden bool             `json:"overridden,omitempty"`
	Expansion  Expansion        `json:"expansion"`

	// Result is the engine outcome, nil for empty pools.
	Result *apportion.Result `json:"result,omitempty"`
}

// Aggregator turns area pools into spawn groups.
//
// Thread-safety: an Aggregator is read-only after construction and Build may
// be called concurrently.
type Aggregator struct {
	capacity          int
	minDistinct       int
	defaultDifficulty int
	groupPrefix       string
	strategy          apportion.Strategy
	logger            *slog.Logger
}

// New creates an aggregator from cfg. A nil logger uses slog.Default().
func New(cfg config.Config, logger *slog.Logger) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("aggregator config: %w", err)
	}
	strategy, err := apportion.Lookup(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		capacity:          cfg.Capacity,
		minDistinct:       cfg.MinDistinct,
		defaultDifficulty: cfg.DefaultDifficulty,
		groupPrefix:       cfg.GroupPrefix,
		strategy:          strategy,
		logger:            logger,
	}, nil
}

// Build computes the spawn group of every area in pools, in pools.Areas
// order. Overrides must name areas present in pools.
func (g *Aggregator) Build(ctx context.Context, pools *feed.Pools, overrides []override.Entry) ([]Spawn, error) {
	if err := override.Check(overrides, pools.Has); err != nil {
		return nil, err
	}

	spawns := make([]Spawn, len(pools.Areas))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range pools.Areas {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spawn, err := g.spawn(name, pools)
			if err != nil {
				return fmt.Errorf("area %s: %w", name, err)
			}
			spawns[i] = spawn
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Later entries win, matching file order.
	index := make(map[string]int, len(spawns))
	for i, s := range spawns {
		index[s.Area] = i
	}
	for _, e := range overrides {
		s := &spawns[index[e.Area]]
		s.Roster = apportion.Roster(append([]string(nil), e.Slots...))
		s.Difficulty = e.Difficulty
		s.Overridden = true
		g.logger.Debug("manual override applied", "area", e.Area, "difficulty", e.Difficulty)
	}

	return spawns, nil
}

// spawn apportions a single area.
func (g *Aggregator) spawn(name string, pools *feed.Pools) (Spawn, error) {
	mobs, exp := expand(name, pools.Areas, pools.Mobs, g.minDistinct, g.logger)
	s := Spawn{
		Area:       name,
		Difficulty: g.defaultDifficulty,
		Expansion:  exp,
	}
	if len(mobs) == 0 {
		s.Roster = apportion.Empty(g.capacity)
		return s, nil
	}

	res, err := g.strategy.Allocate(NormalizeToFirst(mobs), g.capacity)
	if err != nil {
		return Spawn{}, err
	}
	for _, item := range res.Unrepaired {
		g.logger.Warn("creature left out of roster", "area", name, "creature", item)
	}
	if len(res.Dropped) > 0 {
		g.logger.Debug("dropped least frequent creatures", "area", name, "dropped", res.Dropped)
	}
	s.Roster = res.Roster
	s.Result = res
	return s, nil
}

// GroupName returns the table column name for an area.
func (g *Aggregator) GroupName(area string) string {
	return g.groupPrefix + area
}

// Apply upserts every spawn into t as a group.
func (g *Aggregator) Apply(t *twoda.Table, spawns []Spawn) error {
	for _, s := range spawns {
		group := twoda.Group{
			Name:       g.GroupName(s.Area),
			Difficulty: fmt.Sprintf("%d", s.Difficulty),
			Creatures:  []string(s.Roster),
		}
		if err := t.Upsert(group); err != nil {
			return err
		}
	}
	return nil
}
