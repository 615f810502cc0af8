package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spawngen/internal/area"
	"github.com/roach88/spawngen/internal/config"
	"github.com/roach88/spawngen/internal/feed"
	"github.com/roach88/spawngen/internal/override"
	"github.com/roach88/spawngen/internal/store"
	"github.com/roach88/spawngen/internal/twoda"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	GamePath  string // game install directory
	Feed      string // records feed path
	Overrides string // override table path
	Database  string // run history database
	Strategy  string // apportionment strategy
	Capacity  int    // slots per spawn group
	DryRun    bool   // print the table instead of writing it

	runIDs store.RunIDGenerator
}

// GenerateResult summarizes a generate run.
type GenerateResult struct {
	Output     string `json:"output,omitempty"`
	Areas      int    `json:"areas"`
	Overridden int    `json:"overridden"`
	Expanded   int    `json:"expanded"`
	Unrepaired int    `json:"unrepaired"`
	RunID      string `json:"run_id,omitempty"`
	Seq        int64  `json:"seq,omitempty"`

	Spawns []area.Spawn `json:"spawns,omitempty"`
}

func (r GenerateResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d spawn group(s)", r.Areas)
	if r.Output != "" {
		fmt.Fprintf(&b, " -> %s", r.Output)
	}
	fmt.Fprintf(&b, "\n  overridden: %d, expanded: %d, unrepaired: %d", r.Overridden, r.Expanded, r.Unrepaired)
	if r.RunID != "" {
		fmt.Fprintf(&b, "\n  recorded run %s (seq %d)", r.RunID, r.Seq)
	}
	return b.String()
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	return newGenerateCommand(rootOpts, store.UUIDv7Generator{})
}

// newGenerateCommand creates the generate command with a fixed run ID source.
func newGenerateCommand(rootOpts *RootOptions, runIDs store.RunIDGenerator) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts, runIDs: runIDs}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the spawn group table",
		Long: `Regenerate the spawn group table from the actor records feed.

Loads the pristine table, folds the feed into per-area creature pools,
apportions every pool into a spawn group, applies manual overrides and
writes the output table. With --db the run is recorded in the history
database.

Example:
  spawngen generate --game ~/games/bg2ee
  spawngen generate --dry-run --strategy steal-from-richest
  spawngen generate --db ./spawngen.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GamePath, "game", "", "game install directory")
	cmd.Flags().StringVar(&opts.Feed, "feed", "", "actor records feed (JSON)")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "manual override table")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run history database")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "apportionment strategy")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "slots per spawn group")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the table instead of writing it")

	return cmd
}

// applyFlags overlays explicitly set flags onto cfg.
func (o *GenerateOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("game") {
		cfg.GamePath = o.GamePath
	}
	if flags.Changed("feed") {
		cfg.FeedPath = o.Feed
	}
	if flags.Changed("overrides") {
		cfg.OverridesPath = o.Overrides
	}
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if flags.Changed("strategy") {
		cfg.Strategy = o.Strategy
	}
	if flags.Changed("capacity") {
		cfg.Capacity = o.Capacity
	}
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	ctx := cmd.Context()

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "loading config", err)
	}
	opts.applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	// Load inputs
	feedData, err := readInput(cfg.FeedPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "reading feed", err)
	}
	actors, err := feed.Decode(bytes.NewReader(feedData))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeFeed, "invalid feed", err)
	}
	pools := feed.Fold(actors)
	logger.Info("feed loaded", "path", cfg.FeedPath, "actors", len(actors), "areas", len(pools.Areas))

	var overrideData []byte
	var overrides []override.Entry
	if cfg.OverridesPath != "" {
		if overrideData, err = readInput(cfg.OverridesPath); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "reading overrides", err)
		}
		if overrides, err = override.Parse(bytes.NewReader(overrideData), cfg.Capacity); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeOverride, "invalid overrides", err)
		}
		logger.Info("overrides loaded", "path", cfg.OverridesPath, "entries", len(overrides))
	}

	pristinePath := cfg.Resolve(cfg.PristineTable)
	pristineData, err := readInput(pristinePath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "reading pristine table", err)
	}
	table, err := twoda.Load(bytes.NewReader(pristineData), cfg.Capacity)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTable, "invalid pristine table", err)
	}

	// Aggregate
	agg, err := area.New(cfg, logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}
	if err := override.Check(overrides, pools.Has); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeOverride, "invalid overrides", err)
	}
	spawns, err := agg.Build(ctx, pools, overrides)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "generation cancelled", err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "building spawn groups", err)
	}
	if err := agg.Apply(table, spawns); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTable, "applying spawn groups", err)
	}

	result := summarize(spawns)
	for _, s := range spawns {
		logger.Debug("spawn group", "group", agg.GroupName(s.Area), "difficulty", s.Difficulty,
			"power", pools.AreaPower(s.Roster), "roster", strings.Join(s.Roster, " "))
	}

	if opts.DryRun {
		if opts.Format == "json" {
			result.Spawns = spawns
			return formatter.Success(result)
		}
		if err := twoda.Save(cmd.OutOrStdout(), table, cfg.ColumnWidth); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "writing table", err)
		}
		return nil
	}

	result.Output = cfg.Resolve(cfg.OutputTable)
	if err := twoda.SaveFile(result.Output, table, cfg.ColumnWidth); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "writing output table", err)
	}
	logger.Info("table written", "path", result.Output, "groups", len(table.Groups))

	// Record history
	if cfg.Database != "" {
		sourceHash, err := store.SourceHash(bytes.NewReader(feedData), bytes.NewReader(overrideData), bytes.NewReader(pristineData))
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "hashing inputs", err)
		}
		run := store.Run{
			ID:         opts.runIDs.Generate(),
			SourceHash: sourceHash,
			Strategy:   cfg.Strategy,
			Capacity:   cfg.Capacity,
		}
		seq, err := recordRun(cmd, cfg.Database, run, spawns)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "recording run", err)
		}
		result.RunID = run.ID
		result.Seq = seq
		logger.Info("run recorded", "db", cfg.Database, "run_id", run.ID, "seq", seq)
	}

	return formatter.SuccessWithRun(result, result.RunID)
}

// readInput reads a whole input file, reporting missing files plainly.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s does not exist", path)
	}
	return data, err
}

// summarize counts overridden, expanded and unrepaired spawn groups.
func summarize(spawns []area.Spawn) GenerateResult {
	result := GenerateResult{Areas: len(spawns)}
	for _, s := range spawns {
		if s.Overridden {
			result.Overridden++
		}
		if s.Expansion.Steps > 0 {
			result.Expanded++
		}
		if !s.Overridden && s.Result != nil && len(s.Result.Unrepaired) > 0 {
			result.Unrepaired++
		}
	}
	return result
}

// recordRun writes spawns as one run in the history database at path.
func recordRun(cmd *cobra.Command, path string, run store.Run, spawns []area.Spawn) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	rosters := make([]store.Roster, len(spawns))
	for i, s := range spawns {
		rosters[i] = store.Roster{
			Area:       s.Area,
			Difficulty: s.Difficulty,
			Slots:      []string(s.Roster),
			Overridden: s.Overridden,
		}
	}
	return st.WriteRun(cmd.Context(), run, rosters)
}
