package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spawngen/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string // path to SQLite database
	RunID    string // run to inspect, latest when empty
	Area     string // single area to show
}

// RunList is the text rendering of recorded runs.
type RunList []store.Run

func (l RunList) String() string {
	if len(l) == 0 {
		return "No runs recorded."
	}
	var b strings.Builder
	for i, r := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s  %-22s capacity=%d areas=%d source=%.12s", r.Seq, r.ID, r.Strategy, r.Capacity, r.AreaCount, r.SourceHash)
	}
	return b.String()
}

// RosterList is the text rendering of recorded rosters.
type RosterList []store.Roster

func (l RosterList) String() string {
	var b strings.Builder
	for i, r := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := " "
		if r.Overridden {
			marker = "!"
		}
		fmt.Fprintf(&b, "%s %-10s %5d  %s", marker, r.Area, r.Difficulty, strings.Join(r.Slots, " "))
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generate runs",
		Long: `Inspect the run history database written by generate --db.

Without --run or --area, lists every run. --run shows the rosters of one
run; --area shows one area's roster from --run or the latest run.
Overridden rosters are marked with "!".

Example:
  spawngen history --db ./spawngen.db
  spawngen history --db ./spawngen.db --run 0190a5e2-...
  spawngen history --db ./spawngen.db --area AR1000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to inspect (default latest)")
	cmd.Flags().StringVar(&opts.Area, "area", "", "show a single area")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Opening creates missing databases, so check first.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "opening database", err)
	}
	defer st.Close()

	if opts.RunID == "" && opts.Area == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "listing runs", err)
		}
		return formatter.Success(RunList(runs))
	}

	runID := opts.RunID
	if runID == "" {
		latest, err := st.LatestRun(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "no runs recorded", err)
		}
		runID = latest.ID
	}
	formatter.VerboseLog("Inspecting run %s", runID)

	if opts.Area != "" {
		roster, err := st.RosterForArea(ctx, runID, opts.Area)
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("area %s not in run %s", opts.Area, runID), err)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "reading roster", err)
		}
		return formatter.SuccessWithRun(RosterList{roster}, runID)
	}

	rosters, err := st.Rosters(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "reading rosters", err)
	}
	if len(rosters) == 0 {
		return formatter.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("run %s has no rosters", runID), nil)
	}
	return formatter.SuccessWithRun(RosterList(rosters), runID)
}
