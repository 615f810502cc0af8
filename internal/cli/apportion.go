package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spawngen/internal/apportion"
	"github.com/roach88/spawngen/internal/area"
)

// ApportionOptions holds flags for the apportion command.
type ApportionOptions struct {
	*RootOptions
	Capacity int
	Strategy string
	Grouped  bool // list the roster by descending frequency
	Fold     bool // fold case variants to the first-seen spelling
}

// ApportionResult is the output of the apportion command.
type ApportionResult struct {
	Strategy string `json:"strategy"`
	apportion.Result
}

func (r ApportionResult) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Roster, " "))
	for _, item := range r.Unrepaired {
		fmt.Fprintf(&b, "\n  unrepaired: %s", item)
	}
	if len(r.Dropped) > 0 {
		fmt.Fprintf(&b, "\n  dropped: %s", strings.Join(r.Dropped, " "))
	}
	return b.String()
}

// NewApportionCommand creates the apportion command.
func NewApportionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApportionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apportion [item...]",
		Short: "Apportion ad-hoc items into a roster",
		Long: `Apportion the given items into a roster of --capacity slots.

Repeating an item raises its weight. With no items the roster is all
placeholders.

Example:
  spawngen apportion Adam Adam Adam Adam Adam Adam Eve Eve Eve Snek Snek Dragon Bob Charlie
  spawngen apportion --strategy plain --capacity 4 orc orc ogre
  spawngen apportion --grouped --verbose wolf wolf bat`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApportion(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Capacity, "capacity", 8, "roster size")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", apportion.Default.Name(),
		fmt.Sprintf("apportionment strategy (%s)", strings.Join(apportion.Names(), "|")))
	cmd.Flags().BoolVar(&opts.Grouped, "grouped", false, "list the roster by descending frequency")
	cmd.Flags().BoolVar(&opts.Fold, "fold", false, "fold case variants to the first-seen spelling")

	return cmd
}

func runApportion(opts *ApportionOptions, items []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	strategy, err := apportion.Lookup(opts.Strategy)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStrategy, "unknown strategy", err)
	}

	if opts.Fold {
		items = area.NormalizeToFirst(items)
	}

	res, err := strategy.Allocate(items, opts.Capacity)
	if errors.Is(err, apportion.ErrInvalidCapacity) {
		return formatter.Fail(ExitCommandError, ErrCodeCapacity, fmt.Sprintf("invalid capacity %d", opts.Capacity), err)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "apportionment failed", err)
	}

	for _, slot := range res.Slots {
		formatter.VerboseLog("%-16s count=%-4d ideal=%-8.4f slots=%d", slot.Item, slot.Count, slot.Ideal, slot.Slots)
	}

	if opts.Grouped {
		res.Roster = res.Roster.Grouped()
	}
	return formatter.Success(ApportionResult{Strategy: strategy.Name(), Result: *res})
}
