package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/config"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	ConfigPath string
	Ticks      int
	Recent     int
	Locale     string

	// Clock overrides the engine clock (for testing). Nil means SystemClock.
	Clock engine.Clock
}

// SimulateResult is the JSON payload of the simulate command.
type SimulateResult struct {
	TickCounts []int          `json:"tick_counts"`
	Status     engine.Status  `json:"status"`
	Recent     []engine.Event `json:"recent"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the engine offline for a number of ticks",
		Long: `Build the engine from a config file, step it --ticks times and print
per-tick counts, the final status and the most recent ideas.

Example:
  simulator simulate --ticks 10
  simulator simulate --config ./simulator.toml --ticks 3 --recent 5
  simulator simulate --ticks 2 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", config.DefaultConfigPath, "simulator config file (YAML or TOML)")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 1, "number of ticks to run")
	cmd.Flags().IntVar(&opts.Recent, "recent", 10, "number of recent ideas to print")
	cmd.Flags().StringVar(&opts.Locale, "locale", engine.DefaultLocale, "summary locale (en|es)")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Ticks < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("--ticks must be non-negative, got %d", opts.Ticks), nil)
	}

	sim, err := config.Load(opts.ConfigPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}

	engineOpts := []engine.Option{
		engine.WithLocale(opts.Locale),
		engine.WithLogger(opts.newLogger("warn", formatter.GetErrWriter())),
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(opts.Clock))
	}
	eng, err := engine.New(sim.Params(), engineOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, err.Error(), nil)
	}

	result := SimulateResult{TickCounts: make([]int, 0, opts.Ticks)}
	for i := 1; i <= opts.Ticks; i++ {
		batch := eng.Tick()
		result.TickCounts = append(result.TickCounts, len(batch))
		formatter.VerboseLog("tick %d: %d idea(s)", i, len(batch))
	}
	result.Status = eng.Status()
	result.Recent = eng.Recent(opts.Recent)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputSimulateText(formatter, result)
}

func outputSimulateText(formatter *OutputFormatter, result SimulateResult) error {
	w := formatter.Writer

	var total int64
	for i, n := range result.TickCounts {
		total += int64(n)
		fmt.Fprintf(w, "tick %d: %d idea(s) (total %d)\n", i+1, n, total)
	}

	s := result.Status
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bots: %d  Rate: %g  Seed: %d  Layers: %d\n", s.AgentCount, s.Rate, s.Seed, s.LayerCount)
	fmt.Fprintf(w, "Total ideas: %d\n", s.TotalEvents)

	if len(result.Recent) > 0 {
		fmt.Fprintf(w, "\nRecent ideas (%d):\n", len(result.Recent))
		for _, idea := range result.Recent {
			fmt.Fprintf(w, "  [bot %d #%d] %s\n", idea.AgentID, idea.Sequence, idea.Summary)
		}
	}
	return nil
}
