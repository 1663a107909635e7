package main

import (
	"context"
	"drawdowncycles/api"
	"drawdowncycles/cmd"
	"drawdowncycles/internal/domain"
	"drawdowncycles/internal/logger"
	"drawdowncycles/internal/service"
	"drawdowncycles/internal/util"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func pprint(i interface{}) error {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(bytes))
	return nil
}

type cli struct {
	handler *api.ApiHandler
	secrets *util.Secrets
}

// load defers db setup until a command actually runs so --help works
// without secrets
func (c *cli) load(_ *cobra.Command, _ []string) error {
	handler, secrets, err := cmd.InitializeDependencies()
	if err != nil {
		return err
	}
	c.handler = handler
	c.secrets = secrets
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, zap.S().With("source", "cli"))

	c := &cli{}
	root := &cobra.Command{
		Use:               "drawdowncycles",
		Short:             "drawdown cycle analysis over stored daily prices",
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.handler != nil {
				cmd.CloseDependencies(c.handler)
			}
		},
	}
	root.AddCommand(
		c.ingestCommand(),
		c.refreshCommand(),
		c.cyclesCommand(),
		c.simulateCommand(),
		c.runsCommand(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (c *cli) ingestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [dir]",
		Short: "load a directory of stooq daily files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.secrets.DataDir
			if len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no directory given and dataDir is not configured")
			}

			run, err := c.handler.IngestService.IngestStooqDirectory(cmd.Context(), dir)
			if run != nil {
				if printErr := pprint(run); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
}

func (c *cli) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [symbols...]",
		Short: "fetch new daily bars from yahoo, every tracked ticker when no symbols are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.handler.IngestService.RefreshFromYahoo(cmd.Context(), args)
			if run != nil {
				if printErr := pprint(run); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
}

func (c *cli) cyclesCommand() *cobra.Command {
	var (
		threshold float64
		summary   bool
		compareTo string
	)
	command := &cobra.Command{
		Use:   "cycles <symbol>",
		Short: "detect drawdown cycles for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case compareTo != "":
				out, err := c.handler.CycleService.CompareCycles(ctx, args[0], compareTo, threshold)
				if err != nil {
					return err
				}
				return pprint(out)
			case summary:
				out, err := c.handler.CycleService.ComputeSummary(ctx, args[0], threshold)
				if err != nil {
					return err
				}
				return pprint(out)
			}

			out, err := c.handler.CycleService.ComputeCycles(ctx, args[0], threshold)
			if err != nil {
				return err
			}
			return pprint(out)
		},
	}
	command.Flags().Float64VarP(&threshold, "threshold", "t", 10, "drawdown threshold in percent")
	command.Flags().BoolVar(&summary, "summary", false, "print aggregate stats instead of the cycles")
	command.Flags().StringVar(&compareTo, "compare", "", "secondary symbol to price at each cycle's key dates")

	return command
}

func (c *cli) simulateCommand() *cobra.Command {
	var (
		base, secondary string
		start, end      string
		initial         float64
		monthly         float64
		threshold       float64
	)
	command := &cobra.Command{
		Use:   "simulate",
		Short: "compare buy and hold against switching into a secondary instrument during drawdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := util.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			endDate, err := util.ParseDate(end)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}

			ctx, endProfile := withProfile(cmd.Context())
			result, err := c.handler.SimulationService.Simulate(ctx, service.SimulateInput{
				BaseSymbol:        base,
				SecondarySymbol:   secondary,
				InitialInvestment: decimal.NewFromFloat(initial),
				MonthlyInvestment: decimal.NewFromFloat(monthly),
				StartDate:         startDate,
				EndDate:           endDate,
				ThresholdPct:      threshold,
			})
			endProfile()
			if err != nil {
				return err
			}
			return pprint(result)
		},
	}
	command.Flags().StringVar(&base, "base", "SPY", "base symbol")
	command.Flags().StringVar(&secondary, "secondary", "QQQ", "secondary symbol")
	command.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD")
	command.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD")
	command.Flags().Float64Var(&initial, "initial", 10000, "initial investment")
	command.Flags().Float64Var(&monthly, "monthly", 0, "monthly contribution")
	command.Flags().Float64VarP(&threshold, "threshold", "t", 10, "drawdown threshold in percent")
	command.MarkFlagRequired("start")
	command.MarkFlagRequired("end")

	return command
}

func withProfile(ctx context.Context) (context.Context, func()) {
	profile, endProfile := domain.NewProfile()
	return domain.NewCtxWithProfile(ctx, profile), func() {
		endProfile()
		logger.FromContext(ctx).Debugw("simulation profile", "totalMs", profile.TotalMs, "spans", profile.Spans)
	}
}

func (c *cli) runsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list ingest runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := c.handler.IngestService.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			return pprint(runs)
		},
	}
}
