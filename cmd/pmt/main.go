package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/komsit37/pmt/pkg/pmt/config"
	"github.com/komsit37/pmt/pkg/pmt/directory"
	"github.com/komsit37/pmt/pkg/pmt/filter"
	"github.com/komsit37/pmt/pkg/pmt/fundamentals"
	"github.com/komsit37/pmt/pkg/pmt/news"
	"github.com/komsit37/pmt/pkg/pmt/quote"
	"github.com/komsit37/pmt/pkg/pmt/refresh"
	"github.com/komsit37/pmt/pkg/pmt/render"
	"github.com/komsit37/pmt/pkg/pmt/report"
	"github.com/komsit37/pmt/pkg/pmt/score"
	"github.com/komsit37/pmt/pkg/pmt/store"
	"github.com/komsit37/pmt/pkg/pmt/types"
	"github.com/komsit37/pmt/pkg/pmt/yahoo"
)

var (
	cfg     config.Config
	logger  log.Logger
	verbose bool
	noColor bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pmt",
		Short:        "Portfolio market terminal: watchlist quotes, headlines and a templated analysis report",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger = log.Logger{
				Level:  log.InfoLevel,
				Writer: &log.ConsoleWriter{ColorOutput: !noColor},
			}
			if verbose {
				logger.Level = log.DebugLevel
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")

	// Bare `pmt` renders the full dashboard.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	}

	root.AddCommand(newShowCmd(), newRefreshCmd(), newNewsCmd(), newAddCmd(), newMvCmd(), newRmCmd(), newReportCmd(), newDirCmd())
	return root
}

// newSession wires the store and external services from config.
func newSession() (*refresh.Session, error) {
	st, err := store.Open(cfg.WatchlistPath)
	if err != nil {
		return nil, err
	}
	yc := yahoo.NewClient(
		yahoo.WithTimeout(cfg.FetchTimeout),
		yahoo.WithRateLimit(cfg.RateLimit),
		yahoo.WithLogger(logger),
	)
	svc := quote.NewService(yc, quote.Ranges{Short: cfg.ShortRange, Volatility: cfg.VolRange}, logger)
	cached := quote.NewCache(svc, cfg.CacheTTL, cfg.CacheSize)
	est := fundamentals.NewEstimator(yc, logger)
	nf := news.NewFetcher(cfg.NewsPerSource, cfg.FetchTimeout, logger)
	return refresh.NewSession(st, cached, est, nf, cfg.Feeds, logger), nil
}

func renderOpts() render.Options {
	return render.Options{Color: !noColor, Width: render.TerminalWidth()}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Refresh everything and render the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd)
		},
	}
}

func runShow(cmd *cobra.Command) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s.RefreshAll(ctx)
	s.RefreshNews(ctx)
	w := cmd.OutOrStdout()
	render.Watchlist(w, s.Store.Entries(), s.Results(), renderOpts())
	fmt.Fprintln(w)
	render.News(w, s.Headlines())
	fmt.Fprintf(w, "\nlast update: %s\n", s.LastUpdate().Format("2006-01-02 15:04:05"))
	return nil
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh quotes and render the watchlist tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			s.RefreshAll(cmd.Context())
			render.Watchlist(cmd.OutOrStdout(), s.Store.Entries(), s.Results(), renderOpts())
			fmt.Fprintf(cmd.OutOrStdout(), "\nlast update: %s\n", s.LastUpdate().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Refresh and render the headline block only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			s.RefreshNews(cmd.Context())
			render.News(cmd.OutOrStdout(), s.Headlines())
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name|symbol> [symbol]",
		Short: "Add or modify a watchlist entry (directory names resolve their symbol)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, symbol string
			switch len(args) {
			case 2:
				name, symbol = args[0], args[1]
			case 1:
				if sym, ok := directory.Lookup(args[0]); ok {
					name, symbol = args[0], sym
				} else {
					// Treat the lone argument as a symbol and look up a
					// display name for it.
					symbol = args[0]
					resolver := quote.NewNameResolver(cfg.FetchTimeout)
					name = resolver.Resolve(cmd.Context(), symbol)
					if name == "" {
						name = symbol
					}
				}
			}
			if strings.TrimSpace(name) == "" || strings.TrimSpace(symbol) == "" {
				// Incomplete input is ignored, same as the dashboard form.
				return nil
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			if err := s.Store.Upsert(name, symbol); err != nil {
				return err
			}
			s.PatchEntry(cmd.Context(), name)
			r, _ := s.Result(name)
			row := map[string]types.Result{name: r}
			render.Watchlist(cmd.OutOrStdout(), []types.Entry{{Name: name, Symbol: symbol}}, row, renderOpts())
			return nil
		},
	}
}

func newMvCmd() *cobra.Command {
	var up, down, top, bottom bool
	cmd := &cobra.Command{
		Use:   "mv <selection>",
		Short: "Move selected entries (one adjacent step for --up/--down; --top/--bottom are one-shot)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := pickDirection(up, down, top, bottom)
			if err != nil {
				return err
			}
			f, err := filter.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.WatchlistPath)
			if err != nil {
				return err
			}
			if err := st.Move(filter.Selection(f, st.Entries()), dir); err != nil {
				return err
			}
			for _, e := range st.Entries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Name, e.Symbol)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&up, "up", false, "move selected entries up one step")
	cmd.Flags().BoolVar(&down, "down", false, "move selected entries down one step")
	cmd.Flags().BoolVar(&top, "top", false, "move selected entries to the top")
	cmd.Flags().BoolVar(&bottom, "bottom", false, "move selected entries to the bottom")
	return cmd
}

func pickDirection(up, down, top, bottom bool) (store.Direction, error) {
	var (
		dir   store.Direction
		count int
	)
	if up {
		dir, count = store.Up, count+1
	}
	if down {
		dir, count = store.Down, count+1
	}
	if top {
		dir, count = store.Top, count+1
	}
	if bottom {
		dir, count = store.Bottom, count+1
	}
	if count != 1 {
		return 0, fmt.Errorf("choose exactly one of --up, --down, --top, --bottom")
	}
	return dir, nil
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <selection>",
		Short: "Delete selected entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			s, err := newSession()
			if err != nil {
				return err
			}
			removed, err := s.Store.Delete(filter.Selection(f, s.Store.Entries()))
			if err != nil {
				return err
			}
			s.DropResults(removed)
			for _, name := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
			}
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing matched")
			}
			return nil
		},
	}
}

func newDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "List the autocomplete directory of well-known instruments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleColoredDark)
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateRows = false
			tw.Style().Options.SeparateColumns = false
			tw.AppendHeader(table.Row{"NAME", "SYM"})
			for _, p := range directory.Pairs() {
				tw.AppendRow(table.Row{p.Name, p.Symbol})
			}
			tw.Render()
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var modelFlag, algoFlag, selectFlag string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Refresh quotes and generate the templated analysis report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := report.ParseModel(modelFlag)
			if err != nil {
				return err
			}
			algo, err := report.ParseAlgorithm(algoFlag)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s.RefreshAll(ctx)

			entries := s.Store.Entries()
			selected := selectAll(entries)
			if selectFlag != "" {
				f, err := filter.Parse(selectFlag)
				if err != nil {
					return err
				}
				selected = filter.Selection(f, entries)
			}

			scored := score.Selection(entries, s.Results(), selected, score.ParseRuleSet(cfg.Rules))
			rep := report.Build(report.Input{
				GeneratedAt: s.LastUpdate(),
				Model:       model,
				Algorithm:   algo,
				Fear:        indicator(s, cfg.FearName),
				Sector:      indicator(s, cfg.SectorName),
				Entries:     scored,
				Benchmarks:  benchmarks(entries, s.Results()),
			})
			return rep.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&modelFlag, "model", "Autonomous AI", "AI model label: "+strings.Join(report.ModelNames(), ", "))
	cmd.Flags().StringVar(&algoFlag, "algo", "Quant Analysis", "algorithm label: "+strings.Join(report.AlgorithmNames(), ", "))
	cmd.Flags().StringVar(&selectFlag, "select", "", "selection expression (default: whole watchlist)")
	return cmd
}

func selectAll(entries []types.Entry) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		out[e.Name] = true
	}
	return out
}

// indicator reads a reference gauge from the results map by display name.
func indicator(s *refresh.Session, name string) *report.Indicator {
	if name == "" {
		return nil
	}
	r, ok := s.Result(name)
	if !ok || !r.Available() {
		return nil
	}
	sym, _ := s.Store.Symbol(name)
	return &report.Indicator{
		Name:       name,
		Change:     r.ChangePct,
		RatioGauge: quote.ParseSpec(sym).Kind == quote.KindRatio,
	}
}

// benchmarks assembles reference-level lines for configured names with a
// live price this cycle, in watchlist order.
func benchmarks(entries []types.Entry, results map[string]types.Result) []report.Benchmark {
	var out []report.Benchmark
	for _, e := range entries {
		ref, ok := cfg.Benchmarks[e.Name]
		if !ok {
			continue
		}
		r, ok := results[e.Name]
		if !ok || !r.Available() {
			continue
		}
		out = append(out, report.Benchmark{Name: e.Name, Symbol: e.Symbol, Price: *r.Price, Reference: ref})
	}
	return out
}
