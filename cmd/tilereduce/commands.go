package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/reduce"
	"github.com/katalvlaran/tilereduce/tileset"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	verbose     bool
	metricsAddr string
}

// reduceFlags override the loaded Config when set on the command line.
type reduceFlags struct {
	config   string
	out      string
	merges   string
	preserve []string
	tries    int
	threads  int
	best     int
	seed     int64
	tau      int
	depth    int
	maxChain int
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:           "tilereduce",
		Short:         "Reduce DNA tile systems by merging tiles or glue ends",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if rf.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if rf.metricsAddr != "" {
				serveMetrics(rf.metricsAddr)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "log every merge at debug level")
	root.PersistentFlags().StringVar(&rf.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(
		newReduceCmd(reduce.KindTiles),
		newReduceCmd(reduce.KindEnds),
		newApplyCmd(),
		newCheckCmd(),
	)

	return root
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server", "addr", addr, "err", err)
		}
	}()
}

func newReduceCmd(kind reduce.Kind) *cobra.Command {
	f := &reduceFlags{}
	what := "tile pairs"
	if kind == reduce.KindEnds {
		what = "glue end pairs"
	}
	cmd := &cobra.Command{
		Use:   kind.String() + " <tileset.yaml>",
		Short: "Merge " + what + " while preserving the chosen properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd, kind, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fl.StringVarP(&f.out, "out", "o", "", "write the best reduced tile set here (default stdout)")
	fl.StringVar(&f.merges, "merges", "", "write the best merge list here")
	fl.StringSliceVarP(&f.preserve, "preserve", "p", nil, "properties to preserve: s1, s2, s22, ld, gs")
	fl.IntVarP(&f.tries, "tries", "n", 0, "number of trials")
	fl.IntVarP(&f.threads, "threads", "j", 0, "concurrent trials")
	fl.IntVar(&f.best, "best", 0, "results to report; 0 reports all")
	fl.Int64Var(&f.seed, "seed", 0, "base RNG seed")
	fl.IntVar(&f.tau, "tau", 0, "cooperativity threshold")
	fl.IntVar(&f.depth, "lattice-depth", 0, "branch depth of lattice-defect detection")
	fl.IntVar(&f.maxChain, "max-chain", 0, "repair chain bound")

	return cmd
}

// load reads the file and environment configuration, then applies the
// flags the user set explicitly.
func (f *reduceFlags) load(cmd *cobra.Command) (reduce.Config, error) {
	cfg, err := reduce.LoadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	if fl.Changed("preserve") {
		cfg.Preserve = f.preserve
	}
	if fl.Changed("tries") {
		cfg.Tries = f.tries
	}
	if fl.Changed("threads") {
		cfg.Threads = f.threads
	}
	if fl.Changed("best") {
		cfg.Best = f.best
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("tau") {
		cfg.Tau = f.tau
	}
	if fl.Changed("lattice-depth") {
		cfg.LatticeDepth = f.depth
	}
	if fl.Changed("max-chain") {
		cfg.MaxChain = f.maxChain
	}

	return cfg, cfg.Validate()
}

func runReduce(cmd *cobra.Command, kind reduce.Kind, f *reduceFlags, path string) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}
	ts, err := tileset.LoadFile(path)
	if err != nil {
		return err
	}

	opts := append(cfg.Options(), reduce.WithLogger(slog.Default()), reduce.WithReturnTileSet())
	drive := reduce.ReduceTiles
	if kind == reduce.KindEnds {
		drive = reduce.ReduceEnds
	}
	res, err := drive(cmd.Context(), ts, opts...)
	if err != nil {
		return err
	}

	report := cmd.OutOrStdout()
	if f.out == "" {
		report = cmd.ErrOrStderr()
	}
	for _, r := range res {
		fmt.Fprintf(report, "trial %d: score %d, %d glue classes, %d accepted, %d repaired\n",
			r.Trial, r.Score, r.Map.Classes(), r.Stats.Accepted, r.Stats.Repaired)
	}

	best := res[0]
	if f.merges != "" {
		gt, err := glue.FromTileSet(ts)
		if err != nil {
			return err
		}
		if err := writeYAML(f.merges, reduce.MergeSpec(gt, best.Map)); err != nil {
			return err
		}
	}

	return writeTileSet(cmd.OutOrStdout(), f.out, best.TileSet)
}

func newApplyCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "apply <tileset.yaml> <merges.yaml>",
		Short: "Apply a stored merge list to a tile set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := tileset.LoadFile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var pairs []reduce.MergePair
			if err := yaml.Unmarshal(data, &pairs); err != nil {
				return fmt.Errorf("parse %s: %w", args[1], err)
			}
			gt, err := glue.FromTileSet(ts)
			if err != nil {
				return err
			}
			m, err := reduce.MapFromSpec(gt, pairs)
			if err != nil {
				return err
			}
			applied, err := reduce.Apply(ts, gt, m)
			if err != nil {
				return err
			}

			return writeTileSet(cmd.OutOrStdout(), out, applied)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the tile set here (default stdout)")

	return cmd
}

func newCheckCmd() *cobra.Command {
	var (
		tau   int
		depth int
	)
	cmd := &cobra.Command{
		Use:   "check <tileset.yaml>",
		Short: "Report nondeterminism and lattice defects of a tile set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := tileset.LoadFile(args[0])
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), ts, tau, depth)
		},
	}
	cmd.Flags().IntVar(&tau, "tau", facet.DefaultTau, "cooperativity threshold")
	cmd.Flags().IntVar(&depth, "lattice-depth", check.DefaultLatticeDepth, "branch depth of lattice-defect detection")

	return cmd
}

func runCheck(ctx context.Context, w io.Writer, ts *tileset.TileSet, tau, depth int) error {
	gt, ft, err := facet.FromTileSet(ts, tau)
	if err != nil {
		return err
	}
	m := gt.Identity()

	nd := check.Nondeterministic(ft, gt, m)
	fmt.Fprintf(w, "tiles: %d (%d with rotations), glues: %d\n", len(ts.RealTiles()), len(ft.Tiles()), gt.Len())
	fmt.Fprintf(w, "nondeterministic pairs: %d\n", len(nd))
	for _, p := range nd {
		fmt.Fprintf(w, "  %s / %s\n", p[0], p[1])
	}

	for _, c := range []check.Corner{check.CornerEast, check.CornerWest} {
		if err := ctx.Err(); err != nil {
			return err
		}
		defects, err := check.LatticeDefects(ft, gt, m, c, depth)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "lattice defects (%s, depth %d): %d\n", c, depth, len(defects))
		for _, d := range defects {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}

	return nil
}

func writeTileSet(stdout io.Writer, path string, ts *tileset.TileSet) error {
	if path == "" {
		return ts.Save(stdout)
	}

	return ts.SaveFile(path)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
