package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/xtding233/gacha-sim/internal/catalog"
	"github.com/xtding233/gacha-sim/internal/config"
	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/report"
	"github.com/xtding233/gacha-sim/internal/session"
)

type options struct {
	pool        string
	n           int
	seed        int64
	pity5       int
	pity4       int
	up5         bool
	up4         bool
	catalogDir  string
	json        bool
	list        bool
	trials      int
	goal        string
	budget      int
	interactive bool
	grid        bool
	tokens      int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "gachasim:", err)
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("gachasim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.pool, "pool", cfg.DefaultPool, "pool id (default: catalog default pool)")
	fs.IntVar(&o.n, "n", 10, "number of draws")
	fs.Int64Var(&o.seed, "seed", -1, "random seed for a reproducible run (-1: crypto random)")
	fs.IntVar(&o.pity5, "pity5", 0, "inherited draws since the last 5-star")
	fs.IntVar(&o.pity4, "pity4", 0, "inherited draws since the last 4-star")
	fs.BoolVar(&o.up5, "up5", false, "inherited guarantee: next 5-star is the featured item")
	fs.BoolVar(&o.up4, "up4", false, "inherited guarantee: next 4-star is a featured item")
	fs.StringVar(&o.catalogDir, "catalog", cfg.CatalogDir, "catalog directory")
	fs.BoolVar(&o.json, "json", false, "print JSON instead of text")
	fs.BoolVar(&o.list, "list", false, "list versions and pools, then exit")
	fs.IntVar(&o.trials, "trials", 0, "run a Monte Carlo simulation with this many trials instead of drawing")
	fs.StringVar(&o.goal, "goal", string(gacha.GoalFirstUP), "Monte Carlo goal: first_hit, first_up, fixed_budget")
	fs.IntVar(&o.budget, "budget", 160, "draws per trial for -goal fixed_budget")
	fs.BoolVar(&o.interactive, "i", false, "interactive session reading commands from stdin")
	fs.BoolVar(&o.grid, "grid", false, "print text results as a poster grid")
	fs.IntVar(&o.tokens, "tokens", 0, "spend this token balance on as many draws as it pays for (overrides -n)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return err
	}
	logger.New(cfg.Logger(), stderr)

	cat := catalog.New(o.catalogDir)
	if o.list {
		return listPools(cat, stdout)
	}

	poolID := o.pool
	if poolID == "" {
		if poolID, err = cat.DefaultPool(); err != nil {
			return err
		}
	}

	var rng gacha.RandomSource
	if o.seed >= 0 {
		rng = gacha.NewSeededRNG(uint64(o.seed))
	}
	state := gacha.PityState{Pity5: o.pity5, Pity4: o.pity4, ForceUp5: o.up5, ForceUp4: o.up4}

	if o.trials > 0 {
		return simulate(ctx, cat, cfg.Rules(), poolID, state, o, rng, stdout)
	}

	s, err := session.New(ctx, cat, poolID, cfg.Rules(), state, rng)
	if err != nil {
		return err
	}
	if o.interactive {
		w := catalog.WatchCatalog(cat, cfg.WatchInterval, func(path string) {
			logger.FromContext(s.Context(ctx)).Info("catalog changed, reloading", "path", path)
		})
		w.Start()
		defer w.Stop()
		return newREPL(s, cat, cfg.Token(), o.json, stdout).run(ctx, stdin)
	}

	n, left := o.n, 0
	if o.tokens > 0 {
		n, left = cfg.Token().DrawsForTokens(o.tokens)
	}
	res, err := s.Draw(ctx, n)
	if err != nil {
		return err
	}
	st := s.State()
	sum := report.Summarize(res, cat, cfg.Token(), &st)
	if o.json {
		return report.WriteJSON(stdout, sum)
	}
	if err := writeSummary(stdout, res, cat, sum, o.grid); err != nil {
		return err
	}
	if o.tokens > 0 {
		_, err = fmt.Fprintf(stdout, "left: %d %s\n", left, sum.Token)
	}
	return err
}

// writeSummary prints sum as a list, or as a poster grid followed by the
// totals.
func writeSummary(w io.Writer, res gacha.Result, names report.Namer, sum report.Summary, grid bool) error {
	if !grid {
		return report.WriteText(w, sum)
	}
	if err := report.WriteGrid(w, res, names, report.DefaultPerRow); err != nil {
		return err
	}
	return report.WriteTotals(w, sum)
}

func simulate(ctx context.Context, cat *catalog.Catalog, rules gacha.Rules, poolID string, state gacha.PityState, o options, rng gacha.RandomSource, stdout io.Writer) error {
	table, err := cat.Resolve(poolID)
	if err != nil {
		return err
	}
	goal := gacha.TrialGoal(o.goal)
	st, err := gacha.RunMonteCarlo(ctx, table, rules, state, goal, o.trials, &gacha.SimBudget{NumDraws: o.budget}, rng)
	if err != nil {
		return err
	}
	return report.WriteStats(stdout, poolID, goal, st)
}

func listPools(cat *catalog.Catalog, stdout io.Writer) error {
	versions, err := cat.Versions()
	if err != nil {
		return err
	}
	def, err := cat.DefaultPool()
	if err != nil {
		return err
	}
	for _, v := range versions {
		ids, err := cat.PoolsForVersion(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\n", v)
		for _, id := range ids {
			mark := ""
			if id == def {
				mark = " (default)"
			}
			fmt.Fprintf(stdout, "  %s%s\n", id, mark)
		}
	}
	return nil
}
