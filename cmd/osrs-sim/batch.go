package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/udisondev/osrs-sim/internal/game/eval"
)

type rankedJSON struct {
	Rank   int          `json:"rank,omitempty"`
	Name   string       `json:"name"`
	Result *eval.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
	Cached bool         `json:"cached"`
}

func cmdBatch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("batch")
	var src sources
	src.bind(fs, a)
	candidatesPath := fs.String("candidates", "", "JSON file with an array of {name, player, build, target} (required)")
	workers := fs.Int("workers", a.cfg.Batch.Workers, "concurrent evaluations (0 = GOMAXPROCS)")
	asJSON := fs.Bool("json", false, "print the ranking as JSON")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if *candidatesPath == "" {
		fmt.Fprintln(fs.Output(), "batch: --candidates is required")
		fs.Usage()
		return errUsage
	}

	k, err := src.kernel(ctx, a)
	if err != nil {
		return err
	}
	candidates, err := eval.ReadFile[[]eval.Candidate](*candidatesPath, "candidates")
	if err != nil {
		return err
	}

	b := eval.NewBatch(k, *workers)
	scored, err := b.Score(ctx, candidates)
	if err != nil {
		return err
	}
	hits, misses := b.CacheStats()
	slog.Info("batch scored", "candidates", len(scored), "cache_hits", hits, "cache_misses", misses)

	order := eval.Rank(scored)
	if *asJSON {
		return writeJSON(a.out, rankedView(scored, order))
	}
	return printRanking(a.out, scored, order)
}

// rankedView lists successful candidates in rank order, then failures in input order.
func rankedView(scored []eval.Scored, order []int) []rankedJSON {
	out := make([]rankedJSON, 0, len(scored))
	for pos, i := range order {
		s := scored[i]
		out = append(out, rankedJSON{Rank: pos + 1, Name: s.Name, Result: s.Result, Cached: s.Cached})
	}
	for _, s := range scored {
		if s.Err != nil {
			out = append(out, rankedJSON{Name: s.Name, Error: s.Err.Error()})
		}
	}
	return out
}

func printRanking(w io.Writer, scored []eval.Scored, order []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tDPS\tMAX HIT\tACCURACY\tSPEED")
	for pos, i := range order {
		r := scored[i].Result
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%d\t%.2f%%\t%d\n",
			pos+1, scored[i].Name, r.DPSFloat(), r.MaxHit, r.AccuracyFloat()*100, r.Interval)
	}
	for _, s := range scored {
		if s.Err != nil {
			fmt.Fprintf(tw, "-\t%s\terror: %v\t\t\t\n", s.Name, s.Err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing ranking: %w", err)
	}
	return nil
}
