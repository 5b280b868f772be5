// Command score-trend plots score over time for every experiment run, with
// the baseline strategy's runs highlighted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/coinviz/internal/config"
	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/render"
	"github.com/banshee-data/coinviz/internal/trend"
	"github.com/banshee-data/coinviz/internal/version"
	"github.com/banshee-data/coinviz/internal/viewer"
	"github.com/google/uuid"
)

var flagKeys = map[string]string{
	"dir":        "score_dir",
	"baseline":   "baseline_dir",
	"output":     "output_dir",
	"row-policy": "row_policy",
	"serve":      "serve",
	"listen":     "listen",
}

func main() {
	configPath := flag.String("config", "", "Optional YAML or JSON config file")
	flag.String("dir", "", "Directory of experiment score CSV logs")
	flag.String("baseline", "", "Directory of baseline strategy score CSV logs")
	flag.String("output", "", "Directory to write figures into")
	flag.String("row-policy", "", "Malformed row handling: 'skip_row' or 'fail_file'")
	flag.Bool("serve", false, "Serve the figures over HTTP after rendering")
	flag.String("listen", "", "Listen address for -serve")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(*configPath, config.FlagOverrides(flag.CommandLine, flagKeys))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fsutil.OSFileSystem{}); err != nil {
		log.Fatalf("score-trend: %v", err)
	}
}

// run loads the series, logs per-group summaries and renders the figures.
// Missing or entirely unreadable logs are reported and are not an error.
func run(ctx context.Context, cfg *config.Config, fsys fsutil.FileSystem) error {
	runID := uuid.NewString()
	log.Printf("Run %s: score trend from %s and %s", runID, cfg.ScoreDir, cfg.BaselineDir)

	set, err := trend.Load(fsys, cfg.ScoreDir, cfg.BaselineDir, cfg.Policy())
	switch {
	case errors.Is(err, trend.ErrNoInput):
		log.Printf("No CSV files in %s or %s; nothing to draw", cfg.ScoreDir, cfg.BaselineDir)
		return nil
	case errors.Is(err, trend.ErrNoReadableInput):
		log.Printf("Nothing to draw: %v", err)
		return nil
	}
	if err != nil {
		return err
	}

	for _, s := range []trend.Summary{
		trend.Summarise(trend.Experiment, set.Experiment),
		trend.Summarise(trend.Baseline, set.Baseline),
	} {
		if s.Runs == 0 {
			continue
		}
		log.Printf("Results: %s runs=%d final_score=%.2f±%.2f range=[%.2f, %.2f]",
			s.Group, s.Runs, s.Mean, s.StdDev, s.Min, s.Max)
	}

	out := &render.Output{FS: fsys, Dir: cfg.OutputDir, HTML: render.HTMLOptions{AssetsHost: cfg.AssetsHost, RunID: runID}}
	paths, err := out.Trend(set)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("Wrote %s", p)
	}

	if !cfg.Serve {
		return nil
	}
	return viewer.NewServer(cfg.Listen, render.TrendTitle, runID, fsys, cfg.OutputDir, paths).Run(ctx)
}
