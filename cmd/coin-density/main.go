// Command coin-density renders the remaining-coin overlap heatmap for a
// directory of per-run coin position logs, with the high- and low-score coin
// positions drawn on top.
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
	"github.com/banshee-data/coinviz/internal/density"
	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/overlay"
	"github.com/banshee-data/coinviz/internal/render"
	"github.com/banshee-data/coinviz/internal/version"
	"github.com/banshee-data/coinviz/internal/viewer"
	"github.com/google/uuid"
)

var flagKeys = map[string]string{
	"dir":        "density_dir",
	"high":       "high_score_file",
	"low":        "low_score_file",
	"size":       "grid_size",
	"output":     "output_dir",
	"row-policy": "row_policy",
	"serve":      "serve",
	"listen":     "listen",
}

func main() {
	configPath := flag.String("config", "", "Optional YAML or JSON config file")
	flag.String("dir", "", "Directory of remaining-coin position CSV logs")
	flag.String("high", "", "CSV of high-score coin positions")
	flag.String("low", "", "CSV of low-score coin positions")
	flag.Int("size", density.DefaultSize, "Grid side length")
	flag.String("output", "", "Directory to write figures into")
	flag.String("row-policy", "", "Malformed row handling: 'skip_row' or 'fail_file'")
	flag.Bool("serve", false, "Serve the figures over HTTP after rendering")
	flag.String("listen", "", "Listen address for -serve")
	printConfig := flag.Bool("print-config", false, "Print the resolved configuration as YAML and exit")
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
	if *printConfig {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			log.Fatalf("print config: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fsutil.OSFileSystem{}); err != nil {
		log.Fatalf("coin-density: %v", err)
	}
}

// run builds the grid, renders it and optionally serves the result. An empty
// log directory is reported and is not an error. Each run gets a fresh ID that
// tags its log lines, chart subtitles and viewer manifest.
func run(ctx context.Context, cfg *config.Config, fsys fsutil.FileSystem) error {
	runID := uuid.NewString()
	log.Printf("Run %s: coin density from %s", runID, cfg.DensityDir)

	res, err := density.Accumulate(fsys, cfg.DensityDir, density.Options{Size: cfg.GridSize, Policy: cfg.Policy(), RunID: runID})
	if errors.Is(err, density.ErrNoInput) {
		log.Printf("No CSV files in %s; nothing to draw", cfg.DensityDir)
		return nil
	}
	if err != nil {
		return err
	}

	ov, err := overlay.Load(fsys, cfg.HighScoreFile, cfg.LowScoreFile, cfg.Policy())
	if err != nil {
		return err
	}
	log.Printf("Overlay: %d high-score, %d low-score markers", len(ov.HighScore.Markers), len(ov.LowScore.Markers))

	out := &render.Output{FS: fsys, Dir: cfg.OutputDir, HTML: render.HTMLOptions{AssetsHost: cfg.AssetsHost, RunID: runID}}
	paths, err := out.Density(res.Grid, ov)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("Wrote %s", p)
	}

	if !cfg.Serve {
		return nil
	}
	return viewer.NewServer(cfg.Listen, render.DensityTitle, runID, fsys, cfg.OutputDir, paths).Run(ctx)
}
