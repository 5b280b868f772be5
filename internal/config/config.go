// Package config holds the run configuration shared by the chart commands.
// Values come from built-in defaults, an optional YAML or JSON file,
// COINVIZ_* environment variables and command-line overrides, in increasing
// order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/coinviz/internal/density"
	"github.com/banshee-data/coinviz/internal/runlog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration of one run.
type Config struct {
	// Coin density inputs
	DensityDir    string `mapstructure:"density_dir" yaml:"density_dir"`
	HighScoreFile string `mapstructure:"high_score_file" yaml:"high_score_file"`
	LowScoreFile  string `mapstructure:"low_score_file" yaml:"low_score_file"`
	GridSize      int    `mapstructure:"grid_size" yaml:"grid_size"`

	// Score trend inputs
	ScoreDir    string `mapstructure:"score_dir" yaml:"score_dir"`
	BaselineDir string `mapstructure:"baseline_dir" yaml:"baseline_dir"`

	RowPolicy string `mapstructure:"row_policy" yaml:"row_policy"`

	// Output
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	AssetsHost string `mapstructure:"assets_host" yaml:"assets_host"`
	Serve      bool   `mapstructure:"serve" yaml:"serve"`
	Listen     string `mapstructure:"listen" yaml:"listen"`
}

const dataLogDir = "Assets/DataLog"

// defaults mirror the directory layout written by the simulation.
var defaults = map[string]any{
	"density_dir":     dataLogDir + "/RemainedCoinPosData/Greedy",
	"high_score_file": dataLogDir + "/HighScoreCoinData.csv",
	"low_score_file":  dataLogDir + "/LowScoreCoinData.csv",
	"grid_size":       density.DefaultSize,
	"score_dir":       dataLogDir + "/ScoreData",
	"baseline_dir":    dataLogDir + "/ScoreData/Greedy",
	"row_policy":      string(runlog.SkipRow),
	"output_dir":      "plots",
	"assets_host":     "",
	"serve":           false,
	"listen":          "localhost:8090",
}

// Default returns the built-in configuration. Unlike Load it ignores the
// environment.
func Default() (*Config, error) {
	return decode(newViper())
}

// Load resolves the configuration. path may be empty; its extension selects
// the format (.yaml, .yml or .json). overrides are keyed like the file keys.
func Load(path string, overrides map[string]any) (*Config, error) {
	vp := newViper()
	vp.SetEnvPrefix("COINVIZ")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	if path != "" {
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml", ".json":
		default:
			return nil, fmt.Errorf("config file must be .yaml, .yml or .json, got %q", ext)
		}
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for k, v := range overrides {
		if _, known := defaults[k]; !known {
			return nil, fmt.Errorf("unknown config key %q", k)
		}
		vp.Set(k, v)
	}
	return decode(vp)
}

func newViper() *viper.Viper {
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}
	return vp
}

func decode(vp *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid_size must be positive, got %d", c.GridSize)
	}
	if !runlog.RowPolicy(c.RowPolicy).Valid() {
		return fmt.Errorf("row_policy must be %q or %q, got %q", runlog.SkipRow, runlog.FailFile, c.RowPolicy)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if c.Serve && c.Listen == "" {
		return fmt.Errorf("listen must be set when serve is enabled")
	}
	return nil
}

// Policy returns the malformed-row policy.
func (c *Config) Policy() runlog.RowPolicy {
	return runlog.RowPolicy(c.RowPolicy)
}

// WriteYAML writes the resolved configuration, suitable as a starting config file.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// FlagOverrides collects the flags explicitly set on fs whose names appear in
// keys, mapped to their config keys. Unset flags are left to the file and
// defaults.
func FlagOverrides(fs *flag.FlagSet, keys map[string]string) map[string]any {
	out := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			out[key] = g.Get()
		} else {
			out[key] = f.Value.String()
		}
	})
	return out
}
