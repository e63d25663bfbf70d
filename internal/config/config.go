// Package config defines the pipeline configuration and its viper loading.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/spf13/viper"
)

// blastFilePattern matches the alignment output files auto-detected in the
// data directory.
const blastFilePattern = "extracted_blast_out_*.txt"

// Input names the pipeline input files.
type Input struct {
	Probes  string   `mapstructure:"probes"`
	PAV     string   `mapstructure:"pav"`
	Blast   []string `mapstructure:"blast"`
	DataDir string   `mapstructure:"data_dir"`
}

// Output names the directories reports are written to.
type Output struct {
	ResultsDir string `mapstructure:"results_dir"`
	ReportsDir string `mapstructure:"reports_dir"`
}

// Params holds the scoring and scheduling knobs.
type Params struct {
	ChunkSize      int     `mapstructure:"chunk_size"`
	Workers        int     `mapstructure:"workers"`
	ScoreThreshold float64 `mapstructure:"score_threshold"`
	MinBitScore    float64 `mapstructure:"min_bit_score"`
	MaxEValue      float64 `mapstructure:"max_e_value"`
	FilterHits     bool    `mapstructure:"filter_hits"`
}

// Config is the explicit configuration passed into each component.
type Config struct {
	Input  Input  `mapstructure:"input"`
	Output Output `mapstructure:"output"`
	Params Params `mapstructure:"params"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.data_dir", "data")
	v.SetDefault("output.results_dir", "results")
	v.SetDefault("output.reports_dir", "reports")
	v.SetDefault("params.chunk_size", 100)
	v.SetDefault("params.workers", defaultWorkers())
	v.SetDefault("params.score_threshold", 80.0)
	v.SetDefault("params.min_bit_score", 0.0)
	v.SetDefault("params.max_e_value", 10.0)
	v.SetDefault("params.filter_hits", false)
}

func defaultWorkers() int {
	return min(16, 2*runtime.NumCPU())
}

// Load unmarshals a viper instance into a Config, auto-detecting BLAST
// files in the data directory when no explicit list is configured.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Input.Blast) == 0 && cfg.Input.DataDir != "" {
		detected, err := DetectBlastFiles(cfg.Input.DataDir)
		if err != nil {
			return Config{}, err
		}
		cfg.Input.Blast = detected
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DetectBlastFiles globs the data directory for alignment output files,
// returning them in sorted order.
func DetectBlastFiles(dataDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, blastFilePattern))
	if err != nil {
		return nil, fmt.Errorf("scan data directory: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Validate checks numeric parameter sanity.
func (c Config) Validate() error {
	if c.Params.ChunkSize <= 0 {
		return fmt.Errorf("params.chunk_size must be positive, got %d", c.Params.ChunkSize)
	}
	if c.Params.Workers <= 0 {
		return fmt.Errorf("params.workers must be positive, got %d", c.Params.Workers)
	}
	if c.Params.ScoreThreshold < 0 || c.Params.ScoreThreshold > 100 {
		return fmt.Errorf("params.score_threshold must be in [0,100], got %g", c.Params.ScoreThreshold)
	}
	return nil
}
