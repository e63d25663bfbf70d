// Package main provides the probe-analysis command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Maxy-Ma/core-probe-analysis/internal/config"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "probe-analysis",
		Short: "Probe specificity scoring, coverage analysis, and PAV region mapping",
		Long: `probe-analysis evaluates designed probe sequences against BLAST search
output: it computes a per-probe specificity score, measures how well a
probe set covers the sequence universe, and maps high specificity probes
back to their originating PAV regions.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initViper(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ~/.probe-analysis.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.String("probes", "", "probe FASTA file")
	pf.String("pav", "", "PAV region FASTA file")
	pf.String("data-dir", "", "directory scanned for BLAST output files")
	pf.StringSlice("blast", nil, "explicit BLAST output files (overrides auto-detection)")
	pf.String("results-dir", "", "directory for result files")
	pf.String("reports-dir", "", "directory for report files")
	pf.Int("chunk-size", 0, "probes per scoring batch")
	pf.Int("workers", 0, "scoring worker count")
	pf.Float64("threshold", 0, "high specificity score threshold")
	pf.Bool("filter-hits", false, "enforce min bit score / max e-value on hits")

	root.AddCommand(newRunCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newCoverageCmd())
	root.AddCommand(newMapCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initViper wires the config file and flag overrides into viper.
func initViper(cmd *cobra.Command) error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".probe-analysis")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine, defaults and flags apply; anything
		// else (unreadable or malformed file) is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	flagKeys := map[string]string{
		"probes":      "input.probes",
		"pav":         "input.pav",
		"data-dir":    "input.data_dir",
		"blast":       "input.blast",
		"results-dir": "output.results_dir",
		"reports-dir": "output.reports_dir",
		"chunk-size":  "params.chunk_size",
		"workers":     "params.workers",
		"threshold":   "params.score_threshold",
		"filter-hits": "params.filter_hits",
	}
	for flagName, key := range flagKeys {
		f := cmd.Root().PersistentFlags().Lookup(flagName)
		if f == nil || !f.Changed {
			continue
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			viper.Set(key, sv.GetSlice())
		} else {
			viper.Set(key, f.Value.String())
		}
	}

	return nil
}

// loadConfig materializes the validated configuration.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// newLogger builds the CLI logger.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}
