package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run scoring, coverage analysis, and region mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			if err := p.loadProbes(); err != nil {
				return err
			}
			if err := p.loadHits(); err != nil {
				return err
			}
			if err := p.runScore(); err != nil {
				return err
			}
			if err := p.runCoverage(); err != nil {
				return err
			}
			return p.runMapping()
		},
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Compute specificity scores and extract high quality probes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			if err := p.loadProbes(); err != nil {
				return err
			}
			if err := p.loadHits(); err != nil {
				return err
			}
			return p.runScore()
		},
	}
}

func newCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Analyze probe coverage of the sequence universe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			if err := p.loadProbes(); err != nil {
				return err
			}
			return p.runCoverage()
		},
	}
}

func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Map high specificity probes back to PAV regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			return p.runMapping()
		},
	}
}
