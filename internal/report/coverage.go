package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Maxy-Ma/core-probe-analysis/internal/coverage"
)

// WriteCoverage renders the coverage analysis report.
func WriteCoverage(w io.Writer, stats coverage.Stats, meta Meta) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "===== Probe coverage report =====\n")
	fmt.Fprintf(bw, "Run: %s (%s)\n\n", meta.RunID, meta.timestamp())

	fmt.Fprintf(bw, "Probes in FASTA universe: %d\n", stats.TotalInUniverse)
	fmt.Fprintf(bw, "Unique probe ids across BLAST files: %d\n", stats.TotalInHitSets)
	fmt.Fprintf(bw, "Probes found in FASTA: %d\n", stats.FoundCount)
	fmt.Fprintf(bw, "Probes not found in FASTA: %d\n", stats.TotalInHitSets-stats.FoundCount)
	fmt.Fprintf(bw, "Coverage of FASTA universe: %.2f%%\n\n", stats.CoverageRatio)

	fmt.Fprintf(bw, "Per-file statistics:\n")
	fmt.Fprintf(bw, "File\tTotal\tFound\tNot_Found\tFound_Ratio(%%)\n")
	for _, src := range stats.PerSource {
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%.2f\n",
			src.Name, src.Total, src.Found, src.NotFound, src.FoundRatio)
	}

	return bw.Flush()
}
