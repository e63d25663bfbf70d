package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
	"github.com/Maxy-Ma/core-probe-analysis/internal/score"
)

// ScoreWriter writes the ranked score table in tab-delimited format.
type ScoreWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewScoreWriter creates a new score table writer.
func NewScoreWriter(w io.Writer) *ScoreWriter {
	return &ScoreWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"Probe_ID",
			"Score",
			"Raw_Non_Specificity",
			"Perfect_Matches",
			"Total_Hits",
			"Matched_Targets",
			"Probe_Length",
			"In_FASTA",
		},
	}
}

// WriteHeader writes the column header line.
func (sw *ScoreWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// Write writes one score record row.
func (sw *ScoreWriter) Write(r score.Record) error {
	inFasta := "no"
	if r.InUniverse {
		inFasta = "yes"
	}
	_, err := fmt.Fprintf(sw.w, "%s\t%.2f\t%.4f\t%d\t%d\t%s\t%d\t%s\n",
		r.ProbeID,
		r.Score,
		r.RawNonSpecificity,
		r.PerfectMatches,
		r.TotalHits,
		r.MatchedTargets,
		r.ProbeLength,
		inFasta)
	return err
}

// WriteAll writes the header and every record, then flushes.
func (sw *ScoreWriter) WriteAll(records []score.Record) error {
	if err := sw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if err := sw.Write(r); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// Flush flushes buffered output.
func (sw *ScoreWriter) Flush() error {
	return sw.w.Flush()
}

// WriteHighQualityFASTA writes the selected probe sequences as FASTA.
// When fallback is true the single record is the best available probe below
// the threshold and is flagged as such.
func WriteHighQualityFASTA(w io.Writer, selected []score.Record, universe fasta.Universe, threshold float64, fallback bool) error {
	bw := bufio.NewWriter(w)

	if fallback {
		fmt.Fprintf(bw, "# WARNING: no probes scored at or above %.1f\n", threshold)
		fmt.Fprintf(bw, "# The highest scoring probe is included but may have poor specificity\n")
	} else {
		fmt.Fprintf(bw, "# High quality probes (score >= %.1f)\n", threshold)
	}
	fmt.Fprintf(bw, "# Total: %d probes\n", len(selected))

	for _, r := range selected {
		seq, ok := universe[r.ProbeID]
		if !ok {
			continue
		}
		if fallback {
			fmt.Fprintf(bw, ">%s [LOW_QUALITY_FALLBACK]\n%s\n", r.ProbeID, seq)
		} else {
			fmt.Fprintf(bw, ">%s\n%s\n", r.ProbeID, seq)
		}
	}

	return bw.Flush()
}

// WriteSummary renders the score distribution summary.
func WriteSummary(w io.Writer, sum score.Summary) error {
	bw := bufio.NewWriter(w)

	pct := func(n int) float64 {
		if sum.Count == 0 {
			return 0
		}
		return float64(n) / float64(sum.Count) * 100.0
	}

	fmt.Fprintf(bw, "===== Score summary =====\n")
	fmt.Fprintf(bw, "Probes scored: %d\n", sum.Count)
	fmt.Fprintf(bw, "Average score: %.2f\n", sum.AvgScore)
	fmt.Fprintf(bw, "High specificity (>=80): %d (%.2f%%)\n", sum.High, pct(sum.High))
	fmt.Fprintf(bw, "Medium specificity (60-79): %d (%.2f%%)\n", sum.Medium, pct(sum.Medium))
	fmt.Fprintf(bw, "Low specificity (<60): %d (%.2f%%)\n", sum.Low, pct(sum.Low))
	fmt.Fprintf(bw, "Found in FASTA: %d (%.2f%%)\n", sum.InUniverse, pct(sum.InUniverse))

	return bw.Flush()
}
