package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Maxy-Ma/core-probe-analysis/internal/blast"
	"github.com/Maxy-Ma/core-probe-analysis/internal/config"
	"github.com/Maxy-Ma/core-probe-analysis/internal/coverage"
	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
	"github.com/Maxy-Ma/core-probe-analysis/internal/pavmap"
	"github.com/Maxy-Ma/core-probe-analysis/internal/report"
	"github.com/Maxy-Ma/core-probe-analysis/internal/score"
)

// Result and report file names, relative to the configured directories.
const (
	scoreResultsFile   = "probe_scores.txt"
	highQualityFile    = "high_quality_probes.fasta"
	unmappedFile       = "unmapped_probes.txt"
	scoreSummaryFile   = "score_summary.txt"
	coverageReportFile = "probe_coverage_report.txt"
	mappingTextFile    = "probe_mapping_results.txt"
	mappingCSVFile     = "probe_mapping_results.csv"
	mappingHTMLFile    = "probe_mapping_results.html"
)

// pipeline carries shared state across the analysis stages.
type pipeline struct {
	cfg    config.Config
	logger *zap.Logger
	meta   report.Meta

	probes  fasta.Universe
	store   *blast.Store
	records []score.Record
}

// newPipeline loads the configuration, builds the logger, and bootstraps
// the output directories.
func newPipeline() (*pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	for _, dir := range []string{cfg.Output.ResultsDir, cfg.Output.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	return &pipeline{
		cfg:    cfg,
		logger: logger,
		meta:   report.NewMeta(cfg.Params.ScoreThreshold),
	}, nil
}

func (p *pipeline) close() {
	_ = p.logger.Sync()
}

func (p *pipeline) resultPath(name string) string {
	return filepath.Join(p.cfg.Output.ResultsDir, name)
}

func (p *pipeline) reportPath(name string) string {
	return filepath.Join(p.cfg.Output.ReportsDir, name)
}

// loadProbes reads the probe FASTA universe. Required by every stage.
func (p *pipeline) loadProbes() error {
	if p.cfg.Input.Probes == "" {
		return fmt.Errorf("no probe FASTA configured (set input.probes or --probes)")
	}

	u, err := fasta.Load(p.cfg.Input.Probes)
	if err != nil {
		return fmt.Errorf("load probes: %w", err)
	}
	p.probes = u
	p.logger.Info("loaded probe sequences",
		zap.String("file", p.cfg.Input.Probes),
		zap.Int("count", len(u)))
	return nil
}

// loadHits merges all BLAST files into the hit store.
func (p *pipeline) loadHits() error {
	if len(p.cfg.Input.Blast) == 0 {
		return fmt.Errorf("no BLAST files configured or detected in %q", p.cfg.Input.DataDir)
	}

	st := blast.NewStore()
	st.SetLogger(p.logger)
	if err := st.LoadFiles(p.cfg.Input.Blast); err != nil {
		return fmt.Errorf("load BLAST results: %w", err)
	}
	p.store = st
	p.logger.Info("loaded BLAST results",
		zap.Int("files", len(p.cfg.Input.Blast)),
		zap.Int("probes", st.Len()),
		zap.Int("malformed", st.Malformed()))
	return nil
}

// runScore executes the scoring stage: parallel batch scoring, the ranked
// score table, the score summary, and the high quality probe FASTA.
func (p *pipeline) runScore() error {
	scorer := score.NewScorer(p.probes)
	scorer.SetLogger(p.logger)
	if p.cfg.Params.FilterHits {
		scorer.SetHitFilter(p.cfg.Params.MinBitScore, p.cfg.Params.MaxEValue)
	}

	p.records = scorer.ScoreAll(p.store, p.cfg.Params.ChunkSize, p.cfg.Params.Workers)
	p.logger.Info("scoring complete", zap.Int("records", len(p.records)))

	if err := p.writeFile(p.resultPath(scoreResultsFile), func(w io.Writer) error {
		return report.NewScoreWriter(w).WriteAll(p.records)
	}); err != nil {
		return err
	}

	sum := score.Summarize(p.records)
	p.logger.Info("score summary",
		zap.Float64("avg", sum.AvgScore),
		zap.Int("high", sum.High),
		zap.Int("medium", sum.Medium),
		zap.Int("low", sum.Low))
	if err := p.writeFile(p.reportPath(scoreSummaryFile), func(w io.Writer) error {
		return report.WriteSummary(w, sum)
	}); err != nil {
		return err
	}

	selected, fallback := score.SelectHighQuality(p.records, p.cfg.Params.ScoreThreshold)
	if fallback {
		p.logger.Warn("no probes above threshold, keeping best scoring probe",
			zap.Float64("threshold", p.cfg.Params.ScoreThreshold),
			zap.String("probe", selected[0].ProbeID),
			zap.Float64("score", selected[0].Score))
	}
	return p.writeFile(p.resultPath(highQualityFile), func(w io.Writer) error {
		return report.WriteHighQualityFASTA(w, selected, p.probes, p.cfg.Params.ScoreThreshold, fallback)
	})
}

// runCoverage executes the coverage stage over per-file hit id sets.
func (p *pipeline) runCoverage() error {
	perSource := make(map[string]map[string]struct{}, len(p.cfg.Input.Blast))
	for _, path := range p.cfg.Input.Blast {
		st := blast.NewStore()
		st.SetLogger(p.logger)
		if err := st.LoadFile(path); err != nil {
			return fmt.Errorf("load BLAST results: %w", err)
		}
		perSource[filepath.Base(path)] = st.ProbeIDSet()
	}

	stats := coverage.Aggregate(p.probes.IDs(), perSource)
	p.logger.Info("coverage analysis complete",
		zap.Int("universe", stats.TotalInUniverse),
		zap.Int("hit_ids", stats.TotalInHitSets),
		zap.Float64("coverage_pct", stats.CoverageRatio))

	return p.writeFile(p.reportPath(coverageReportFile), func(w io.Writer) error {
		return report.WriteCoverage(w, stats, p.meta)
	})
}

// runMapping resolves high specificity probes to PAV regions and writes
// the text, CSV, and HTML mapping reports.
func (p *pipeline) runMapping() error {
	if p.cfg.Input.PAV == "" {
		return fmt.Errorf("no PAV FASTA configured (set input.pav or --pav)")
	}

	pav, err := fasta.Load(p.cfg.Input.PAV)
	if err != nil {
		return fmt.Errorf("load PAV sequences: %w", err)
	}
	p.logger.Info("loaded PAV sequences",
		zap.String("file", p.cfg.Input.PAV),
		zap.Int("count", len(pav)))

	probeIDs, err := p.highQualityProbeIDs()
	if err != nil {
		return err
	}
	if len(probeIDs) == 0 {
		p.logger.Warn("no high specificity probes to map")
		return nil
	}

	mapper := pavmap.NewMapper(pav.IDs())
	mapper.SetLogger(p.logger)
	grouping, unmapped := mapper.MapProbes(probeIDs)

	p.logger.Info("mapping complete",
		zap.Int("probes", len(probeIDs)),
		zap.Int("regions", len(grouping)),
		zap.Int("unmapped", len(unmapped)))

	if len(unmapped) > 0 {
		if err := p.writeFile(p.resultPath(unmappedFile), func(w io.Writer) error {
			return report.WriteUnmapped(w, unmapped)
		}); err != nil {
			return err
		}
	}

	if err := p.writeFile(p.reportPath(mappingTextFile), func(w io.Writer) error {
		return report.WriteMappingText(w, grouping, pav, p.meta, len(probeIDs))
	}); err != nil {
		return err
	}
	if err := p.writeFile(p.reportPath(mappingCSVFile), func(w io.Writer) error {
		return report.WriteMappingCSV(w, grouping, pav)
	}); err != nil {
		return err
	}
	return p.writeFile(p.reportPath(mappingHTMLFile), func(w io.Writer) error {
		return report.WriteMappingHTML(w, grouping, pav, p.meta, len(probeIDs))
	})
}

// highQualityProbeIDs returns the probes to map: the threshold selection
// when scoring ran in this process, otherwise the previously written high
// quality FASTA.
func (p *pipeline) highQualityProbeIDs() ([]string, error) {
	if p.records != nil {
		selected, _ := score.SelectHighQuality(p.records, p.cfg.Params.ScoreThreshold)
		ids := make([]string, 0, len(selected))
		for _, r := range selected {
			ids = append(ids, r.ProbeID)
		}
		return ids, nil
	}

	path := p.resultPath(highQualityFile)
	u, err := fasta.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load high quality probes (run the score stage first): %w", err)
	}
	ids := make([]string, 0, len(u))
	for id := range u {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *pipeline) writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Info("wrote report", zap.String("path", path))
	return nil
}
