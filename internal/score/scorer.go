// Package score computes per-probe specificity scores from BLAST hits.
package score

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Maxy-Ma/core-probe-analysis/internal/blast"
	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
)

// Score bounds and overrides.
const (
	// MaxScore is given to probes with no usable hits at all.
	MaxScore = 100.0
	// MissingSequenceCap limits the score of probes absent from the
	// sequence universe.
	MissingSequenceCap = 30.0
)

// Record is the scoring result for one probe.
type Record struct {
	ProbeID           string
	Score             float64
	RawNonSpecificity float64
	PerfectMatches    int
	TotalHits         int
	MatchedTargets    string // distinct target ids, sorted, comma-joined
	ProbeLength       int
	InUniverse        bool
}

// Scorer computes specificity scores against a sequence universe.
// The universe is read-only; Scorer is safe for concurrent use.
type Scorer struct {
	universe    fasta.Universe
	minBitScore float64
	maxEValue   float64
	filterHits  bool
	logger      *zap.Logger

	scoreFn func(probeID string, hits []blast.Hit) Record
}

// NewScorer creates a scorer over the given sequence universe.
func NewScorer(u fasta.Universe) *Scorer {
	s := &Scorer{
		universe: u,
		logger:   zap.NewNop(),
	}
	s.scoreFn = s.Score
	return s
}

// SetLogger sets the logger for warning and progress messages.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetHitFilter enables the bit-score / e-value pre-filter. Hits below
// minBitScore or above maxEValue are excluded before scoring and count
// toward nothing.
func (s *Scorer) SetHitFilter(minBitScore, maxEValue float64) {
	s.minBitScore = minBitScore
	s.maxEValue = maxEValue
	s.filterHits = true
}

// Score computes the specificity record for one probe.
//
// Each retained hit contributes nident/probeLength to the raw
// non-specificity index, where nident = (pident/100) * alignment length.
// The final score is 100 / (1 + rawNonSpecificity), with two overrides:
// no hits at all scores 100, and a probe without a known sequence is
// capped at 30.
func (s *Scorer) Score(probeID string, hits []blast.Hit) Record {
	probeLength := s.universe.Length(probeID)
	inUniverse := s.universe.Contains(probeID)

	var (
		rawNonSpecificity float64
		totalHits         int
		perfectMatches    int
	)
	targets := make(map[string]struct{})

	for _, h := range hits {
		if s.filterHits && (h.BitScore < s.minBitScore || h.EValue > s.maxEValue) {
			continue
		}

		targets[h.TargetID] = struct{}{}

		nident := (h.PIdent / 100.0) * float64(h.Length)
		if probeLength > 0 {
			rawNonSpecificity += nident / float64(probeLength)
		}

		if h.PerfectMatch() {
			perfectMatches++
		}
		totalHits++
	}

	finalScore := 100.0 / (1.0 + rawNonSpecificity)

	if totalHits == 0 {
		// Absence of evidence is treated as maximal specificity.
		finalScore = MaxScore
	}

	if !inUniverse {
		finalScore = math.Min(finalScore, MissingSequenceCap)
		s.logger.Warn("probe has no sequence in universe, capping score",
			zap.String("probe", probeID),
			zap.Float64("cap", MissingSequenceCap))
	}

	return Record{
		ProbeID:           probeID,
		Score:             round(finalScore, 2),
		RawNonSpecificity: round(rawNonSpecificity, 4),
		PerfectMatches:    perfectMatches,
		TotalHits:         totalHits,
		MatchedTargets:    joinTargets(targets),
		ProbeLength:       probeLength,
		InUniverse:        inUniverse,
	}
}

func joinTargets(targets map[string]struct{}) string {
	if len(targets) == 0 {
		return ""
	}
	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
