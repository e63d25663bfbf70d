// Package pavmap resolves probe identifiers back to their originating PAV
// (presence/absence variant) regions.
package pavmap

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Probe ids embed their region id as a leading "<token>_<token>-<digits>_"
// prefix, e.g. "1_qLA2-1_upstream_1_pos0" belongs to region "1_qLA2-1".
var regionIDPattern = regexp.MustCompile(`^([^_]+_[^_]+-\d+)_`)

// Grouping maps each region id to the probes resolved to it, in discovery
// order. Report layers sort the lists as needed.
type Grouping map[string][]string

// Mapper resolves probe ids against a known region id set.
type Mapper struct {
	regionIDs     map[string]struct{}
	sortedRegions []string
	logger        *zap.Logger
}

// NewMapper creates a mapper over the known region ids.
func NewMapper(regionIDs map[string]struct{}) *Mapper {
	sorted := make([]string, 0, len(regionIDs))
	for id := range regionIDs {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	return &Mapper{
		regionIDs:     regionIDs,
		sortedRegions: sorted,
		logger:        zap.NewNop(),
	}
}

// SetLogger sets the logger for unresolvable-probe warnings.
func (m *Mapper) SetLogger(l *zap.Logger) {
	m.logger = l
}

// MapProbes resolves each probe id to a region. Pattern extraction wins
// when its captured region id is known; otherwise the known region ids are
// scanned in sorted order for a literal prefix of the probe id. Probes
// matching neither step are returned in unmapped, with a warning each.
// Every probe appears in exactly one of grouping or unmapped.
func (m *Mapper) MapProbes(probeIDs []string) (Grouping, []string) {
	grouping := make(Grouping)
	var unmapped []string

	for _, probeID := range probeIDs {
		if regionID, ok := m.resolve(probeID); ok {
			grouping[regionID] = append(grouping[regionID], probeID)
			continue
		}
		unmapped = append(unmapped, probeID)
		m.logger.Warn("probe maps to no PAV region",
			zap.String("probe", probeID))
	}

	return grouping, unmapped
}

func (m *Mapper) resolve(probeID string) (string, bool) {
	if match := regionIDPattern.FindStringSubmatch(probeID); match != nil {
		if _, known := m.regionIDs[match[1]]; known {
			return match[1], true
		}
	}

	// Fallback: first known region id that is a literal prefix.
	for _, regionID := range m.sortedRegions {
		if strings.HasPrefix(probeID, regionID) {
			return regionID, true
		}
	}

	return "", false
}
