package blast

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Store maps each probe identifier to its ordered hit list, merged across
// one or more BLAST output files. Hits keep the order in which the files
// were processed; probes keep first-seen order.
type Store struct {
	hits      map[string][]Hit
	order     []string
	malformed int
	logger    *zap.Logger
}

// NewStore creates an empty hit store.
func NewStore() *Store {
	return &Store{
		hits:   make(map[string][]Hit),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for malformed-record diagnostics.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Add appends a hit to its probe's list.
func (s *Store) Add(h Hit) {
	if _, ok := s.hits[h.ProbeID]; !ok {
		s.order = append(s.order, h.ProbeID)
	}
	s.hits[h.ProbeID] = append(s.hits[h.ProbeID], h)
}

// LoadFile reads one BLAST tabular file (plain or gzipped) into the store.
// Comment and blank lines are skipped; malformed records are dropped,
// counted, and logged.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open BLAST file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return s.load(reader, filepath.Base(path))
}

// LoadFiles merges multiple BLAST files in order. Any unreadable file
// aborts the load.
func (s *Store) LoadFiles(paths []string) error {
	for _, path := range paths {
		if err := s.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) load(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		h, ok := ParseHit(line)
		if !ok {
			s.malformed++
			s.logger.Warn("dropping malformed BLAST record",
				zap.String("source", source),
				zap.Int("line", lineNo))
			continue
		}
		s.Add(h)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan BLAST file: %w", err)
	}
	return nil
}

// Hits returns the hit list for a probe (nil when unknown).
func (s *Store) Hits(probeID string) []Hit {
	return s.hits[probeID]
}

// ProbeIDs returns probe identifiers in first-seen order.
func (s *Store) ProbeIDs() []string {
	return s.order
}

// ProbeIDSet returns the probe identifiers as a set.
func (s *Store) ProbeIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.order))
	for _, id := range s.order {
		ids[id] = struct{}{}
	}
	return ids
}

// Len returns the number of distinct probes.
func (s *Store) Len() int {
	return len(s.order)
}

// Malformed returns the count of dropped records.
func (s *Store) Malformed() int {
	return s.malformed
}
