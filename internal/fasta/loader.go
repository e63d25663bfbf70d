// Package fasta loads sequence universes from FASTA files.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Universe maps a sequence identifier to its uppercased residue string.
// Built once per run and treated as immutable afterwards.
type Universe map[string]string

// Load reads a FASTA file (plain or gzipped) into a Universe.
// The identifier is the first whitespace-delimited token after '>'.
func Load(path string) (Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// Parse reads FASTA records from r. Sequence lines are concatenated and
// uppercased; blank lines are skipped.
func Parse(r io.Reader) (Universe, error) {
	scanner := bufio.NewScanner(r)
	// Genome-scale records can exceed the default token size.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	u := make(Universe)

	var currentID string
	var currentSeq strings.Builder

	flush := func() {
		if currentID != "" && currentSeq.Len() > 0 {
			u[currentID] = strings.ToUpper(currentSeq.String())
		}
		currentSeq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			flush()
			currentID = parseHeader(line)
			continue
		}

		if currentID != "" {
			currentSeq.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return u, nil
}

// parseHeader extracts the record identifier from a header line.
func parseHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, " \t"); idx != -1 {
		return header[:idx]
	}
	return header
}

// Contains reports whether an identifier exists in the universe.
func (u Universe) Contains(id string) bool {
	_, ok := u[id]
	return ok
}

// Length returns the sequence length for id, or 0 when absent.
func (u Universe) Length(id string) int {
	return len(u[id])
}

// IDs returns the identifier set of the universe.
func (u Universe) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(u))
	for id := range u {
		ids[id] = struct{}{}
	}
	return ids
}
