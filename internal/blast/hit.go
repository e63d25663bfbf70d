// Package blast parses BLAST tabular (outfmt 6) output and organizes hits
// per probe.
package blast

import (
	"strconv"
	"strings"
)

// MinColumns is the column count of a complete outfmt-6 record. Shorter
// lines are malformed and dropped before scoring.
const MinColumns = 12

// Hit is one BLAST outfmt-6 alignment record:
// qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
type Hit struct {
	ProbeID  string
	TargetID string
	PIdent   float64
	Length   int
	Mismatch int
	GapOpen  int
	QStart   int
	QEnd     int
	SStart   int
	SEnd     int
	EValue   float64
	BitScore float64
}

// PerfectMatch reports whether the hit is a full-identity, zero-mismatch
// alignment.
func (h Hit) PerfectMatch() bool {
	return h.PIdent == 100.0 && h.Mismatch == 0
}

// ParseHit parses one tab-delimited outfmt-6 line. ok is false for
// structurally malformed records: fewer than MinColumns fields or an
// unparsable numeric column.
func ParseHit(line string) (Hit, bool) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) < MinColumns {
		return Hit{}, false
	}

	h := Hit{
		ProbeID:  fields[0],
		TargetID: fields[1],
	}

	var err error
	if h.PIdent, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Hit{}, false
	}
	if h.Length, err = strconv.Atoi(fields[3]); err != nil {
		return Hit{}, false
	}
	if h.Mismatch, err = strconv.Atoi(fields[4]); err != nil {
		return Hit{}, false
	}
	if h.GapOpen, err = strconv.Atoi(fields[5]); err != nil {
		return Hit{}, false
	}
	if h.QStart, err = strconv.Atoi(fields[6]); err != nil {
		return Hit{}, false
	}
	if h.QEnd, err = strconv.Atoi(fields[7]); err != nil {
		return Hit{}, false
	}
	if h.SStart, err = strconv.Atoi(fields[8]); err != nil {
		return Hit{}, false
	}
	if h.SEnd, err = strconv.Atoi(fields[9]); err != nil {
		return Hit{}, false
	}
	if h.EValue, err = strconv.ParseFloat(fields[10], 64); err != nil {
		return Hit{}, false
	}
	if h.BitScore, err = strconv.ParseFloat(fields[11], 64); err != nil {
		return Hit{}, false
	}

	return h, true
}
