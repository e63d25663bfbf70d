// Package report renders pipeline results to flat report files.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Meta identifies one pipeline run in report headers.
type Meta struct {
	RunID          string
	Generated      time.Time
	ScoreThreshold float64
}

// NewMeta stamps a fresh run identity.
func NewMeta(scoreThreshold float64) Meta {
	return Meta{
		RunID:          uuid.NewString(),
		Generated:      time.Now(),
		ScoreThreshold: scoreThreshold,
	}
}

func (m Meta) timestamp() string {
	return m.Generated.Format("2006-01-02 15:04:05")
}
