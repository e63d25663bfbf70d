package score

// Score bucket boundaries used by the run summary.
const (
	highBucketMin   = 80.0
	mediumBucketMin = 60.0
)

// Summary aggregates a scored probe set.
type Summary struct {
	Count      int
	AvgScore   float64
	High       int // score >= 80
	Medium     int // 60 <= score < 80
	Low        int // score < 60
	InUniverse int
}

// Summarize computes bucket counts and the average score.
func Summarize(records []Record) Summary {
	var sum Summary
	if len(records) == 0 {
		return sum
	}

	var total float64
	for _, r := range records {
		total += r.Score
		switch {
		case r.Score >= highBucketMin:
			sum.High++
		case r.Score >= mediumBucketMin:
			sum.Medium++
		default:
			sum.Low++
		}
		if r.InUniverse {
			sum.InUniverse++
		}
	}

	sum.Count = len(records)
	sum.AvgScore = round(total/float64(len(records)), 2)
	return sum
}

// SelectHighQuality returns the in-universe records scoring at or above
// threshold, in ranked order. If none qualify but in-universe records
// exist, the single best such record is returned and fallback is true.
func SelectHighQuality(records []Record, threshold float64) (selected []Record, fallback bool) {
	for _, r := range records {
		if r.InUniverse && r.Score >= threshold {
			selected = append(selected, r)
		}
	}
	if len(selected) > 0 {
		return selected, false
	}

	var best *Record
	for i := range records {
		r := &records[i]
		if !r.InUniverse {
			continue
		}
		if best == nil || r.Score > best.Score {
			best = r
		}
	}
	if best == nil {
		return nil, false
	}
	return []Record{*best}, true
}
