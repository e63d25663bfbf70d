package score

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Maxy-Ma/core-probe-analysis/internal/blast"
)

// DefaultChunkSize is the probe count per worker batch.
const DefaultChunkSize = 100

// chunk is an immutable slice of the probe domain handed to one worker.
type chunk struct {
	Index    int
	ProbeIDs []string
}

// chunkResult carries one chunk's records back to the coordinator.
type chunkResult struct {
	Index   int
	Records []Record
	Err     error
}

// ScoreAll scores every probe in the store using a fixed pool of workers.
// The store is split into contiguous chunks of chunkSize probes; results
// are merged in completion order and finally sorted by descending score
// with probe id as tie-break. A panic inside one chunk is logged with the
// chunk index and only that chunk's probes are omitted.
// If workers is 0, runtime.NumCPU() is used.
func (s *Scorer) ScoreAll(store *blast.Store, chunkSize, workers int) []Record {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	probeIDs := store.ProbeIDs()
	total := len(probeIDs)

	chunks := make([]chunk, 0, (total+chunkSize-1)/chunkSize)
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		chunks = append(chunks, chunk{Index: len(chunks), ProbeIDs: probeIDs[start:end]})
	}

	jobs := make(chan chunk, len(chunks))
	for _, c := range chunks {
		jobs <- c
	}
	close(jobs)

	results := make(chan chunkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- s.scoreChunk(c, store)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Drain in completion order, not submission order.
	records := make([]Record, 0, total)
	processed := 0
	for r := range results {
		if r.Err != nil {
			s.logger.Error("chunk failed, omitting its probes",
				zap.Int("chunk", r.Index),
				zap.Error(r.Err))
			continue
		}
		records = append(records, r.Records...)
		processed += len(r.Records)
		s.logger.Info("scoring progress",
			zap.Int("processed", processed),
			zap.Int("total", total))
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].ProbeID < records[j].ProbeID
	})

	return records
}

// scoreChunk scores one chunk, converting a panic into a chunk error.
func (s *Scorer) scoreChunk(c chunk, store *blast.Store) (res chunkResult) {
	res.Index = c.Index

	defer func() {
		if r := recover(); r != nil {
			res.Records = nil
			res.Err = fmt.Errorf("panic in chunk %d: %v", c.Index, r)
		}
	}()

	res.Records = make([]Record, 0, len(c.ProbeIDs))
	for _, probeID := range c.ProbeIDs {
		res.Records = append(res.Records, s.scoreFn(probeID, store.Hits(probeID)))
	}
	return res
}
