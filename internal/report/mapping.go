package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"

	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
	"github.com/Maxy-Ma/core-probe-analysis/internal/pavmap"
)

const previewLength = 50

// regionEntry is one region's rendered mapping data, probes sorted.
type regionEntry struct {
	RegionID   string
	SeqLength  int
	SeqPreview string
	Probes     []string
}

// sortedEntries flattens a grouping into region-sorted entries with
// lexicographically sorted probe lists.
func sortedEntries(grouping pavmap.Grouping, pav fasta.Universe) []regionEntry {
	ids := make([]string, 0, len(grouping))
	for id := range grouping {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]regionEntry, 0, len(ids))
	for _, id := range ids {
		probes := append([]string(nil), grouping[id]...)
		sort.Strings(probes)

		seq := pav[id]
		preview := seq
		if len(preview) > previewLength {
			preview = preview[:previewLength] + "..."
		}

		entries = append(entries, regionEntry{
			RegionID:   id,
			SeqLength:  len(seq),
			SeqPreview: preview,
			Probes:     probes,
		})
	}
	return entries
}

func totalProbes(grouping pavmap.Grouping) int {
	n := 0
	for _, probes := range grouping {
		n += len(probes)
	}
	return n
}

// WriteMappingText renders the probe-to-region mapping as a text report.
func WriteMappingText(w io.Writer, grouping pavmap.Grouping, pav fasta.Universe, meta Meta, probeCount int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# High specificity probe to PAV region mapping\n")
	fmt.Fprintf(bw, "# Run: %s (%s)\n", meta.RunID, meta.timestamp())
	fmt.Fprintf(bw, "# Score threshold: %.1f\n", meta.ScoreThreshold)
	fmt.Fprintf(bw, "# %d high specificity probes, %d mapped\n", probeCount, totalProbes(grouping))
	fmt.Fprintf(bw, "# %d PAV regions matched\n\n", len(grouping))

	for _, e := range sortedEntries(grouping, pav) {
		fmt.Fprintf(bw, "====================================================\n")
		fmt.Fprintf(bw, "PAV region: %s\n", e.RegionID)
		fmt.Fprintf(bw, "Sequence length: %d bp\n", e.SeqLength)
		fmt.Fprintf(bw, "Sequence preview: %s\n", e.SeqPreview)
		fmt.Fprintf(bw, "Associated probes: %d\n", len(e.Probes))
		fmt.Fprintf(bw, "----------------------------------------------------\n")
		for i, probe := range e.Probes {
			fmt.Fprintf(bw, "Probe %d: %s\n", i+1, probe)
		}
		fmt.Fprintf(bw, "====================================================\n\n")
	}

	return bw.Flush()
}

// WriteMappingCSV renders the mapping as CSV, one row per probe.
func WriteMappingCSV(w io.Writer, grouping pavmap.Grouping, pav fasta.Universe) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"PAV_ID", "Probe_ID", "Probe_Count", "Sequence_Length"}); err != nil {
		return err
	}

	for _, e := range sortedEntries(grouping, pav) {
		for _, probe := range e.Probes {
			row := []string{
				e.RegionID,
				probe,
				strconv.Itoa(len(e.Probes)),
				strconv.Itoa(e.SeqLength),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteUnmapped writes the list of probes that resolved to no region.
func WriteUnmapped(w io.Writer, unmapped []string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Probes not mapped to any PAV region\n")
	for _, probe := range unmapped {
		fmt.Fprintf(bw, "%s\n", probe)
	}

	return bw.Flush()
}

var mappingHTMLTemplate = template.Must(template.New("mapping").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Probe to PAV Region Mapping</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        .summary { background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .region { border: 1px solid #ddd; border-radius: 5px; margin-bottom: 20px; overflow: hidden; }
        .region-header { background-color: #4CAF50; color: white; padding: 10px; }
        .region-body { padding: 15px; }
        .probe-list { list-style-type: none; padding: 0; }
        .probe-list li { padding: 5px 0; border-bottom: 1px solid #eee; }
        .probe-list li:last-child { border-bottom: none; }
        .footer { margin-top: 30px; text-align: center; color: #666; font-size: 0.9em; }
        #search-input { padding: 8px; width: 300px; margin-bottom: 20px; }
    </style>
</head>
<body>
    <h1>Probe to PAV Region Mapping</h1>
    <div class="summary">
        <p>Score threshold: {{printf "%.1f" .Meta.ScoreThreshold}}</p>
        <p>High specificity probes: {{.ProbeCount}}</p>
        <p>Mapped probes: {{.MappedCount}}</p>
        <p>PAV regions matched: {{len .Entries}}</p>
    </div>
    <input type="text" id="search-input" placeholder="Filter by PAV or probe id...">
    <div id="results">
{{range .Entries}}    <div class="region">
        <div class="region-header"><h3>{{.RegionID}}</h3></div>
        <div class="region-body">
            <p><strong>Sequence length:</strong> {{.SeqLength}} bp</p>
            <p><strong>Sequence preview:</strong> {{.SeqPreview}}</p>
            <p><strong>Associated probes:</strong> {{len .Probes}}</p>
            <ul class="probe-list">
{{range .Probes}}                <li>{{.}}</li>
{{end}}            </ul>
        </div>
    </div>
{{end}}    </div>
    <div class="footer">
        <p>Run {{.Meta.RunID}} generated {{.Timestamp}}</p>
    </div>
    <script>
        document.getElementById("search-input").addEventListener("input", function() {
            const term = this.value.toLowerCase();
            document.querySelectorAll(".region").forEach(function(el) {
                el.style.display = el.textContent.toLowerCase().includes(term) ? "block" : "none";
            });
        });
    </script>
</body>
</html>
`))

// WriteMappingHTML renders the mapping as an HTML report with a
// client-side filter box.
func WriteMappingHTML(w io.Writer, grouping pavmap.Grouping, pav fasta.Universe, meta Meta, probeCount int) error {
	data := struct {
		Meta        Meta
		Timestamp   string
		ProbeCount  int
		MappedCount int
		Entries     []regionEntry
	}{
		Meta:        meta,
		Timestamp:   meta.timestamp(),
		ProbeCount:  probeCount,
		MappedCount: totalProbes(grouping),
		Entries:     sortedEntries(grouping, pav),
	}
	return mappingHTMLTemplate.Execute(w, data)
}
