package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agbru/djsim/internal/simulator"
)

const (
	// HistogramBarWidth is the character width of a full histogram bar.
	HistogramBarWidth = 40
	// HistogramMaxRows bounds the number of outcomes rendered; counts
	// beyond the limit are folded into a single remainder line.
	HistogramMaxRows = 16
)

// RenderHistogram renders the measurement-outcome counts as a horizontal
// ASCII bar chart, sorted by descending count (ties by bit-string). This is
// a purely presentational concern: the counts are displayed as received and
// never modified.
//
// Parameters:
//   - counts: The outcome counts to render.
//   - out: The writer for the chart.
func RenderHistogram(counts simulator.Counts, out io.Writer) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "(no outcomes)")
		return
	}

	type row struct {
		key   string
		count uint64
	}
	rows := make([]row, 0, len(counts))
	var total, max uint64
	for key, n := range counts {
		rows = append(rows, row{key: key, count: n})
		total += n
		if n > max {
			max = n
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})

	rendered := rows
	var remainder uint64
	if len(rows) > HistogramMaxRows {
		rendered = rows[:HistogramMaxRows]
		for _, r := range rows[HistogramMaxRows:] {
			remainder += r.count
		}
	}

	fmt.Fprintf(out, "%s--- Outcome Histogram ---%s\n", ColorBold(), ColorReset())
	for _, r := range rendered {
		width := int(float64(HistogramBarWidth) * float64(r.count) / float64(max))
		bar := strings.Repeat("█", width)
		percent := 100 * float64(r.count) / float64(total)
		fmt.Fprintf(out, "%s%s%s %s%-*s%s %8d (%6.2f%%)\n",
			ColorCyan(), r.key, ColorReset(),
			ColorGreen(), HistogramBarWidth, bar, ColorReset(),
			r.count, percent)
	}
	if remainder > 0 {
		percent := 100 * float64(remainder) / float64(total)
		fmt.Fprintf(out, "(+%d more outcomes) %8d (%6.2f%%)\n",
			len(rows)-HistogramMaxRows, remainder, percent)
	}
}
