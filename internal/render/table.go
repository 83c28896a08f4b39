// Package render holds the output sinks for ranked compression statistics:
// console table, flat text file, CSV, bar chart, and SQLite export.
//
// Every sink consumes an already-ranked entry sequence and emits it in the
// order given; sinks never re-sort.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

const itemWidth = 30

// header builds the column header row: Item, one column per algorithm,
// Average.
func header() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", itemWidth, "Item")
	for _, algo := range compressor.Names() {
		fmt.Fprintf(&b, " %10s", algo)
	}
	fmt.Fprintf(&b, " %10s", "Average")
	return b.String()
}

// formatRow renders one ranked entry as a column-aligned row.
func formatRow(e stats.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", itemWidth, e.ID)
	for _, algo := range compressor.Names() {
		fmt.Fprintf(&b, " %10.2f", e.Ratios[algo])
	}
	fmt.Fprintf(&b, " %10.2f", e.Mean)
	return b.String()
}

// PrintTable writes a titled, column-aligned table of ranked entries to w.
func PrintTable(w io.Writer, entries []stats.Entry, title string) error {
	head := header()
	rule := strings.Repeat("-", len(head))

	if _, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", title, rule, head, rule); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, formatRow(e)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\nNote: Compression ratio is the size of the compressed text divided by the size of the original text.\n"+
		"A lower ratio indicates better compression efficiency.\n")
	return err
}

// WriteText writes the ranked rows to a flat text file, one row per unit,
// without the table chrome.
func WriteText(path string, entries []stats.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(formatRow(e))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
