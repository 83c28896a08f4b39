package render

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

// WriteCSV writes the ranked entries as CSV with the header
// Item,<algorithms...>,Average.
func WriteCSV(path string, entries []stats.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	head := []string{"Item"}
	for _, algo := range compressor.Names() {
		head = append(head, algo.String())
	}
	head = append(head, "Average")
	if err := w.Write(head); err != nil {
		return errors.NewIO("write", path, err)
	}

	for _, e := range entries {
		row := []string{e.ID}
		for _, algo := range compressor.Names() {
			row = append(row, strconv.FormatFloat(e.Ratios[algo], 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(e.Mean, 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return errors.NewIO("write", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
