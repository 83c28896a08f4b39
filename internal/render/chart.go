package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

// WriteChart renders the ranked entries as a grouped bar chart image: one
// group per unit on the x axis, one bar per algorithm, ratio on the y axis.
// The output format follows the path extension (.png, .svg, .pdf, ...).
func WriteChart(path string, entries []stats.Entry, title string) error {
	p := plot.New()
	p.Title.Text = title + " (Lower is Better)"
	p.Y.Label.Text = "Compression Ratio"

	algos := compressor.Names()
	barWidth := vg.Points(5)

	for i, algo := range algos {
		values := make(plotter.Values, len(entries))
		for j, e := range entries {
			values[j] = e.Ratios[algo]
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return errors.Wrapf(err, "building %s bars", algo)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		// Spread the group symmetrically around each tick.
		bars.Offset = vg.Length(float64(i)-float64(len(algos)-1)/2) * barWidth

		p.Add(bars)
		p.Legend.Add(algo.String(), bars)
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.ID
	}
	p.NominalX(labels...)
	p.Legend.Top = true

	if err := p.Save(15*vg.Inch, 10*vg.Inch, path); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
