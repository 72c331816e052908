// Package plots renders line charts as self-contained HTML pages, using go-echarts.
package plots

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// Series is one line of the chart.
type Series struct {
	Name   string
	Values []float32
}

// WriteLines renders a page with one line chart, with one line per series, to w.
// xLabels are the labels of the horizontal axis, and each series should have one value per label.
func WriteLines(w io.Writer, title string, xLabels []string, series ...Series) error {
	for _, s := range series {
		if len(s.Values) != len(xLabels) {
			return errors.Errorf("series %q has %d values, but there are %d labels", s.Name, len(s.Values), len(xLabels))
		}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     "shine",
			PageTitle: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line = line.SetXAxis(xLabels)
	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, value := range s.Values {
			items = append(items, opts.LineData{Value: value})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return errors.Wrapf(err, "failed to render chart %q", title)
	}
	return nil
}

// WriteFile is like WriteLines, but it creates (or truncates) the file at filePath.
func WriteFile(filePath, title string, xLabels []string, series ...Series) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create chart file %q", filePath)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "failed to close chart file %q", filePath)
		}
	}()
	return WriteLines(f, title, xLabels, series...)
}
