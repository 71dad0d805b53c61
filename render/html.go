package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// WriteHTML writes an interactive HTML scatter chart of projected to w, one
// series per label. It uses the same palette, title and axis labels as
// NewScatter.
func WriteHTML(w io.Writer, projected mat.Matrix, labels []int, options ...Option) error {
	cfg := newConfig(options)
	if err := cfg.validate("render.WriteHTML"); err != nil {
		return err
	}

	pts, err := points(projected, labels)
	if err != nil {
		return err
	}
	if _, err := cfg.palette.Colors(labels); err != nil {
		return err
	}

	series := make(map[int][]opts.ScatterData)
	for i, pt := range pts {
		series[labels[i]] = append(series[labels[i]], opts.ScatterData{
			Value: []interface{}{pt.X, pt.Y},
		})
	}

	size := fmt.Sprintf("%dpx", int(CanvasSize.Dots(DPI)))
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: cfg.title,
			Width:     size,
			Height:    size,
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.title}),
		charts.WithXAxisOpts(opts.XAxis{Name: XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: YLabel, Type: "value"}),
	)

	for _, label := range cfg.palette.Labels() {
		data, ok := series[label]
		if !ok {
			continue
		}
		name := cfg.palette[label]
		rgba, err := RGBA(name)
		if err != nil {
			return err
		}
		scatter.AddSeries(fmt.Sprintf("%d (%s)", label, name), data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: fmt.Sprintf("rgba(%d,%d,%d,%.2f)", rgba.R, rgba.G, rgba.B, cfg.alpha),
			}),
		)
	}

	if err := scatter.Render(w); err != nil {
		return errors.Wrap(err, "failed to render HTML chart")
	}
	return nil
}
