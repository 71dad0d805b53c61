// Package render draws projected points as a scatter plot colored by class
// label.
//
// The plot is built with gonum/plot and can be rasterized for the viewer,
// saved to a file, or written as an interactive HTML chart.
package render

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

const (
	// Title is the fixed plot title.
	Title = "Iris-setosa - blue, Iris-versicolor - green,Iris-virginica - red"
	// XLabel and YLabel are the fixed axis labels.
	XLabel = "X"
	YLabel = "Y"
	// Alpha is the point opacity.
	Alpha = 0.5
	// CanvasSize is the side of the square canvas.
	CanvasSize = 10 * vg.Inch
	// DPI is the raster resolution used for the viewer.
	DPI = 100
	// PointRadius is the radius of each glyph.
	PointRadius = vg.Length(2.5)
)

type config struct {
	palette Palette
	title   string
	alpha   float64
}

// Option configures NewScatter and WriteHTML.
type Option func(*config)

// WithPalette overrides DefaultPalette.
func WithPalette(p Palette) Option {
	return func(c *config) {
		c.palette = p
	}
}

// WithTitle overrides Title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithAlpha overrides Alpha.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

func newConfig(opts []Option) config {
	cfg := config{palette: DefaultPalette, title: Title, alpha: Alpha}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func (c config) validate(op string) error {
	if c.alpha < 0 || c.alpha > 1 {
		return errors.NewValueError(op, fmt.Sprintf("alpha must be in [0, 1], got %v", c.alpha))
	}
	return nil
}

// NewScatter builds a scatter plot of projected (n × 2 or wider; columns 0
// and 1 are used) with point i colored by labels[i].
func NewScatter(projected mat.Matrix, labels []int, opts ...Option) (*plot.Plot, error) {
	start := time.Now()
	cfg := newConfig(opts)

	pts, err := points(projected, labels)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate("render.NewScatter"); err != nil {
		return nil, err
	}

	names, err := cfg.palette.Colors(labels)
	if err != nil {
		return nil, err
	}
	glyphs := make([]draw.GlyphStyle, len(names))
	for i, name := range names {
		rgba, err := RGBA(name)
		if err != nil {
			return nil, err
		}
		glyphs[i] = draw.GlyphStyle{
			Color:  withAlpha(rgba, cfg.alpha),
			Radius: PointRadius,
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scatter plotter")
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return glyphs[i]
	}
	p.Add(scatter)

	log.GetLoggerWithName("render").Debug("Scatter built",
		log.OperationKey, log.OperationRender,
		log.PhaseKey, log.PhaseRendering,
		log.SamplesKey, len(pts),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return p, nil
}

// points converts the first two columns of projected to plotter points.
func points(projected mat.Matrix, labels []int) (plotter.XYs, error) {
	r, c := projected.Dims()
	if c < 2 {
		return nil, errors.NewDimensionError("render.NewScatter", 2, c, 1)
	}
	if r != len(labels) {
		return nil, errors.NewDimensionError("render.NewScatter", r, len(labels), 0)
	}
	if r == 0 {
		return nil, errors.NewModelError("render.NewScatter", "no points", errors.ErrEmptyData)
	}

	pts := make(plotter.XYs, r)
	for i := range pts {
		pts[i].X = projected.At(i, 0)
		pts[i].Y = projected.At(i, 1)
	}
	if err := plotter.CheckFloats(flatten(pts)...); err != nil {
		return nil, errors.Wrap(err, "invalid projected coordinates")
	}
	return pts, nil
}

func flatten(pts plotter.XYs) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}
