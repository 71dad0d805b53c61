package render_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/render"
)

func projected() *mat.Dense {
	return mat.NewDense(3, 2, []float64{
		-1.2, 0.3,
		-1.0, -0.4,
		2.2, 0.1,
	})
}

func TestPalette_Colors(t *testing.T) {
	colors, err := render.DefaultPalette.Colors([]int{0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "blue", "green"}, colors)

	for label, want := range map[int]string{0: "blue", 1: "green", 2: "red"} {
		got, err := render.DefaultPalette.Color(label)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, []int{0, 1, 2}, render.DefaultPalette.Labels())
}

func TestPalette_UnknownLabel(t *testing.T) {
	for _, label := range []int{-1, 3, 42} {
		_, err := render.DefaultPalette.Color(label)
		assert.True(t, errors.Is(err, errors.ErrUnknownLabel), "label %d", label)
	}

	colors, err := render.DefaultPalette.Colors([]int{0, 1, 3})
	require.Error(t, err)
	assert.Nil(t, colors)
	assert.True(t, errors.Is(err, errors.ErrUnknownLabel))
	assert.Contains(t, err.Error(), "row 2")
}

func TestRGBA(t *testing.T) {
	c, err := render.RGBA("green")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.G)

	_, err = render.RGBA("chartreuse")
	assert.Error(t, err)
}

func TestNewScatter(t *testing.T) {
	p, err := render.NewScatter(projected(), []int{0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, render.Title, p.Title.Text)
	assert.Equal(t, "X", p.X.Label.Text)
	assert.Equal(t, "Y", p.Y.Label.Text)

	p, err = render.NewScatter(projected(), []int{0, 1, 2}, render.WithTitle("dogs"))
	require.NoError(t, err)
	assert.Equal(t, "dogs", p.Title.Text)
}

func TestNewScatter_Errors(t *testing.T) {
	tests := []struct {
		name      string
		projected mat.Matrix
		labels    []int
		opts      []render.Option
	}{
		{name: "row mismatch", projected: projected(), labels: []int{0, 1}},
		{name: "single column", projected: mat.NewDense(3, 1, []float64{1, 2, 3}), labels: []int{0, 1, 2}},
		{name: "unknown label", projected: projected(), labels: []int{0, 1, 5}},
		{name: "bad alpha", projected: projected(), labels: []int{0, 1, 2}, opts: []render.Option{render.WithAlpha(1.5)}},
		{
			name:      "custom palette without label",
			projected: projected(),
			labels:    []int{0, 1, 2},
			opts:      []render.Option{render.WithPalette(render.Palette{0: "blue", 1: "red"})},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := render.NewScatter(tt.projected, tt.labels, tt.opts...)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestImage(t *testing.T) {
	p, err := render.NewScatter(projected(), []int{0, 0, 1})
	require.NoError(t, err)

	img := render.Image(p)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 1000, img.Bounds().Dy())
}

func TestSave(t *testing.T) {
	p, err := render.NewScatter(projected(), []int{0, 0, 1})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"plot.png", "plot.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, render.Save(p, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	assert.Error(t, render.Save(p, filepath.Join(dir, "plot")))
	assert.Error(t, render.Save(p, filepath.Join(dir, "plot.xyz")))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteHTML(&buf, projected(), []int{0, 0, 1}))

	html := buf.String()
	assert.Contains(t, html, "rgba(0,0,255,0.50)")
	assert.Contains(t, html, "rgba(0,128,0,0.50)")
	assert.NotContains(t, html, "rgba(255,0,0,0.50)")
	assert.Contains(t, html, "1000px")

	buf.Reset()
	err := render.WriteHTML(&buf, projected(), []int{0, 0, 9})
	assert.True(t, errors.Is(err, errors.ErrUnknownLabel))
}

func TestSave_PNGMatchesViewerSize(t *testing.T) {
	p, err := render.NewScatter(projected(), []int{0, 0, 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, render.Save(p, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)

	want := render.Image(p).Bounds()
	assert.Equal(t, want.Dx(), cfg.Width)
	assert.Equal(t, want.Dy(), cfg.Height)
}

func TestWriteHTML_RejectsBadAlpha(t *testing.T) {
	for _, alpha := range []float64{-0.1, 1.5} {
		var buf bytes.Buffer
		err := render.WriteHTML(&buf, projected(), []int{0, 0, 1}, render.WithAlpha(alpha))
		var valueErr *errors.ValueError
		assert.True(t, errors.As(err, &valueErr), "alpha %v", alpha)
		assert.Zero(t, buf.Len())
	}
}
