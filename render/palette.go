package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// Palette maps class labels to display color names.
type Palette map[int]string

// DefaultPalette is the fixed three-class palette.
var DefaultPalette = Palette{
	0: "blue",
	1: "green",
	2: "red",
}

// namedColors holds the RGB values of the color names a Palette may use.
var namedColors = map[string]color.RGBA{
	"blue":   {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"red":    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"orange": {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"purple": {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
}

// Color returns the color name for label. Labels missing from the palette
// fail with ErrUnknownLabel; there is no fallback color.
func (p Palette) Color(label int) (string, error) {
	name, ok := p[label]
	if !ok {
		return "", errors.NewModelError("Palette.Color",
			fmt.Sprintf("label %d has no color (known labels %v)", label, p.Labels()),
			errors.ErrUnknownLabel)
	}
	return name, nil
}

// Colors maps every label to its color name, in order. It fails on the
// first unknown label.
func (p Palette) Colors(labels []int) ([]string, error) {
	colors := make([]string, len(labels))
	for i, l := range labels {
		name, err := p.Color(l)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		colors[i] = name
	}
	return colors, nil
}

// Labels returns the palette's labels in ascending order.
func (p Palette) Labels() []int {
	labels := make([]int, 0, len(p))
	for l := range p {
		labels = append(labels, l)
	}
	sort.Ints(labels)
	return labels
}

// RGBA resolves a color name to an opaque RGBA value.
func RGBA(name string) (color.RGBA, error) {
	c, ok := namedColors[name]
	if !ok {
		return color.RGBA{}, errors.NewValueError("render.RGBA",
			fmt.Sprintf("unknown color name %q", name))
	}
	return c, nil
}

// withAlpha returns c with the given opacity in [0, 1].
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
}
