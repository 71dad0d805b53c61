//go:build !headless

// Package viewer shows a rendered plot in a desktop window.
package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// Show opens a window titled title displaying img at its native size. It
// blocks until the window is closed.
func Show(title string, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.NewValueError("viewer.Show", "image is empty")
	}

	logger := log.GetLoggerWithName("viewer")
	logger.Info("Opening viewer", "width", b.Dx(), "height", b.Dy())

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(&window{src: img}); err != nil {
		return errors.Wrap(err, "viewer failed")
	}

	logger.Debug("Viewer closed")
	return nil
}

type window struct {
	src image.Image
	img *ebiten.Image
}

func (w *window) Update() error {
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImageFromImage(w.src)
	}
	screen.DrawImage(w.img, nil)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := w.src.Bounds()
	return b.Dx(), b.Dy()
}
