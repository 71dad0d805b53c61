//go:build headless

package viewer

import (
	"image"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// Show is unavailable in headless builds; write the plot to a file instead.
func Show(title string, img image.Image) error {
	return errors.NewModelError("viewer.Show",
		"built with the headless tag, use --output to write the plot to a file",
		errors.ErrNotImplemented)
}
