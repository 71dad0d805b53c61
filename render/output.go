package render

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// Image rasterizes p onto a CanvasSize square at DPI.
func Image(p *plot.Plot) image.Image {
	return raster(p).Image()
}

func raster(p *plot.Plot) *vgimg.Canvas {
	c := vgimg.NewWith(vgimg.UseWH(CanvasSize, CanvasSize), vgimg.UseDPI(DPI))
	p.Draw(draw.New(c))
	return c
}

// writerTo returns the encoder for format. Raster formats use DPI so a
// saved image matches the viewer pixel for pixel.
func writerTo(p *plot.Plot, format string) (io.WriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: raster(p)}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: raster(p)}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: raster(p)}, nil
	}
	return p.WriterTo(CanvasSize, CanvasSize, format)
}

// Save writes p to path. The format follows the file extension: .png,
// .svg, .pdf, .eps, .jpg, .jpeg, .tif or .tiff.
func Save(p *plot.Plot, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return errors.NewValueError("render.Save", "output path has no extension: "+path)
	}

	w, err := writerTo(p, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported output format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}

	log.GetLoggerWithName("render").Info("Plot saved",
		log.OperationKey, log.OperationRender,
		log.PathKey, path,
		log.FormatKey, format,
	)
	return nil
}
