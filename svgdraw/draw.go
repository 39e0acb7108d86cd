// Given a layout and the strokes of a steno engine, implements what
// to display.
// This requires a driver presenting the actual frames,
// such as a window, or a writer saving them as .svg or .png files.
package svgdraw

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svglayout/svgraster"
	"github.com/benoitkugler/svglayout/svgregion"
)

// Frame is one state of the display.
type Frame struct {
	Document    string         // complete SVG document
	Size        svgregion.Size // scaled size of the layout
	Width       int            // width of the display area, at least Size.W
	Placeholder bool           // the layout could not be loaded
}

// Driver presents frames.
type Driver interface {
	Present(Frame) error
}

// DriverFunc adapts a function to the Driver interface.
type DriverFunc func(Frame) error

func (f DriverFunc) Present(fr Frame) error { return f(fr) }

// StreamDriver writes the document of every frame to W,
// each one followed by a newline.
type StreamDriver struct {
	W io.Writer
}

func (d StreamDriver) Present(f Frame) error {
	_, err := io.WriteString(d.W, f.Document+"\n")
	return err
}

// FileDriver writes every frame to a numbered file of Dir:
// the document itself when Raster is false, or its rasterization
// encoded in Format.
type FileDriver struct {
	Dir     string
	Prefix  string // defaults to "frame"
	Raster  bool
	Format  svgraster.Format
	Surface svgraster.Surface

	count int
}

// Count returns the number of frames written.
func (d *FileDriver) Count() int { return d.count }

func (d *FileDriver) name(ext string) string {
	prefix := d.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	return filepath.Join(d.Dir, fmt.Sprintf("%s-%04d%s", prefix, d.count, ext))
}

func (d *FileDriver) Present(f Frame) error {
	if !d.Raster {
		if err := os.WriteFile(d.name(".svg"), []byte(f.Document), 0o644); err != nil {
			return err
		}
		d.count++
		return nil
	}

	img, err := d.render(f)
	if err != nil {
		return err
	}
	out, err := os.Create(d.name(d.Format.Ext()))
	if err != nil {
		return err
	}
	if err := svgraster.Encode(out, img, d.Format); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	d.count++
	return nil
}

// render draws the layout at the left of the display area.
func (d *FileDriver) render(f Frame) (image.Image, error) {
	img, err := d.Surface.Rasterize(f.Document, f.Size)
	if err != nil {
		return nil, err
	}
	if f.Width <= f.Size.W {
		return img, nil
	}
	area := image.NewRGBA(image.Rect(0, 0, f.Width, f.Size.H))
	draw.Draw(area, img.Bounds(), img, image.Point{}, draw.Src)
	return area, nil
}
