// Implements the rendering surface of a layout display:
// measuring documents and rasterizing them, by wrapping oksvg and rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/benoitkugler/svglayout/svgregion"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var _ svgregion.Sizer = Surface{} // assert interface conformance

// Surface measures and draws complete documents.
// The zero value is ready to use.
type Surface struct {
	// Strict makes Rasterize fail on elements it can't draw,
	// instead of skipping them.
	Strict bool

	// Background fills the image before drawing, when not nil.
	Background color.Color
}

// Rasterize draws doc, stretched to size, into a new image.
func (s Surface) Rasterize(doc string, size svgregion.Size) (*image.RGBA, error) {
	if size.Empty() {
		return nil, fmt.Errorf("%w (%s requested)", ErrNoSize, size)
	}
	mode := oksvg.IgnoreErrorMode
	if s.Strict {
		mode = oksvg.StrictErrorMode
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), mode)
	if err != nil {
		return nil, fmt.Errorf("svgraster: can't read document: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		// lengths with units are not understood by oksvg
		natural, err := s.NaturalSize(doc)
		if err != nil {
			return nil, err
		}
		icon.ViewBox.W, icon.ViewBox.H = float64(natural.W), float64(natural.H)
	}

	w, h := size.W, size.H
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if s.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}
