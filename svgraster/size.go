package svgraster

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglayout/svgregion"
	"golang.org/x/net/html/charset"
)

// ErrNoSize is returned when a document has no usable size.
var ErrNoSize = errors.New("svgraster: document has no usable size")

// user units per unit, at 90 dpi
var unitFactors = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 1.25,
	"pc": 15,
	"mm": 3.543307,
	"cm": 35.43307,
	"in": 90,
}

type viewBox struct{ x, y, w, h float64 }

// header is what the root start tag tells about the geometry.
type header struct {
	width, height string
	box           viewBox
	hasBox        bool
}

// readHeader returns the attributes of the first start element,
// which must be an svg element.
func readHeader(doc string) (header, error) {
	decoder := xml.NewDecoder(strings.NewReader(doc))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			return header{}, fmt.Errorf("%w: no root element", ErrNoSize)
		}
		if err != nil {
			return header{}, fmt.Errorf("svgraster: reading root element: %w", err)
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return header{}, fmt.Errorf("%w: root element is %s", ErrNoSize, se.Name.Local)
		}
		var h header
		for _, attr := range se.Attr {
			if attr.Name.Space != "" {
				continue
			}
			switch attr.Name.Local {
			case "width":
				h.width = attr.Value
			case "height":
				h.height = attr.Value
			case "viewBox":
				h.box, h.hasBox = parseViewBox(attr.Value)
			}
		}
		return h, nil
	}
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func parseViewBox(v string) (viewBox, bool) {
	fields := splitOnCommaOrSpace(v)
	if len(fields) != 4 {
		return viewBox{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		var err error
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return viewBox{}, false
		}
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return viewBox{}, false
	}
	return viewBox{vals[0], vals[1], vals[2], vals[3]}, true
}

// parseLength converts a length to user units. Percentages are relative
// to ref, and are invalid when ref is not positive.
func parseLength(v string, ref float64) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if p, isPercent := strings.CutSuffix(v, "%"); isPercent {
		if ref <= 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		return f * ref / 100, true
	}
	i := len(v)
	for i > 0 && (v[i-1] >= 'a' && v[i-1] <= 'z' || v[i-1] >= 'A' && v[i-1] <= 'Z') {
		i--
	}
	factor, ok := unitFactors[strings.ToLower(v[i:])]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v[:i]), 64)
	if err != nil {
		return 0, false
	}
	return f * factor, true
}

// dimension resolves one side: the explicit length when usable,
// the view box side otherwise.
func dimension(length string, side float64, hasBox bool) int {
	if !hasBox {
		side = 0
	}
	if f, ok := parseLength(length, side); ok {
		return int(math.Round(f))
	}
	return int(math.Round(side))
}

// NaturalSize returns the unscaled pixel size of doc, read from the
// width and height of its root element, or from its view box when they
// are missing or unusable.
func (s Surface) NaturalSize(doc string) (svgregion.Size, error) {
	h, err := readHeader(doc)
	if err != nil {
		return svgregion.Size{}, err
	}
	size := svgregion.Size{
		W: dimension(h.width, h.box.w, h.hasBox),
		H: dimension(h.height, h.box.h, h.hasBox),
	}
	if size.Empty() {
		return svgregion.Size{}, fmt.Errorf("%w (%s)", ErrNoSize, size)
	}
	return size, nil
}
