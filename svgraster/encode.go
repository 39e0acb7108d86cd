package svgraster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image file format supported by Encode.
type Format uint8

const (
	PNG Format = iota
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("<format %d>", uint8(f))
	}
}

// Ext returns the file extension of f, with its leading dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat returns the format named s, case insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("svgraster: unsupported image format %q", s)
}

// Encode writes img to w in the format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("svgraster: unsupported image format %s", f)
	}
	if err != nil {
		return fmt.Errorf("svgraster: encoding %s image: %w", f, err)
	}
	return nil
}
