// Package texture decodes images and manages GPU textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for data that is neither a .tga file
// nor a recognised image.
var ErrUnsupportedFormat = errors.New("texture: unsupported image format")

// Format returns the image format of data: "tga" for files named *.tga,
// otherwise the sniffed extension such as "png" or "webp".
func Format(name string, data []byte) (string, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		return "tga", nil
	}
	if filetype.IsImage(data) {
		kind, err := filetype.Match(data)
		if err == nil && kind != filetype.Unknown {
			return kind.Extension, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Decode decodes data into RGBA with the bottom row first, the layout
// glTexImage2D expects for OBJ texture coordinates.
func Decode(name string, data []byte) (*image.RGBA, error) {
	format, err := Format(name, data)
	if err != nil {
		return nil, err
	}

	var rgba *image.RGBA
	if format == "tga" {
		rgba, err = DecodeTGA(data)
	} else {
		var img image.Image
		img, _, err = image.Decode(bytes.NewReader(data))
		if err == nil {
			rgba = ImageToRGBA(img)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", name, format, err)
	}

	FlipVertical(rgba)
	return rgba, nil
}

// ImageToRGBA converts img to *image.RGBA with its origin at (0, 0). An
// RGBA input with a zero origin is returned as is.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : (top+1)*img.Stride]
		b := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

// Solid returns a 1x1 image of c.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}
