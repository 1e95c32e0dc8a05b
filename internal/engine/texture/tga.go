package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: data truncated")

// DecodeTGA decodes uncompressed or RLE true-colour TGA data with 24 or 32
// bits per pixel. TGA has no magic number, so callers pick it by
// extension.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: colour-mapped images are not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}
	if imageType == tgaTrueColor {
		if len(d.src) < width*height*d.stride {
			return nil, errTGATruncated
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.next())
		}
		return d.img, nil
	}
	if err := d.decodeRLE(); err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	src           []byte
	pos           int
	width, height int
	stride        int
	topToBottom   bool
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() color.RGBA {
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c
}

// put stores pixel i in scanline order. Bottom-up files are flipped so the
// image is always top row first.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	for i := 0; i < total; {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if d.pos+d.stride > len(d.src) {
				return errTGATruncated
			}
			c := d.next()
			for n := 0; n < count && i < total; n++ {
				d.put(i, c)
				i++
			}
			continue
		}
		for n := 0; n < count && i < total; n++ {
			if d.pos+d.stride > len(d.src) {
				return errTGATruncated
			}
			d.put(i, d.next())
			i++
		}
	}
	return nil
}
