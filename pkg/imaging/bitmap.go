// Package imaging provides the image side of the texture pipeline: format
// classification, decoding by extension, DDS header inspection, and the
// copy-or-convert step that places source images in the output directory.
package imaging

import (
	"image"
	"image/color"
)

// Bitmap is a width x height grid of 8-bit RGBA pixels.
type Bitmap struct {
	W, H int
	Pix  []byte // 4 bytes per pixel, row-major
}

// NewBitmap creates a zeroed bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// Offset returns the index of pixel (x, y) in Pix.
func (b *Bitmap) Offset(x, y int) int {
	return (y*b.W + x) * 4
}

// RGBA returns the pixel at (x, y).
func (b *Bitmap) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA sets the pixel at (x, y).
func (b *Bitmap) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Equal reports whether two bitmaps have identical dimensions and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.W != o.W || b.H != o.H || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts any image.Image to a Bitmap, reducing 16-bit channels
// to 8 bits.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	bmp := NewBitmap(bounds.Dx(), bounds.Dy())

	// Fast paths keep straight-alpha pixels exact; the generic path below
	// goes through premultiplied 16-bit color and loses translucent RGB.
	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < bmp.H; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(bmp.Pix[y*bmp.W*4:(y+1)*bmp.W*4], src.Pix[off:off+bmp.W*4])
		}
		return bmp
	case *image.NRGBA:
		for y := 0; y < bmp.H; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(bmp.Pix[y*bmp.W*4:(y+1)*bmp.W*4], src.Pix[off:off+bmp.W*4])
		}
		return bmp
	}

	for y := 0; y < bmp.H; y++ {
		for x := 0; x < bmp.W; x++ {
			r16, g16, b16, a16 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			bmp.SetRGBA(x, y, uint8(r16>>8), uint8(g16>>8), uint8(b16>>8), uint8(a16>>8))
		}
	}
	return bmp
}

// ToImage wraps the bitmap in an image.RGBA sharing the same pixel storage.
func (b *Bitmap) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.W * 4,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}

// Fill sets every pixel to the given color.
func (b *Bitmap) Fill(c color.RGBA) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = c.A
	}
}

// ChannelByte converts a [0,1] scalar to a byte channel value, truncating
// toward zero. 0.5 maps to 127.
func ChannelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255.0)
}
