package imaging

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math/bits"
	"os"

	"github.com/galaco/dxt"
)

// DDS format errors.
var (
	ErrDDSMagic     = errors.New("invalid DDS magic: expected 'DDS '")
	ErrDDSTruncated = errors.New("truncated DDS header")
	ErrDDSPixelData = errors.New("truncated DDS pixel data")
	ErrDDSFormat    = errors.New("unsupported DDS pixel format")
)

// DDS header constants.
const (
	ddsHeaderSize = 128 // magic + 124-byte header

	ddsCaps2Cubemap = 0x200

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
)

// DDSInfo holds the header fields the pipeline cares about.
type DDSInfo struct {
	Width       uint32
	Height      uint32
	MipCount    uint32
	Caps2       uint32
	FourCC      string // empty for uncompressed formats
	RGBBitCount uint32
	masks       [4]uint32 // r, g, b, a bit masks
	hasAlpha    bool
	fourCCFlag  bool
}

// IsCube reports whether the header declares a 6-face cubemap.
func (i *DDSInfo) IsCube() bool {
	return i.Caps2&ddsCaps2Cubemap != 0
}

// MipChainComplete reports whether the stored mip count covers the full
// chain down to 1x1. Incomplete chains disable automatic mip generation
// in most runtimes.
func (i *DDSInfo) MipChainComplete() bool {
	if i.MipCount == 0 {
		return true
	}
	return i.Width>>(i.MipCount-1) <= 1
}

// ParseDDSHeader parses the fixed-offset fields of a DDS header.
// The header is a sequence of little-endian 32-bit words: height at word 3,
// width at word 4, mip count at word 7, caps2 at word 28 (counting from the
// magic word).
func ParseDDSHeader(data []byte) (*DDSInfo, error) {
	if len(data) < ddsHeaderSize {
		return nil, ErrDDSTruncated
	}
	if string(data[0:4]) != "DDS " {
		return nil, ErrDDSMagic
	}

	word := func(n int) uint32 {
		return binary.LittleEndian.Uint32(data[n*4:])
	}

	info := &DDSInfo{
		Height:      word(3),
		Width:       word(4),
		MipCount:    word(7),
		Caps2:       word(28),
		RGBBitCount: word(22),
	}

	pfFlags := word(20)
	info.fourCCFlag = pfFlags&ddpfFourCC != 0
	info.hasAlpha = pfFlags&ddpfAlphaPixels != 0
	if info.fourCCFlag {
		info.FourCC = string(data[84:88])
	}
	info.masks = [4]uint32{word(23), word(24), word(25), word(26)}

	return info, nil
}

// LoadDDSInfo reads and parses the header of a DDS file.
func LoadDDSInfo(path string) (*DDSInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, ddsHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSTruncated, err)
	}
	return ParseDDSHeader(header)
}

// decodeDDS decodes the top mip level of a DDS file into a Bitmap.
// Supports DXT1/DXT3/DXT5 block compression and uncompressed masked RGB(A).
func decodeDDS(data []byte) (*Bitmap, error) {
	info, err := ParseDDSHeader(data)
	if err != nil {
		return nil, err
	}
	w, h := int(info.Width), int(info.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDDSFormat, w, h)
	}
	payload := data[ddsHeaderSize:]

	if info.fourCCFlag {
		var pix []byte
		switch info.FourCC {
		case "DXT1":
			img := dxt.NewDxt1(image.Rect(0, 0, w, h))
			err = img.Decompress(payload)
			pix = img.Pix
		case "DXT5":
			img := dxt.NewDxt5(image.Rect(0, 0, w, h))
			err = img.Decompress(payload, false)
			pix = img.Pix
		default:
			// github.com/galaco/dxt implements only DXT1 and DXT5; DXT3
			// (and anything else) is rejected as unsupported.
			return nil, fmt.Errorf("%w: fourCC %q", ErrDDSFormat, info.FourCC)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDDSPixelData, err)
		}
		return &Bitmap{W: w, H: h, Pix: pix}, nil
	}

	return decodeDDSMasked(info, payload, w, h)
}

// decodeDDSMasked handles uncompressed DDS pixel data using the header's
// channel bit masks (A8R8G8B8, X8R8G8B8, R8G8B8 and friends).
func decodeDDSMasked(info *DDSInfo, payload []byte, w, h int) (*Bitmap, error) {
	bpp := int(info.RGBBitCount)
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: %d bpp", ErrDDSFormat, bpp)
	}
	stride := bpp / 8
	if len(payload) < w*h*stride {
		return nil, ErrDDSPixelData
	}

	bmp := NewBitmap(w, h)
	for i := 0; i < w*h; i++ {
		var v uint32
		off := i * stride
		for b := 0; b < stride; b++ {
			v |= uint32(payload[off+b]) << (8 * b)
		}
		o := i * 4
		bmp.Pix[o] = maskedChannel(v, info.masks[0])
		bmp.Pix[o+1] = maskedChannel(v, info.masks[1])
		bmp.Pix[o+2] = maskedChannel(v, info.masks[2])
		if info.hasAlpha && info.masks[3] != 0 {
			bmp.Pix[o+3] = maskedChannel(v, info.masks[3])
		} else {
			bmp.Pix[o+3] = 255
		}
	}
	return bmp, nil
}

// maskedChannel extracts one channel from a packed pixel using its bit mask.
func maskedChannel(v, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	return uint8((v & mask) >> bits.TrailingZeros32(mask))
}
