package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotFound          = errors.New("image file not found")
	ErrDecode            = errors.New("image decode failed")
)

// Load decodes a source image into a Bitmap, dispatching on the file
// extension: DDS uses the block decoder, TGA the targa decoder, and the
// raster formats their respective codecs. The source file is never touched
// beyond reading.
func Load(path string) (*Bitmap, error) {
	ext := NormalizeExt(filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
	}

	switch ext {
	case "dds":
		bmp, err := decodeDDS(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
		}
		return bmp, nil
	case "tga":
		img, err := tga.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
		}
		return FromImage(img), nil
	case "png", "jpg", "jpeg", "bmp", "gif", "tif", "tiff":
		img, err := decodeRaster(data, ext)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
		}
		return FromImage(img), nil
	default:
		return nil, fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}

// decodeRaster decodes the generic raster formats by extension.
func decodeRaster(data []byte, ext string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch ext {
	case "png":
		return png.Decode(r)
	case "jpg", "jpeg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "tif", "tiff":
		return tiff.Decode(r)
	default:
		return nil, fmt.Errorf("no raster codec for .%s", ext)
	}
}

// Exists reports whether a source file is present on disk.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
