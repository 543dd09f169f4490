package imaging

import (
	"errors"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Faultbox/texfuse/pkg/diag"
)

// jpegQuality is used for every JPEG the pipeline writes.
const jpegQuality = 95

// WritePNG encodes a bitmap as PNG at path.
func WritePNG(path string, bmp *Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, bmp.ToImage())
}

// WriteJPEG encodes a bitmap as JPEG at path. Alpha is discarded.
func WriteJPEG(path string, bmp *Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, bmp.ToImage(), &jpeg.Options{Quality: jpegQuality})
}

// CopyOrConvert places the source image at dst. Copyable formats are copied
// byte for byte; convertible ones are decoded and re-encoded as the
// conversion target; unsupported ones are reported and skipped. Every
// failure is reported through the sink with the offending filename and
// returned for callers that care, but nothing here is fatal to an export.
func CopyOrConvert(src, dst string, sink *diag.Sink) error {
	verdict := Classify(filepath.Ext(src))
	switch verdict.Kind {
	case Copyable:
		if err := CopyFile(src, dst); err != nil {
			reportCopyError(sink, src, err)
			return err
		}
		return nil
	case Convertible:
		if err := convertFile(src, dst, verdict.Target); err != nil {
			reportCopyError(sink, src, err)
			return err
		}
		return nil
	default:
		sink.ErrorPath(diag.CodeUnsupportedFormat, src, "cannot copy %s: unsupported format", filepath.Base(src))
		return ErrUnsupportedFormat
	}
}

// CopyFile copies src to dst byte for byte.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// convertFile decodes src and re-encodes it as target ("png" or "jpg") at dst.
func convertFile(src, dst, target string) error {
	bmp, err := Load(src)
	if err != nil {
		return err
	}
	if target == "jpg" {
		return WriteJPEG(dst, bmp)
	}
	return WritePNG(dst, bmp)
}

// reportCopyError maps a copy/convert failure onto the diagnostic taxonomy.
func reportCopyError(sink *diag.Sink, src string, err error) {
	name := filepath.Base(src)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		sink.ErrorPath(diag.CodeNotFound, src, "source image %s not found", name)
	case errors.Is(err, ErrDecode):
		sink.ErrorPath(diag.CodeDecodeError, src, "failed to convert %s: %v", name, err)
	default:
		sink.ErrorPath(diag.CodeCopyFailed, src, "failed to copy %s: %v", name, err)
	}
}
