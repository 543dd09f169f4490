package imaging

import (
	"path/filepath"
	"strings"
)

// VerdictKind says what the copy/convert pipeline may do with a source file.
type VerdictKind int

const (
	// Unsupported files must not be copied or converted.
	Unsupported VerdictKind = iota
	// Copyable files are written to the output byte for byte.
	Copyable
	// Convertible files are decoded and re-encoded as Verdict.Target.
	Convertible
)

// Verdict is the result of classifying a source file extension.
type Verdict struct {
	Kind   VerdictKind
	Target string // output extension, without dot
}

// copyable extensions are supported by runtime loaders as-is.
var copyable = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tga":  true,
	"bmp":  true,
	"gif":  true,
}

// convertTargets maps decodable extensions to the format they are
// re-encoded as when conversion is required.
var convertTargets = map[string]string{
	"dds":  "png",
	"tga":  "png",
	"tif":  "png",
	"tiff": "png",
	"gif":  "png",
	"bmp":  "jpg",
	"jpg":  "jpg",
	"jpeg": "jpg",
}

// NormalizeExt lowercases an extension and strips the leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify maps a source extension to a pipeline verdict. Copyable formats
// win over the conversion table; everything unknown is Unsupported.
func Classify(ext string) Verdict {
	e := NormalizeExt(ext)
	if copyable[e] {
		return Verdict{Kind: Copyable, Target: e}
	}
	if target, ok := convertTargets[e]; ok {
		return Verdict{Kind: Convertible, Target: target}
	}
	return Verdict{Kind: Unsupported}
}

// ConvertTarget returns the re-encode target for a decodable extension.
// Unlike Classify, this consults the full conversion table even for
// extensions that are also copyable.
func ConvertTarget(ext string) (string, bool) {
	target, ok := convertTargets[NormalizeExt(ext)]
	return target, ok
}

// OutputName resolves the output filename for a source path: copyable
// sources keep their extension, convertible ones swap it for the
// conversion target. The name is empty when the extension is unsupported.
func OutputName(path string) (name string, verdict Verdict) {
	base := filepath.Base(path)
	ext := NormalizeExt(filepath.Ext(base))
	verdict = Classify(ext)
	if verdict.Kind == Unsupported {
		return "", verdict
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if verdict.Kind == Convertible {
		return stem + "." + verdict.Target, verdict
	}
	return stem + "." + ext, verdict
}
