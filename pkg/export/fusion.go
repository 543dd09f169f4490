package export

import (
	"errors"
	"path/filepath"

	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

// Output names of fused textures are the material name plus a fixed
// suffix. Material names must be globally unique; there is no collision
// detection here.
const (
	baseColorSuffix         = "_baseColor.png"
	metallicRoughnessSuffix = "_metallicRoughness.jpg"
)

// FuseBaseColorAlpha packs the base color and alpha channels of a material
// into one RGBA texture. Either source may be missing: constants from the
// material fill the gap. Returns nil when neither source is usable.
func (e *Exporter) FuseBaseColorAlpha(mat *scene.Material) *TextureRecord {
	base := e.usableSource(mat, scene.SlotBaseColor)
	alpha := e.usableSource(mat, scene.SlotAlpha)
	if base == nil && alpha == nil {
		return nil
	}

	rec := &TextureRecord{
		Name:  mat.Name + baseColorSuffix,
		Level: 1,
	}
	rec.HasAlpha = alpha != nil ||
		(base != nil && base.AlphaSource == scene.AlphaSourceImage) ||
		mat.Alpha < 1
	rec.GetAlphaFromRGB = alpha != nil && alpha.AlphaSource == scene.AlphaSourceRGBIntensity
	if base != nil {
		rec.OriginalPath = base.FilePath
	} else {
		rec.OriginalPath = alpha.FilePath
	}

	uvRef := base
	if uvRef == nil {
		uvRef = alpha
	}
	e.extractUVTransform(uvRef.UV, rec)

	// A TIFF base color in its default image-alpha mode forces the
	// runtime into a blended render mode even when the material is fully
	// opaque. Worth a heads-up because nothing else makes it visible.
	if base != nil && alpha == nil && mat.Alpha >= 1 &&
		base.AlphaSource == scene.AlphaSourceImage && isTIFF(base.FilePath) {
		e.sink.WarningPath(diag.CodeForcedBlend, base.FilePath,
			"%s: TIFF base color with image alpha forces a blended render mode", mat.Name)
	}

	if !e.opts.CopyTextures {
		return rec
	}

	baseBmp := e.loadReported(base)
	alphaBmp := e.loadReported(alpha)
	if baseBmp == nil && alphaBmp == nil {
		return rec
	}
	w, h := e.sharedDimensions(mat.Name, baseBmp, alphaBmp)

	out := imaging.NewBitmap(w, h)
	cr := imaging.ChannelByte(mat.BaseColor.R)
	cg := imaging.ChannelByte(mat.BaseColor.G)
	cb := imaging.ChannelByte(mat.BaseColor.B)
	ca := imaging.ChannelByte(mat.Alpha)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := cr, cg, cb
			var a uint8
			if baseBmp != nil {
				var ba uint8
				r, g, b, ba = baseBmp.RGBA(x, y)
				a = ba
			}

			switch {
			case alphaBmp != nil:
				ar, _, _, aa := alphaBmp.RGBA(x, y)
				av := aa
				if alpha.AlphaSource == scene.AlphaSourceRGBIntensity ||
					alpha.AlphaSource == scene.AlphaSourceOpaque {
					av = ar
				}
				a = 255 - av
			case base != nil && base.AlphaSource == scene.AlphaSourceImage && baseBmp != nil:
				// pass-through, all four channels already set
			default:
				a = ca
			}
			out.SetRGBA(x, y, r, g, b, a)
		}
	}

	e.emit(rec, out)
	return rec
}

// FuseMetallicRoughness packs roughness into the green channel and
// metalness into the blue channel of one texture, matching the runtime's
// sampling convention. Red and alpha stay zero. Returns nil when neither
// source is usable.
func (e *Exporter) FuseMetallicRoughness(mat *scene.Material) *TextureRecord {
	metal := e.usableSource(mat, scene.SlotMetallic)
	rough := e.usableSource(mat, scene.SlotRoughness)
	if metal == nil && rough == nil {
		return nil
	}

	rec := &TextureRecord{
		Name:  mat.Name + metallicRoughnessSuffix,
		Level: 1,
	}
	if metal != nil {
		rec.OriginalPath = metal.FilePath
	} else {
		rec.OriginalPath = rough.FilePath
	}

	uvRef := metal
	if uvRef == nil {
		uvRef = rough
	}
	e.extractUVTransform(uvRef.UV, rec)

	if !e.opts.CopyTextures {
		return rec
	}

	metalBmp := e.loadReported(metal)
	roughBmp := e.loadReported(rough)
	if metalBmp == nil && roughBmp == nil {
		return rec
	}
	w, h := e.sharedDimensions(mat.Name, metalBmp, roughBmp)

	out := imaging.NewBitmap(w, h)
	cm := imaging.ChannelByte(mat.Metallic)
	cro := imaging.ChannelByte(mat.Roughness)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m, r := cm, cro
			if metalBmp != nil {
				_, _, b, _ := metalBmp.RGBA(x, y)
				m = b
			}
			if roughBmp != nil {
				_, g, _, _ := roughBmp.RGBA(x, y)
				r = g
			}
			if mat.InvertRoughness {
				r = 255 - r
			}
			out.SetRGBA(x, y, 0, r, m, 0)
		}
	}

	e.emit(rec, out)
	return rec
}

// usableSource resolves a fusion input: the slot must be enabled, carry a
// bitmap node, and its file must exist on disk. Anything less is reported
// and the source is skipped.
func (e *Exporter) usableSource(mat *scene.Material, s scene.Slot) *scene.BitmapNode {
	slot := mat.Slot(s)
	if slot == nil || !slot.Enabled {
		return nil
	}
	if slot.Node == nil {
		e.sink.Warning(diag.CodeMissingSource, "%s: enabled slot has no texture bound", mat.Name)
		return nil
	}
	node, ok := slot.Node.(*scene.BitmapNode)
	if !ok {
		return nil
	}
	if node.FilePath == "" || !imaging.Exists(node.FilePath) {
		e.sink.ErrorPath(diag.CodeNotFound, node.FilePath,
			"texture file %s not found", filepath.Base(node.FilePath))
		return nil
	}
	return node
}

// loadReported loads a source bitmap, converting failures into diagnostics.
// A failed bitmap is treated as absent by the fusion formulas.
func (e *Exporter) loadReported(node *scene.BitmapNode) *imaging.Bitmap {
	if node == nil {
		return nil
	}
	bmp, err := imaging.Load(node.FilePath)
	if err != nil {
		name := filepath.Base(node.FilePath)
		switch {
		case errors.Is(err, imaging.ErrNotFound):
			e.sink.ErrorPath(diag.CodeNotFound, node.FilePath, "texture file %s not found", name)
		case errors.Is(err, imaging.ErrUnsupportedFormat):
			e.sink.WarningPath(diag.CodeUnsupportedFormat, node.FilePath, "cannot load %s: %v", name, err)
		default:
			e.sink.ErrorPath(diag.CodeDecodeError, node.FilePath, "failed to decode %s: %v", name, err)
		}
		return nil
	}
	return bmp
}

// sharedDimensions returns the minimal dimensions covering both inputs.
// A mismatch between two present bitmaps is an error, but fusion proceeds
// on the shared area.
func (e *Exporter) sharedDimensions(material string, a, b *imaging.Bitmap) (int, int) {
	switch {
	case a == nil:
		return b.W, b.H
	case b == nil:
		return a.W, a.H
	}
	if a.W != b.W || a.H != b.H {
		e.sink.Error(diag.CodeDimensionMismatch,
			"%s: fused textures differ in size (%dx%d vs %dx%d), clamping to the shared area",
			material, a.W, a.H, b.W, b.H)
	}
	return min(a.W, b.W), min(a.H, b.H)
}

// emit persists a composited bitmap according to the output mode: encoded
// into the output directory right away, or attached to the record for the
// packaging step.
func (e *Exporter) emit(rec *TextureRecord, bmp *imaging.Bitmap) {
	if e.opts.Mode == ModeAttach {
		rec.Bitmap = bmp
		return
	}
	dst := filepath.Join(e.opts.OutputDir, rec.Name)
	var err error
	if imaging.NormalizeExt(filepath.Ext(rec.Name)) == "jpg" {
		err = imaging.WriteJPEG(dst, bmp)
	} else {
		err = imaging.WritePNG(dst, bmp)
	}
	if err != nil {
		e.sink.ErrorPath(diag.CodeCopyFailed, dst, "failed to write %s: %v", rec.Name, err)
	}
}

func isTIFF(path string) bool {
	ext := imaging.NormalizeExt(filepath.Ext(path))
	return ext == "tif" || ext == "tiff"
}
