package export

import (
	"path/filepath"

	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

// maxMapChannel is the highest UV channel the runtime format supports.
const maxMapChannel = 2

// extractUVTransform populates the record's coordinate mode, transform,
// wrap modes, and animation curves from the UV generator state.
//
// The host's Y axis points the other way, so vOffset is negated at every
// animation sample and vScale is negated outright. DDS outputs flip the Y
// axis once more; both flips are applied independently, never special-cased
// against each other.
func (e *Exporter) extractUVTransform(uv *scene.UVGen, rec *TextureRecord) {
	if uv == nil {
		uv = scene.DefaultUVGen()
	}

	switch uv.MappingCode {
	case scene.MappingSpherical:
		rec.CoordinatesMode = SphericalMode
	case scene.MappingPlanar:
		rec.CoordinatesMode = PlanarMode
	default:
		rec.CoordinatesMode = ExplicitMode
	}

	if uv.MapChannel > maxMapChannel {
		e.sink.Warning(diag.CodeMapChannel, "unsupported map channel %d, only channels 1 and 2 are supported", uv.MapChannel)
	}
	rec.CoordinatesIndex = uv.MapChannel - 1

	rec.UOffset = uv.UOffset
	rec.VOffset = uv.VOffset
	rec.UScale = uv.UScale
	rec.VScale = -uv.VScale
	rec.UAng = uv.UAngle
	rec.VAng = uv.VAngle
	rec.WAng = uv.WAngle

	rec.WrapU = wrapFromTiling(uv.Tiling, scene.TileUWrap, scene.TileUMirror)
	rec.WrapV = wrapFromTiling(uv.Tiling, scene.TileVWrap, scene.TileVMirror)

	if imaging.NormalizeExt(filepath.Ext(rec.Name)) == "dds" {
		rec.VScale = -rec.VScale
	}

	rec.Animations = buildAnimations(uv)
}

// wrapFromTiling derives an address mode from the tiling bit flags.
// The wrap bit wins over the mirror bit; neither means clamp.
func wrapFromTiling(tiling, wrapBit, mirrorBit int) WrapMode {
	switch {
	case tiling&wrapBit != 0:
		return WrapAddress
	case tiling&mirrorBit != 0:
		return MirrorAddress
	default:
		return ClampAddress
	}
}

// buildAnimations converts keyframe curves into named float animations,
// in the fixed property order. vOffset samples carry the Y-flip.
func buildAnimations(uv *scene.UVGen) []Animation {
	var out []Animation
	for _, target := range scene.CurveTargets {
		keys := uv.Curves[target]
		if len(keys) == 0 {
			continue
		}
		anim := Animation{Property: string(target), Keys: make([]AnimationKey, 0, len(keys))}
		for _, k := range keys {
			v := k.Value
			if target == scene.CurveVOffset {
				v = -v
			}
			anim.Keys = append(anim.Keys, AnimationKey{Frame: k.Frame, Value: v})
		}
		out = append(out, anim)
	}
	return out
}
