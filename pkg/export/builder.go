package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

// ErrUnresolvableTexture aborts a single slot export when the bound node
// cannot be resolved to a bitmap. This is the only aborting failure in the
// pipeline; everything else degrades.
var ErrUnresolvableTexture = errors.New("texture node cannot be resolved to a bitmap")

// ExportTexture builds the output descriptor for one texture slot.
// Disabled or empty slots yield a nil record. Blend nodes are unwrapped
// into one sub-texture plus fresnel parameters; the fresnel side is
// returned even when no sub-texture is exportable.
func (e *Exporter) ExportTexture(mat *scene.Material, s scene.Slot) (*TextureRecord, *FresnelParameters, error) {
	slot := mat.Slot(s)
	if slot == nil || !slot.Enabled {
		return nil, nil, nil
	}
	if slot.Node == nil {
		e.sink.Warning(diag.CodeMissingSource, "%s: enabled slot has no texture bound", mat.Name)
		return nil, nil, nil
	}

	var tex *scene.BitmapNode
	var fres *FresnelParameters
	switch n := slot.Node.(type) {
	case *scene.BitmapNode:
		tex = n
	case *scene.BlendNode:
		tex, fres = e.unwrapBlend(n)
		if tex == nil {
			return nil, fres, nil
		}
	default:
		err := fmt.Errorf("%w: %s on material %s", ErrUnresolvableTexture, slot.Node.NodeName(), mat.Name)
		e.sink.Error(diag.CodeUnsupportedFormat, "%v", err)
		return nil, fres, err
	}

	name, verdict := imaging.OutputName(tex.FilePath)
	if verdict.Kind == imaging.Unsupported {
		e.sink.WarningPath(diag.CodeUnsupportedFormat, tex.FilePath,
			"%s: unsupported image format %s", mat.Name, filepath.Ext(tex.FilePath))
		return nil, fres, nil
	}

	rec := &TextureRecord{
		Name:            name,
		Level:           slot.Amount,
		HasAlpha:        tex.AlphaSource != scene.AlphaSourceOpaque,
		GetAlphaFromRGB: tex.AlphaSource == scene.AlphaSourceRGBIntensity,
		OriginalPath:    tex.FilePath,
	}
	e.extractUVTransform(tex.UV, rec)

	if e.opts.Mode == ModeWriteFiles {
		dst := filepath.Join(e.opts.OutputDir, name)
		if e.opts.CopyTextures {
			_ = imaging.CopyOrConvert(tex.FilePath, dst, e.sink)
		}
		if imaging.NormalizeExt(filepath.Ext(name)) == "dds" {
			rec.IsCube = e.detectCube(dst)
		}
	}
	return rec, fres, nil
}

// unwrapBlend selects the exportable sub-texture of a blend node and
// captures the constant side as fresnel parameters. Only one sub-texture
// is supported; when both are bound the left one wins.
func (e *Exporter) unwrapBlend(n *scene.BlendNode) (*scene.BitmapNode, *FresnelParameters) {
	fres := &FresnelParameters{
		IsEnabled:  true,
		LeftColor:  n.LeftColor,
		RightColor: n.RightColor,
		Power:      n.Power,
	}
	if fres.Power < 1 {
		fres.Power = 1
	}

	var left, right *scene.BitmapNode
	if n.LeftOn {
		left = n.Left
	}
	if n.RightOn {
		right = n.Right
	}
	if left != nil && right != nil {
		e.sink.Warning(diag.CodeAmbiguousBlend,
			"%s: both blend sub-slots carry textures, only one is supported; using the first", n.Name)
		right = nil
	}

	switch {
	case left != nil:
		fres.RightColor = scene.White
		return left, fres
	case right != nil:
		fres.LeftColor = scene.White
		return right, fres
	default:
		return nil, fres
	}
}

// detectCube inspects a written DDS file. Failures are logged and mean
// "not a cube" rather than aborting the slot export.
func (e *Exporter) detectCube(path string) bool {
	info, err := imaging.LoadDDSInfo(path)
	if err != nil {
		e.sink.Message("cube detection skipped for %s: %v", filepath.Base(path), err)
		return false
	}
	if !info.MipChainComplete() {
		e.sink.Warning(diag.CodeMipChain,
			"%s: mip chain is incomplete, automatic mip generation will be disabled", filepath.Base(path))
	}
	return info.IsCube()
}
