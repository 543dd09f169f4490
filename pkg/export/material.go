package export

import (
	"path/filepath"

	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

// MaterialExport collects every texture produced for one material.
type MaterialExport struct {
	Material          string             `json:"material"`
	BaseColor         *TextureRecord     `json:"baseColorTexture,omitempty"`
	MetallicRoughness *TextureRecord     `json:"metallicRoughnessTexture,omitempty"`
	Bump              *TextureRecord     `json:"bumpTexture,omitempty"`
	Emissive          *TextureRecord     `json:"emissiveTexture,omitempty"`
	Ambient           *TextureRecord     `json:"ambientTexture,omitempty"`
	EmissiveFresnel   *FresnelParameters `json:"emissiveFresnelParameters,omitempty"`
}

// Manifest is the JSON document the CLI writes next to the images.
type Manifest struct {
	Materials   []*MaterialExport `json:"materials"`
	Environment *TextureRecord    `json:"environmentTexture,omitempty"`
}

// ExportMaterial runs the whole pipeline for one material. Every failure
// inside is local: a material with nothing exportable still yields a
// (mostly empty) result and the run continues.
func (e *Exporter) ExportMaterial(mat *scene.Material) *MaterialExport {
	e.sink.Message("exporting material %s", mat.Name)
	e.sink.Indent()
	defer e.sink.Outdent()

	out := &MaterialExport{Material: mat.Name}
	out.BaseColor = e.FuseBaseColorAlpha(mat)
	out.MetallicRoughness = e.FuseMetallicRoughness(mat)
	out.Bump, _, _ = e.ExportTexture(mat, scene.SlotBump)
	out.Emissive, out.EmissiveFresnel, _ = e.ExportTexture(mat, scene.SlotEmissive)
	out.Ambient, _, _ = e.ExportTexture(mat, scene.SlotAmbientOcclusion)
	return out
}

// ExportScene exports every material plus an optional environment texture.
func (e *Exporter) ExportScene(s *scene.Scene, environment string) *Manifest {
	m := &Manifest{}
	for _, mat := range s.Materials {
		m.Materials = append(m.Materials, e.ExportMaterial(mat))
	}
	if environment != "" {
		m.Environment = e.ExportEnvironment(environment)
	}
	return m
}

// ExportEnvironment copies a DDS environment map verbatim and verifies its
// cube flag. The map is material-independent, so it bypasses the
// conversion table: converting would strip the cube faces.
func (e *Exporter) ExportEnvironment(path string) *TextureRecord {
	if imaging.NormalizeExt(filepath.Ext(path)) != "dds" {
		e.sink.WarningPath(diag.CodeUnsupportedFormat, path,
			"environment texture must be a DDS cube map")
		return nil
	}

	name := filepath.Base(path)
	rec := &TextureRecord{
		Name:         name,
		Level:        1,
		UScale:       1,
		VScale:       1,
		OriginalPath: path,
	}

	if e.opts.Mode == ModeWriteFiles {
		dst := filepath.Join(e.opts.OutputDir, name)
		if e.opts.CopyTextures {
			if err := imaging.CopyFile(path, dst); err != nil {
				e.sink.ErrorPath(diag.CodeCopyFailed, path,
					"failed to copy environment texture %s: %v", name, err)
				return nil
			}
		}
		rec.IsCube = e.detectCube(dst)
		if !rec.IsCube {
			e.sink.WarningPath(diag.CodeUnsupportedFormat, path,
				"environment texture %s does not declare a cube map", name)
		}
	}
	return rec
}
