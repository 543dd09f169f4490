package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

func TestExportTexture_DisabledSlot(t *testing.T) {
	mat := newMaterial("quiet")
	mat.Slots[scene.SlotBump] = &scene.TextureSlot{Enabled: false}

	e, diags := newTestExporter(Options{Mode: ModeAttach})
	rec, fres, err := e.ExportTexture(mat, scene.SlotBump)
	if rec != nil || fres != nil || err != nil {
		t.Error("disabled slots should export nothing")
	}
	if len(diags.Events) != 0 {
		t.Error("disabled slots should not produce diagnostics")
	}
}

func TestExportTexture_MissingSourceWarns(t *testing.T) {
	mat := newMaterial("hollow")
	mat.Slots[scene.SlotBump] = &scene.TextureSlot{Enabled: true, Amount: 1}

	e, diags := newTestExporter(Options{Mode: ModeAttach})
	rec, _, err := e.ExportTexture(mat, scene.SlotBump)
	if rec != nil || err != nil {
		t.Error("expected a degraded nil result")
	}
	if len(diags.ByCode(diag.CodeMissingSource)) != 1 {
		t.Error("expected a missing-source warning")
	}
}

func TestExportTexture_PopulatesRecord(t *testing.T) {
	dir := t.TempDir()
	bmp := imaging.NewBitmap(1, 1)
	bmp.SetRGBA(0, 0, 1, 2, 3, 255)
	path := writeFixture(t, dir, "bump.png", bmp)

	mat := newMaterial("bricks")
	slot := slotWithBitmap(path, scene.AlphaSourceRGBIntensity)
	slot.Amount = 0.75
	node := slot.Node.(*scene.BitmapNode)
	node.UV.Tiling = scene.TileUWrap | scene.TileVWrap
	mat.Slots[scene.SlotBump] = slot

	e, _ := newTestExporter(Options{Mode: ModeAttach})
	rec, fres, err := e.ExportTexture(mat, scene.SlotBump)
	if err != nil {
		t.Fatalf("ExportTexture failed: %v", err)
	}
	if fres != nil {
		t.Error("plain bitmap nodes have no fresnel side")
	}
	if rec.Name != "bump.png" {
		t.Errorf("unexpected name %q", rec.Name)
	}
	if rec.Level != 0.75 {
		t.Errorf("level should come from the slot amount, got %v", rec.Level)
	}
	if !rec.GetAlphaFromRGB {
		t.Error("RGB-intensity source should set getAlphaFromRGB")
	}
	if rec.WrapU != WrapAddress || rec.WrapV != WrapAddress {
		t.Error("tiling flags not applied")
	}
	if rec.OriginalPath != path {
		t.Errorf("originalPath = %q", rec.OriginalPath)
	}
	if rec.IsCube {
		t.Error("cube must be false outside write mode")
	}
}

func TestExportTexture_UnsupportedFormat(t *testing.T) {
	mat := newMaterial("odd")
	mat.Slots[scene.SlotBump] = slotWithBitmap("textures/height.exr", scene.AlphaSourceOpaque)

	e, diags := newTestExporter(Options{Mode: ModeAttach})
	rec, _, err := e.ExportTexture(mat, scene.SlotBump)
	if rec != nil || err != nil {
		t.Error("unsupported formats should degrade to nil")
	}
	if len(diags.ByCode(diag.CodeUnsupportedFormat)) != 1 {
		t.Error("expected an unsupported-format warning")
	}
}

func TestExportTexture_CopiesInWriteMode(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	bmp := imaging.NewBitmap(1, 1)
	bmp.SetRGBA(0, 0, 8, 8, 8, 255)
	path := writeFixture(t, srcDir, "detail.png", bmp)

	mat := newMaterial("detailed")
	mat.Slots[scene.SlotBump] = slotWithBitmap(path, scene.AlphaSourceOpaque)

	e, _ := newTestExporter(Options{Mode: ModeWriteFiles, OutputDir: outDir, CopyTextures: true})
	rec, _, err := e.ExportTexture(mat, scene.SlotBump)
	if err != nil {
		t.Fatalf("ExportTexture failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "detail.png")); statErr != nil {
		t.Error("source image should be copied to the output directory")
	}
}

func TestUnwrapBlend_LeftTexture(t *testing.T) {
	left := &scene.BitmapNode{Name: "left", FilePath: "l.png", UV: scene.DefaultUVGen()}
	blend := &scene.BlendNode{
		Name: "mix", Left: left, LeftOn: true,
		LeftColor:  scene.Color{R: 0.2, G: 0.3, B: 0.4},
		RightColor: scene.Color{R: 0.5, G: 0.6, B: 0.7},
		Power:      2,
	}

	e, _ := newTestExporter(Options{})
	tex, fres := e.unwrapBlend(blend)
	if tex != left {
		t.Fatal("expected the left sub-texture")
	}
	if !fres.IsEnabled {
		t.Error("fresnel should be enabled")
	}
	if fres.RightColor != scene.White {
		t.Error("right color should default to white when the left texture is used")
	}
	if fres.LeftColor != blend.LeftColor {
		t.Error("left color should be preserved")
	}
	if fres.Power != 2 {
		t.Errorf("power = %v", fres.Power)
	}
}

func TestUnwrapBlend_RightTexture(t *testing.T) {
	right := &scene.BitmapNode{Name: "right", FilePath: "r.png", UV: scene.DefaultUVGen()}
	blend := &scene.BlendNode{
		Name: "mix", Right: right, RightOn: true,
		LeftColor:  scene.Color{R: 0.2, G: 0.3, B: 0.4},
		RightColor: scene.Color{R: 0.5, G: 0.6, B: 0.7},
		Power:      0.5,
	}

	e, _ := newTestExporter(Options{})
	tex, fres := e.unwrapBlend(blend)
	if tex != right {
		t.Fatal("expected the right sub-texture")
	}
	if fres.LeftColor != scene.White {
		t.Error("left color should default to white when the right texture is used")
	}
	if fres.Power != 1 {
		t.Errorf("power clamps to >= 1, got %v", fres.Power)
	}
}

func TestUnwrapBlend_BothTexturesWarns(t *testing.T) {
	left := &scene.BitmapNode{Name: "left", FilePath: "l.png", UV: scene.DefaultUVGen()}
	right := &scene.BitmapNode{Name: "right", FilePath: "r.png", UV: scene.DefaultUVGen()}
	blend := &scene.BlendNode{Name: "mix", Left: left, Right: right, LeftOn: true, RightOn: true, Power: 1}

	e, diags := newTestExporter(Options{})
	tex, _ := e.unwrapBlend(blend)
	if tex != left {
		t.Error("the first (left) texture should win")
	}
	if len(diags.ByCode(diag.CodeAmbiguousBlend)) != 1 {
		t.Error("expected an ambiguous-blend warning")
	}
}

func TestUnwrapBlend_NoTextures(t *testing.T) {
	blend := &scene.BlendNode{Name: "mix", Power: 3}
	e, _ := newTestExporter(Options{})
	tex, fres := e.unwrapBlend(blend)
	if tex != nil {
		t.Error("expected no texture")
	}
	if fres == nil || !fres.IsEnabled {
		t.Error("fresnel parameters should still be produced")
	}
}

func TestExportTexture_BlendNode(t *testing.T) {
	dir := t.TempDir()
	bmp := imaging.NewBitmap(1, 1)
	bmp.SetRGBA(0, 0, 3, 3, 3, 255)
	path := writeFixture(t, dir, "glow.png", bmp)

	mat := newMaterial("lamp")
	mat.Slots[scene.SlotEmissive] = &scene.TextureSlot{
		Enabled: true,
		Amount:  1,
		Node: &scene.BlendNode{
			Name:   "falloff",
			Left:   &scene.BitmapNode{Name: "glow", FilePath: path, UV: scene.DefaultUVGen()},
			LeftOn: true,
			Power:  4,
		},
	}

	e, _ := newTestExporter(Options{Mode: ModeAttach})
	rec, fres, err := e.ExportTexture(mat, scene.SlotEmissive)
	if err != nil {
		t.Fatalf("ExportTexture failed: %v", err)
	}
	if rec == nil || rec.Name != "glow.png" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if fres == nil || fres.Power != 4 {
		t.Fatalf("unexpected fresnel: %+v", fres)
	}
}
