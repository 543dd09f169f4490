// Package scene models the material and texture state read from the host
// content-creation tool. The pipeline only ever reads these values; the
// host's own scene graph stays on its side of the boundary.
//
// Texture nodes form a small tagged union (bitmap or blend) resolved once
// at ingestion, so downstream code switches on concrete types instead of
// matching class names.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Color is a 3-component float color in [0,1].
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

// White is the default sub-texture color on blend nodes.
var White = Color{R: 1, G: 1, B: 1}

// AlphaSource is the per-bitmap setting for where transparency comes from.
type AlphaSource int

const (
	// AlphaSourceImage uses the image's own alpha channel.
	AlphaSourceImage AlphaSource = iota
	// AlphaSourceRGBIntensity derives alpha from pixel luminance.
	AlphaSourceRGBIntensity
	// AlphaSourceOpaque disables transparency.
	AlphaSourceOpaque
)

// Slot identifies a material texture slot.
type Slot int

const (
	SlotBaseColor Slot = iota
	SlotAlpha
	SlotMetallic
	SlotRoughness
	SlotBump
	SlotEmissive
	SlotAmbientOcclusion
)

// slotNames maps yaml keys to slots for scene files.
var slotNames = map[string]Slot{
	"baseColor": SlotBaseColor,
	"alpha":     SlotAlpha,
	"metallic":  SlotMetallic,
	"roughness": SlotRoughness,
	"bump":      SlotBump,
	"emissive":  SlotEmissive,
	"ambient":   SlotAmbientOcclusion,
}

// TextureNode is one of *BitmapNode or *BlendNode.
type TextureNode interface {
	NodeName() string
}

// BitmapNode is a texture node backed by an image file.
type BitmapNode struct {
	Name        string      `yaml:"name"`
	FilePath    string      `yaml:"file"`
	AlphaSource AlphaSource `yaml:"alphaSource"`
	UV          *UVGen      `yaml:"uv"`
}

// NodeName implements TextureNode.
func (n *BitmapNode) NodeName() string { return n.Name }

// BlendNode mixes two sub-textures by view angle. Only one sub-texture is
// exportable; the other side contributes a constant color.
type BlendNode struct {
	Name       string      `yaml:"name"`
	Left       *BitmapNode `yaml:"left"`
	Right      *BitmapNode `yaml:"right"`
	LeftOn     bool        `yaml:"leftOn"`
	RightOn    bool        `yaml:"rightOn"`
	LeftColor  Color       `yaml:"leftColor"`
	RightColor Color       `yaml:"rightColor"`
	Power      float64     `yaml:"power"`
}

// NodeName implements TextureNode.
func (n *BlendNode) NodeName() string { return n.Name }

// TextureSlot is one enabled (or disabled) texture binding on a material.
type TextureSlot struct {
	Enabled bool
	Amount  float64 // scalar intensity multiplier
	Node    TextureNode
}

// Material is the read-only view of a host material.
type Material struct {
	Name            string
	BaseColor       Color
	Alpha           float64 // constant opacity in [0,1]
	Metallic        float64
	Roughness       float64
	InvertRoughness bool
	Slots           map[Slot]*TextureSlot
}

// Slot returns the slot binding, or nil when absent.
func (m *Material) Slot(s Slot) *TextureSlot {
	return m.Slots[s]
}

// EnabledBitmap resolves the slot to its bitmap node if the slot is enabled
// and directly carries one. Blend nodes are not unwrapped here.
func (m *Material) EnabledBitmap(s Slot) *BitmapNode {
	slot := m.Slots[s]
	if slot == nil || !slot.Enabled {
		return nil
	}
	node, _ := slot.Node.(*BitmapNode)
	return node
}

// Scene is the set of materials to export.
type Scene struct {
	Materials []*Material
}

// LoadScene reads a yaml scene description for the CLI.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	return doc.toScene()
}
