package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts alpha sources by name: image, rgb, opaque.
func (a *AlphaSource) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "", "image":
		*a = AlphaSourceImage
	case "rgb":
		*a = AlphaSourceRGBIntensity
	case "opaque":
		*a = AlphaSourceOpaque
	default:
		return fmt.Errorf("unknown alpha source %q", s)
	}
	return nil
}

// sceneDoc is the yaml shape of a scene file.
type sceneDoc struct {
	Materials []materialDoc `yaml:"materials"`
}

type materialDoc struct {
	Name            string             `yaml:"name"`
	BaseColor       Color              `yaml:"baseColor"`
	Alpha           *float64           `yaml:"alpha"`
	Metallic        float64            `yaml:"metallic"`
	Roughness       float64            `yaml:"roughness"`
	InvertRoughness bool               `yaml:"invertRoughness"`
	Slots           map[string]slotDoc `yaml:"slots"`
}

type slotDoc struct {
	Enabled *bool       `yaml:"enabled"`
	Amount  *float64    `yaml:"amount"`
	Bitmap  *BitmapNode `yaml:"bitmap"`
	Blend   *BlendNode  `yaml:"blend"`
}

// toScene converts the yaml shape into the runtime model, applying
// defaults: slots are enabled at amount 1, materials are fully opaque,
// bitmap nodes get an identity UV generator.
func (d *sceneDoc) toScene() (*Scene, error) {
	s := &Scene{}
	for i := range d.Materials {
		mat, err := d.Materials[i].toMaterial()
		if err != nil {
			return nil, err
		}
		s.Materials = append(s.Materials, mat)
	}
	return s, nil
}

func (d *materialDoc) toMaterial() (*Material, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("material without a name")
	}
	mat := &Material{
		Name:            d.Name,
		BaseColor:       d.BaseColor,
		Alpha:           1,
		Metallic:        d.Metallic,
		Roughness:       d.Roughness,
		InvertRoughness: d.InvertRoughness,
		Slots:           make(map[Slot]*TextureSlot),
	}
	if d.Alpha != nil {
		mat.Alpha = *d.Alpha
	}

	for key, doc := range d.Slots {
		slot, ok := slotNames[key]
		if !ok {
			return nil, fmt.Errorf("material %s: unknown slot %q", d.Name, key)
		}
		ts, err := doc.toSlot(d.Name, key)
		if err != nil {
			return nil, err
		}
		mat.Slots[slot] = ts
	}
	return mat, nil
}

func (d *slotDoc) toSlot(material, key string) (*TextureSlot, error) {
	if d.Bitmap != nil && d.Blend != nil {
		return nil, fmt.Errorf("material %s: slot %s has both bitmap and blend nodes", material, key)
	}

	ts := &TextureSlot{Enabled: true, Amount: 1}
	if d.Enabled != nil {
		ts.Enabled = *d.Enabled
	}
	if d.Amount != nil {
		ts.Amount = *d.Amount
	}

	switch {
	case d.Bitmap != nil:
		normalizeBitmap(d.Bitmap)
		ts.Node = d.Bitmap
	case d.Blend != nil:
		normalizeBlend(d.Blend)
		ts.Node = d.Blend
	}
	return ts, nil
}

func normalizeBitmap(n *BitmapNode) {
	if n.UV == nil {
		n.UV = DefaultUVGen()
	}
	if n.UV.MapChannel == 0 {
		n.UV.MapChannel = 1
	}
}

func normalizeBlend(n *BlendNode) {
	if n.Left != nil {
		normalizeBitmap(n.Left)
	}
	if n.Right != nil {
		normalizeBitmap(n.Right)
	}
	if n.Power == 0 {
		n.Power = 1
	}
	zero := Color{}
	if n.LeftColor == zero {
		n.LeftColor = White
	}
	if n.RightColor == zero {
		n.RightColor = White
	}
}
