package scene

// Tiling bit flags on a UV generator.
const (
	TileUWrap   = 1 << 0
	TileVWrap   = 1 << 1
	TileUMirror = 1 << 2
	TileVMirror = 1 << 3
)

// Mapping codes reported by the host.
const (
	MappingSpherical = 1
	MappingPlanar    = 2
)

// CurveTarget names an animatable UV property.
type CurveTarget string

const (
	CurveUOffset CurveTarget = "uOffset"
	CurveVOffset CurveTarget = "vOffset"
	CurveUScale  CurveTarget = "uScale"
	CurveVScale  CurveTarget = "vScale"
	CurveUAngle  CurveTarget = "uAng"
	CurveVAngle  CurveTarget = "vAng"
	CurveWAngle  CurveTarget = "wAng"
)

// CurveTargets lists every animatable property in output order.
var CurveTargets = []CurveTarget{
	CurveUOffset, CurveVOffset,
	CurveUScale, CurveVScale,
	CurveUAngle, CurveVAngle, CurveWAngle,
}

// Keyframe is one sample of a float curve.
type Keyframe struct {
	Frame int     `yaml:"frame" json:"frame"`
	Value float64 `yaml:"value" json:"value"`
}

// UVGen is the UV-generator state of a bitmap texture: static transform,
// tiling flags, mapping mode, map channel, and per-property keyframe curves.
type UVGen struct {
	UOffset float64 `yaml:"uOffset"`
	VOffset float64 `yaml:"vOffset"`
	UScale  float64 `yaml:"uScale"`
	VScale  float64 `yaml:"vScale"`
	UAngle  float64 `yaml:"uAng"`
	VAngle  float64 `yaml:"vAng"`
	WAngle  float64 `yaml:"wAng"`

	Tiling      int `yaml:"tiling"`
	MappingCode int `yaml:"mapping"`
	MapChannel  int `yaml:"mapChannel"`

	Curves map[CurveTarget][]Keyframe `yaml:"curves"`
}

// DefaultUVGen returns an identity transform on map channel 1.
func DefaultUVGen() *UVGen {
	return &UVGen{UScale: 1, VScale: 1, MapChannel: 1}
}

// Static returns the static value of an animatable property.
func (uv *UVGen) Static(target CurveTarget) float64 {
	switch target {
	case CurveUOffset:
		return uv.UOffset
	case CurveVOffset:
		return uv.VOffset
	case CurveUScale:
		return uv.UScale
	case CurveVScale:
		return uv.VScale
	case CurveUAngle:
		return uv.UAngle
	case CurveVAngle:
		return uv.VAngle
	case CurveWAngle:
		return uv.WAngle
	}
	return 0
}
