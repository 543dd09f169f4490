// Package export builds portable texture descriptors from host material
// state: it extracts UV transforms, fuses independent material channels
// into packed bitmaps, and resolves how each source image reaches the
// output directory.
package export

import (
	"github.com/Faultbox/texfuse/pkg/imaging"
	"github.com/Faultbox/texfuse/pkg/scene"
)

// CoordinatesMode selects how the runtime generates texture coordinates.
type CoordinatesMode int

const (
	ExplicitMode CoordinatesMode = iota
	SphericalMode
	PlanarMode
)

// WrapMode is a texture address mode.
type WrapMode int

const (
	ClampAddress WrapMode = iota
	WrapAddress
	MirrorAddress
)

// AnimationKey is one keyframe of an exported float curve.
type AnimationKey struct {
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

// Animation is a named float curve attached to a texture.
type Animation struct {
	Property string         `json:"property"`
	Keys     []AnimationKey `json:"keys"`
}

// TextureRecord is the output descriptor for one texture. It is created
// fresh per export call and handed to the serializer; only the attached
// bitmap survives the call, and only in buffered output mode.
type TextureRecord struct {
	Name             string          `json:"name"`
	Level            float64         `json:"level"`
	HasAlpha         bool            `json:"hasAlpha"`
	GetAlphaFromRGB  bool            `json:"getAlphaFromRGB"`
	CoordinatesMode  CoordinatesMode `json:"coordinatesMode"`
	CoordinatesIndex int             `json:"coordinatesIndex"`

	UOffset float64 `json:"uOffset"`
	VOffset float64 `json:"vOffset"`
	UScale  float64 `json:"uScale"`
	VScale  float64 `json:"vScale"`
	UAng    float64 `json:"uAng"`
	VAng    float64 `json:"vAng"`
	WAng    float64 `json:"wAng"`

	WrapU WrapMode `json:"wrapU"`
	WrapV WrapMode `json:"wrapV"`

	IsCube     bool        `json:"isCube"`
	Animations []Animation `json:"animations,omitempty"`

	OriginalPath string `json:"originalPath,omitempty"`

	// Bitmap holds composited pixels in buffered output mode. It is not
	// serialized into the manifest; the packaging step consumes it.
	Bitmap *imaging.Bitmap `json:"-"`
}

// FresnelParameters describe the constant side of an unwrapped blend node.
type FresnelParameters struct {
	IsEnabled  bool        `json:"isEnabled"`
	LeftColor  scene.Color `json:"leftColor"`
	RightColor scene.Color `json:"rightColor"`
	Power      float64     `json:"power"` // >= 1
}
