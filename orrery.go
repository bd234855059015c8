package orrery

import (
	"errors"
	"image/color"
)

// ErrQuit is returned by a Handler's OnKey to end the run loop cleanly.
// Run translates it into a normal (status 0) return.
var ErrQuit = errors.New("orrery: quit")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGB returns an opaque color from components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGB255 returns an opaque color from 8-bit components in [0, 255].
func RGB255(r, g, b int) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// FromColor converts any image/color value to a Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
		A: float64(nc.A) / 255,
	}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. World space has Y increasing upward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // renders triangles via DrawTriangles
	NodeTypeText                      // renders a TTF label
)

// Key identifies one of the keys the demos react to.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF12
)

var keyNames = [...]string{
	KeyNone:   "none",
	KeyEscape: "escape",
	KeySpace:  "space",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyF12:    "f12",
}

// String returns the lowercase key name used by input scripts.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey maps a key name (as produced by Key.String) back to a Key.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name && Key(i) != KeyNone {
			return Key(i), true
		}
	}
	return KeyNone, false
}
