package orrery

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize matches the small bitmap font of classic help overlays.
const DefaultFontSize = 12

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
	ascent float64
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("orrery: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
		ascent: m.HAscent,
	}, nil
}

// LoadDefaultFont loads the bundled Go Regular face at the given size.
func LoadDefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Label ---

// Label is the content of a text node. The node's world origin is the text
// baseline start, like a raster position; the glyphs themselves are drawn
// screen-aligned at the font's pixel size regardless of zoom or rotation.
type Label struct {
	Content string
	Font    *TTFFont
}

// SetText replaces a text node's content. No-op for non-text nodes.
func (n *Node) SetText(content string) {
	if n.Label == nil {
		return
	}
	n.Label.Content = content
}

// drawLabel draws a label with its baseline starting at screen (sx, sy).
func drawLabel(target *ebiten.Image, l *Label, sx, sy float64, tint Color) {
	if l == nil || l.Font == nil || l.Content == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(sx, sy-l.Font.ascent)
	op.ColorScale.Scale(
		float32(tint.R*tint.A),
		float32(tint.G*tint.A),
		float32(tint.B*tint.A),
		float32(tint.A),
	)
	op.LineSpacing = l.Font.lh
	text.Draw(target, l.Content, l.Font.face, op)
}
