package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/orrery"
)

// Color is a YAML color. It accepts a CSS color name ("gold"), a hex string
// ("#ffcc00" or "#ffcc0080"), or a list of 3 or 4 components in [0, 1].
type Color struct {
	orrery.Color
}

// RGB returns an opaque Color from components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{orrery.Color{R: r, G: g, B: b, A: 1}}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return c.parseScalar(value.Value)
	case yaml.SequenceNode:
		var parts []float64
		if err := value.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: color components: %w", value.Line, err)
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", value.Line, len(parts))
		}
		c.Color = orrery.Color{R: parts[0], G: parts[1], B: parts[2], A: 1}
		if len(parts) == 4 {
			c.A = parts[3]
		}
		return nil
	default:
		return fmt.Errorf("line %d: color must be a name, hex string or list", value.Line)
	}
}

func (c *Color) parseScalar(s string) error {
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		c.Color = orrery.FromColor(named)
		return nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	c.Color = orrery.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}
	return nil
}

func (c Color) inRange() bool {
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
