package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scene definition")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// WindowSpec sizes the demo window.
type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func (w WindowSpec) validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size %dx%d", w.Width, w.Height)
	}
	return nil
}

// MaxSegments bounds circle resolution so a 4-vertex-per-segment outline
// still fits 16-bit mesh indices.
const MaxSegments = (math.MaxUint16 + 1) / 4

type namedColor struct {
	name  string
	color Color
}

// checkColors reports the first color outside [0, 1].
func checkColors(colors ...namedColor) error {
	for _, c := range colors {
		if !c.color.inRange() {
			return invalid("%s: color out of range", c.name)
		}
	}
	return nil
}

// BodySpec is a filled circle.
type BodySpec struct {
	Name     string  `yaml:"name"`
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	Color    Color   `yaml:"color"`
}

func (b BodySpec) validate(what string) error {
	if b.Radius <= 0 {
		return invalid("%s: radius must be positive, got %v", what, b.Radius)
	}
	if b.Segments < 3 || b.Segments > MaxSegments {
		return invalid("%s: segments must be in [3, %d], got %d", what, MaxSegments, b.Segments)
	}
	if !b.Color.inRange() {
		return invalid("%s: color out of range", what)
	}
	return nil
}

// OrbiterSpec is a body revolving around its parent while spinning.
// Speeds are in degrees per tick.
type OrbiterSpec struct {
	BodySpec   `yaml:",inline"`
	Orbit      float64 `yaml:"orbit"`
	Revolution float64 `yaml:"revolution"`
	Rotation   float64 `yaml:"rotation"`
}

func (o OrbiterSpec) validate() error {
	if err := o.BodySpec.validate(o.Name); err != nil {
		return err
	}
	if o.Orbit <= 0 {
		return invalid("%s: orbit must be positive, got %v", o.Name, o.Orbit)
	}
	return nil
}

// StarsSpec is a random point field regenerated on click.
type StarsSpec struct {
	Count int     `yaml:"count"`
	Size  float64 `yaml:"size"`
	Bound float64 `yaml:"bound"`
	Color Color   `yaml:"color"`
}

// SolarSystem is the multi-planet scene.
type SolarSystem struct {
	Window     WindowSpec    `yaml:"window"`
	Background Color         `yaml:"background"`
	Stars      StarsSpec     `yaml:"stars"`
	Sun        BodySpec      `yaml:"sun"`
	OrbitColor Color         `yaml:"orbit_color"`
	OrbitWidth float64       `yaml:"orbit_width"`
	Planets    []OrbiterSpec `yaml:"planets"`
	Help       []string      `yaml:"help"`
}

func (s *SolarSystem) Validate() error {
	if err := s.Window.validate(); err != nil {
		return err
	}
	if s.Stars.Count < 0 || s.Stars.Count > 1<<14 {
		return invalid("stars: count %d out of range", s.Stars.Count)
	}
	if s.Stars.Size <= 0 || s.Stars.Bound <= 0 {
		return invalid("stars: size and bound must be positive")
	}
	if err := checkColors(
		namedColor{"background", s.Background},
		namedColor{"stars", s.Stars.Color},
		namedColor{"orbit_color", s.OrbitColor},
	); err != nil {
		return err
	}
	if err := s.Sun.validate("sun"); err != nil {
		return err
	}
	if s.OrbitWidth <= 0 {
		return invalid("orbit_width must be positive, got %v", s.OrbitWidth)
	}
	if len(s.Planets) == 0 {
		return invalid("no planets")
	}
	for _, p := range s.Planets {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

// SunEarth is the sun, earth and moon scene.
type SunEarth struct {
	Window     WindowSpec  `yaml:"window"`
	Background Color       `yaml:"background"`
	Sun        BodySpec    `yaml:"sun"`
	Earth      OrbiterSpec `yaml:"earth"`
	Moon       OrbiterSpec `yaml:"moon"`
	Marker     Color       `yaml:"marker"`
	Help       []string    `yaml:"help"`
}

func (s *SunEarth) Validate() error {
	if err := s.Window.validate(); err != nil {
		return err
	}
	if err := s.Sun.validate("sun"); err != nil {
		return err
	}
	if err := s.Earth.validate(); err != nil {
		return err
	}
	if err := s.Moon.validate(); err != nil {
		return err
	}
	return checkColors(namedColor{"background", s.Background}, namedColor{"marker", s.Marker})
}

// SkySunSpec is the rotating sun with rays in the sailboat scene.
type SkySunSpec struct {
	BodySpec  `yaml:",inline"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Speed     float64 `yaml:"speed"`
	Rays      int     `yaml:"rays"`
	RayLength float64 `yaml:"ray_length"`
}

// BoatSpec places and moves the boat.
type BoatSpec struct {
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"`
	Bound float64 `yaml:"bound"`
	Nudge float64 `yaml:"nudge"`
	Mast  Color   `yaml:"mast"`
	// Hull, main sail and jib colors, in that order.
	Palette []Color `yaml:"palette"`
	// FadeSeconds is how long a palette change takes to blend in.
	FadeSeconds float64 `yaml:"fade_seconds"`
}

// PaletteSize is the number of boat colors regenerated on click.
const PaletteSize = 3

// Sailboat is the boat drifting along the water line.
type Sailboat struct {
	Window     WindowSpec `yaml:"window"`
	Background Color      `yaml:"background"`
	Sea        Color      `yaml:"sea"`
	WaterLine  float64    `yaml:"water_line"`
	Sun        SkySunSpec `yaml:"sun"`
	Boat       BoatSpec   `yaml:"boat"`
	Help       []string   `yaml:"help"`
}

func (s *Sailboat) Validate() error {
	if err := s.Window.validate(); err != nil {
		return err
	}
	if err := s.Sun.validate("sun"); err != nil {
		return err
	}
	if s.Sun.Rays < 0 {
		return invalid("sun: rays must not be negative")
	}
	if s.Boat.Bound <= 0 {
		return invalid("boat: bound must be positive, got %v", s.Boat.Bound)
	}
	// One step may cross at most one bound, so the wrap stays single-step.
	if math.Abs(s.Boat.Speed) > s.Boat.Bound {
		return invalid("boat: speed %v exceeds bound %v", s.Boat.Speed, s.Boat.Bound)
	}
	if s.Boat.Nudge < 0 || s.Boat.Nudge > s.Boat.Bound {
		return invalid("boat: nudge must be in [0, %v], got %v", s.Boat.Bound, s.Boat.Nudge)
	}
	if err := checkColors(
		namedColor{"background", s.Background},
		namedColor{"sea", s.Sea},
		namedColor{"boat: mast", s.Boat.Mast},
	); err != nil {
		return err
	}
	if len(s.Boat.Palette) != PaletteSize {
		return invalid("boat: palette needs %d colors, got %d", PaletteSize, len(s.Boat.Palette))
	}
	for i, c := range s.Boat.Palette {
		if !c.inRange() {
			return invalid("boat: palette color %d out of range", i)
		}
	}
	if s.Boat.FadeSeconds < 0 {
		return invalid("boat: fade_seconds must not be negative")
	}
	return nil
}
