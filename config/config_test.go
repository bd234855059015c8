package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/orrery"
)

func TestLoadDefaults(t *testing.T) {
	ss, err := LoadSpec[SolarSystem](SolarSystemFile, "")
	if err != nil {
		t.Fatalf("solar system: %v", err)
	}
	if len(ss.Planets) != 5 {
		t.Errorf("planets = %d, want 5", len(ss.Planets))
	}
	if ss.Stars.Count != 200 || ss.Stars.Bound != 2 {
		t.Errorf("stars = %+v", ss.Stars)
	}
	earth := ss.Planets[2]
	if earth.Name != "earth" || earth.Radius != 0.08 || earth.Orbit != 0.65 || earth.Revolution != 1.0 || earth.Rotation != 1.5 {
		t.Errorf("earth = %+v", earth)
	}
	if ss.Sun.Color.R != 1 || ss.Sun.Color.G != 0.8 || ss.Sun.Color.B != 0 || ss.Sun.Color.A != 1 {
		t.Errorf("sun color = %+v", ss.Sun.Color)
	}
	if len(ss.Help) != 4 || ss.Help[3] != "ESC: exit" {
		t.Errorf("help = %v", ss.Help)
	}

	se, err := LoadSpec[SunEarth](SunEarthFile, "")
	if err != nil {
		t.Fatalf("sun/earth: %v", err)
	}
	if se.Earth.Orbit != 1.2 || se.Moon.Orbit != 0.22 || se.Moon.Revolution != 6.0 {
		t.Errorf("sun/earth = %+v", se)
	}

	sb, err := LoadSpec[Sailboat](SailboatFile, "")
	if err != nil {
		t.Fatalf("sailboat: %v", err)
	}
	if sb.Boat.Speed != 0.01 || sb.Boat.Bound != 2.4 || sb.Boat.Nudge != 0.02 {
		t.Errorf("boat = %+v", sb.Boat)
	}
	if len(sb.Boat.Palette) != PaletteSize {
		t.Errorf("palette = %d colors", len(sb.Boat.Palette))
	}
}

func TestLoadOverrideFromDisk(t *testing.T) {
	data, err := Load(SunEarthFile, "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := strings.Replace(string(data), "radius: 0.25", "radius: 0.3", 1)
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	se, err := LoadSpec[SunEarth](SunEarthFile, path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if se.Sun.Radius != 0.3 {
		t.Errorf("sun radius = %v, want 0.3 from override", se.Sun.Radius)
	}
}

func TestLoadMissingOverride(t *testing.T) {
	_, err := LoadSpec[SunEarth](SunEarthFile, filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestValidationErrors(t *testing.T) {
	base, err := Load(SolarSystemFile, "")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		old, repl string
	}{
		{"zero width", "width: 800", "width: 0"},
		{"negative radius", "radius: 0.04,", "radius: -0.04,"},
		{"sun radius", "radius: 0.2\n", "radius: 0\n"},
		{"few segments", "segments: 36\n", "segments: 2\n"},
		{"no stars size", "size: 0.013", "size: 0"},
		{"too many segments", "segments: 36, orbit: 1.2", "segments: 20000, orbit: 1.2"},
		{"background out of range", "background: [0, 0, 0.1]", "background: [0, 0, 1.1]"},
		{"orbit color out of range", "orbit_color: [0.3, 0.3, 0.3]", "orbit_color: [0.3, -0.3, 0.3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(string(base), tt.old, tt.repl, 1)
			if src == string(base) {
				t.Fatalf("replacement %q not found", tt.old)
			}
			_, err := Parse[SolarSystem]([]byte(src))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSailboatValidationErrors(t *testing.T) {
	base, err := Load(SailboatFile, "")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		old, repl string
	}{
		{"sea out of range", `sea: "#1e4f8c"`, "sea: [0, 0, 2]"},
		{"mast out of range", "mast: saddlebrown", "mast: [1, 1, 1, 1.5]"},
		{"speed past bound", "speed: 0.01", "speed: 3"},
		{"negative nudge", "nudge: 0.02", "nudge: -0.02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(string(base), tt.old, tt.repl, 1)
			if src == string(base) {
				t.Fatalf("replacement %q not found", tt.old)
			}
			_, err := Parse[Sailboat]([]byte(src))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSegmentsAtLimitAccepted(t *testing.T) {
	base, err := Load(SolarSystemFile, "")
	if err != nil {
		t.Fatal(err)
	}
	src := strings.Replace(string(base), "segments: 36, orbit: 1.2", fmt.Sprintf("segments: %d, orbit: 1.2", MaxSegments), 1)
	if _, err := Parse[SolarSystem]([]byte(src)); err != nil {
		t.Errorf("segments at MaxSegments: %v", err)
	}

	// The orbit outline is the largest mesh built from Segments.
	path := orrery.NewLineLoop("path", orrery.CirclePoints(1.2, MaxSegments), 0.006)
	if n := len(path.Vertices); n > math.MaxUint16+1 {
		t.Fatalf("outline has %d vertices, more than 16-bit indices address", n)
	}
	for _, idx := range path.Indices[len(path.Indices)-6:] {
		if int(idx) < len(path.Vertices)-4 {
			t.Errorf("last segment index %d points before its own quad", idx)
		}
	}
}

func TestSailboatPaletteSize(t *testing.T) {
	base, err := Load(SailboatFile, "")
	if err != nil {
		t.Fatal(err)
	}
	src := strings.Replace(string(base), "    - white\n", "", 1)
	if _, err := Parse[Sailboat]([]byte(src)); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid for a 2-color palette", err)
	}
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse[SunEarth]([]byte("window: ["))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want a decode error", err)
	}
}

func TestColorForms(t *testing.T) {
	tests := []struct {
		src        string
		r, g, b, a float64
	}{
		{`white`, 1, 1, 1, 1},
		{`Gold`, 1, 215.0 / 255, 0, 1},
		{`"#ff0000"`, 1, 0, 0, 1},
		{`"#00ff0080"`, 0, 1, 0, 128.0 / 255},
		{`[0.2, 0.5, 1]`, 0.2, 0.5, 1, 1},
		{`[0, 0, 0.1, 0.5]`, 0, 0, 0.1, 0.5},
	}
	for _, tt := range tests {
		var c Color
		if err := yaml.Unmarshal([]byte(tt.src), &c); err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		got := []float64{c.R, c.G, c.B, c.A}
		want := []float64{tt.r, tt.g, tt.b, tt.a}
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.src, got, want)
				break
			}
		}
	}
}

func TestColorRejects(t *testing.T) {
	for _, src := range []string{`notacolor`, `"#12"`, `"#gggggg"`, `[1, 2]`, `{r: 1}`} {
		var c Color
		if err := yaml.Unmarshal([]byte(src), &c); err == nil {
			t.Errorf("%s: expected error", src)
		}
	}
}

func TestColorOutOfRangeInvalid(t *testing.T) {
	base, err := Load(SunEarthFile, "")
	if err != nil {
		t.Fatal(err)
	}
	src := strings.Replace(string(base), "color: [0.2, 0.5, 1.0]", "color: [2, 0.5, 1.0]", 1)
	if _, err := Parse[SunEarth]([]byte(src)); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("b: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "scene.yaml" {
			t.Errorf("event for %q, want scene.yaml", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event within 2s")
	}
}

func TestWatcherPollEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if _, ok := w.Poll(); ok {
		t.Error("Poll should report nothing before any write")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestIsSpecFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.yaml": true, "b.YML": true, "c.json": false, "d": false,
	} {
		if got := isSpecFile(name); got != want {
			t.Errorf("isSpecFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReloaderPoll(t *testing.T) {
	data, err := Load(SunEarthFile, "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sunearth.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReloader[SunEarth](SunEarthFile, path)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	defer r.Close()

	if spec, err := r.Poll(); spec != nil || err != nil {
		t.Fatalf("Poll before change = %v, %v", spec, err)
	}

	changed := strings.Replace(string(data), "revolution: 6.0", "revolution: 3.0", 1)
	if err := os.WriteFile(path, []byte(changed), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		spec, err := r.Poll()
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if spec != nil {
			if spec.Moon.Revolution != 3 {
				t.Errorf("moon revolution = %v, want 3", spec.Moon.Revolution)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no reload within 2s")
}
