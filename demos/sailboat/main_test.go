package main

import (
	"errors"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/orrery"
	"github.com/phanxgames/orrery/config"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	spec, err := config.LoadSpec[config.Sailboat](config.SailboatFile, "")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	return newApp(orrery.NewScene(), spec, rand.New(rand.NewPCG(5, 6)), nil)
}

func TestBoatDriftsAndWraps(t *testing.T) {
	a := newTestApp(t)

	a.OnTick()
	if math.Abs(a.boatX.Offset-0.01) > 1e-12 {
		t.Fatalf("offset = %v, want 0.01", a.boatX.Offset)
	}
	for range 1000 {
		a.OnTick()
		if math.Abs(a.boatX.Offset) > 2.4 {
			t.Fatalf("offset %v outside [-2.4, 2.4]", a.boatX.Offset)
		}
	}

	a.OnRender(a.scene)
	if a.boat.X != a.boatX.Offset || a.boat.Y != -0.4 {
		t.Errorf("boat at (%v, %v), want (%v, -0.4)", a.boat.X, a.boat.Y, a.boatX.Offset)
	}
}

func TestLeftRightNudge(t *testing.T) {
	a := newTestApp(t)

	a.OnKey(orrery.KeyRight)
	a.OnKey(orrery.KeyRight)
	a.OnKey(orrery.KeyLeft)
	if math.Abs(a.boatX.Offset-0.02) > 1e-12 {
		t.Errorf("offset = %v, want 0.02", a.boatX.Offset)
	}

	// Nudges apply while paused.
	a.OnKey(orrery.KeySpace)
	a.OnKey(orrery.KeyLeft)
	if math.Abs(a.boatX.Offset) > 1e-12 {
		t.Errorf("offset = %v, want 0", a.boatX.Offset)
	}
	a.OnTick()
	if math.Abs(a.boatX.Offset) > 1e-12 {
		t.Error("paused tick should not move the boat")
	}
}

func TestSharedKeys(t *testing.T) {
	a := newTestApp(t)
	a.OnKey(orrery.KeyUp)
	a.OnKey(orrery.KeyDown)
	if math.Abs(a.loop.Speed-0.99) > 1e-12 {
		t.Errorf("speed = %v, want 0.99", a.loop.Speed)
	}
	if err := a.OnKey(orrery.KeyEscape); !errors.Is(err, orrery.ErrQuit) {
		t.Errorf("Escape = %v, want ErrQuit", err)
	}
}

func TestSunTurns(t *testing.T) {
	a := newTestApp(t)
	for range 90 {
		a.OnTick()
	}
	a.OnRender(a.scene)
	if math.Abs(a.sun.Rotation-math.Pi/2) > 1e-9 {
		t.Errorf("sun rotation = %v, want pi/2", a.sun.Rotation)
	}
	// Disc plus one node per ray.
	if a.sun.NumChildren() != 1+8 {
		t.Errorf("sun children = %d, want 9", a.sun.NumChildren())
	}
}

func TestClickFadesToNewPalette(t *testing.T) {
	a := newTestApp(t)
	a.OnClick(orrery.Vec2{})

	if len(a.palette) != 3 {
		t.Fatalf("palette = %d colors, want 3", len(a.palette))
	}
	for _, c := range a.palette {
		for _, v := range c {
			if v < 0 || v > 255 {
				t.Fatalf("component %d out of [0, 255]", v)
			}
		}
	}
	if a.tweens.Len() != 3 {
		t.Fatalf("running tweens = %d, want 3", a.tweens.Len())
	}

	// 0.4s at 60 ticks per second, with a little slack.
	for range 30 {
		a.OnTick()
	}
	for i, n := range a.tinted {
		want := a.palette[i].Color()
		if math.Abs(n.Color.R-want.R) > 0.01 || math.Abs(n.Color.G-want.G) > 0.01 || math.Abs(n.Color.B-want.B) > 0.01 {
			t.Errorf("node %s color = %+v, want %+v", n.Name, n.Color, want)
		}
	}
	if a.tweens.Len() != 0 {
		t.Errorf("tweens should be finished, %d running", a.tweens.Len())
	}
}

func TestClickMidFadeRetargets(t *testing.T) {
	a := newTestApp(t)
	a.OnClick(orrery.Vec2{})
	a.OnTick()
	a.OnClick(orrery.Vec2{})
	if a.tweens.Len() != 3 {
		t.Errorf("running tweens = %d, want 3 after a second click", a.tweens.Len())
	}
}

func TestClickWithoutFade(t *testing.T) {
	a := newTestApp(t)
	a.spec.Boat.FadeSeconds = 0
	a.OnClick(orrery.Vec2{})
	for i, n := range a.tinted {
		if n.Color != a.palette[i].Color() {
			t.Errorf("node %s color = %+v, want %+v", n.Name, n.Color, a.palette[i].Color())
		}
	}
}

func TestApplyReload(t *testing.T) {
	a := newTestApp(t)
	spec, err := config.LoadSpec[config.Sailboat](config.SailboatFile, "")
	if err != nil {
		t.Fatal(err)
	}
	spec.Boat.Speed = 0.05
	spec.Boat.Palette[0] = config.RGB(1, 0, 0)

	a.apply(spec)
	a.OnTick()
	if math.Abs(a.boatX.Offset-0.05) > 1e-12 {
		t.Errorf("offset = %v, want 0.05", a.boatX.Offset)
	}
	if a.tinted[0].Color != (orrery.Color{R: 1, A: 1}) {
		t.Errorf("hull color = %+v", a.tinted[0].Color)
	}
}

func TestDrawOrder(t *testing.T) {
	a := newTestApp(t)
	kids := a.scene.Root().Children()
	names := []string{"sun", "sea", "boat", "water-line"}
	for i, want := range names {
		if kids[i].Name != want {
			t.Errorf("child %d = %q, want %q", i, kids[i].Name, want)
		}
	}
}

func TestCloseReloadStopsWatching(t *testing.T) {
	a := newTestApp(t)
	data, err := config.Load(config.SailboatFile, "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := config.NewReloader[config.Sailboat](config.SailboatFile, path)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	a.reload = r

	a.closeReload()
	if a.reload != nil {
		t.Fatal("reloader should be released after close")
	}
	a.closeReload()
	a.OnTick()
}

func TestResizeStretchesSea(t *testing.T) {
	a := newTestApp(t)

	a.scene.Layout(800, 600)
	if a.sea.ScaleX != 1 || a.water.ScaleX != 1 {
		t.Errorf("4:3 scale = %v/%v, want 1", a.sea.ScaleX, a.water.ScaleX)
	}

	// 3200x600: 150 px per unit, so the view is 64/3 units wide.
	a.scene.Layout(3200, 600)
	want := 64.0 / 3 / 2 / seaHalfWidth
	if math.Abs(a.sea.ScaleX-want) > 1e-9 || a.water.ScaleX != a.sea.ScaleX {
		t.Errorf("wide scale = %v/%v, want %v", a.sea.ScaleX, a.water.ScaleX, want)
	}
	if a.sea.ScaleY != 1 {
		t.Errorf("ScaleY = %v, want 1", a.sea.ScaleY)
	}
}
