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
	spec, err := config.LoadSpec[config.SolarSystem](config.SolarSystemFile, "")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	return newApp(orrery.NewScene(), spec, rand.New(rand.NewPCG(1, 2)), nil)
}

func TestBuildsSceneInDrawOrder(t *testing.T) {
	a := newTestApp(t)
	kids := a.scene.Root().Children()

	if kids[0] != a.stars || kids[1] != a.sun {
		t.Fatal("stars then sun should draw first")
	}
	// Each planet adds its path then its orbit container.
	for i, p := range a.planets {
		path := kids[2+2*i]
		if path.Name != p.body.Name+"-path" {
			t.Errorf("child %d = %q, want %s-path", 2+2*i, path.Name, p.body.Name)
		}
		if kids[3+2*i] != p.orbit {
			t.Errorf("child %d should be the %s orbit", 3+2*i, p.body.Name)
		}
	}
	if len(a.planets) != 5 || a.loop.Len() != 10 {
		t.Errorf("planets = %d, animated values = %d", len(a.planets), a.loop.Len())
	}
	if a.sun.Color != (orrery.Color{R: 1, G: 0.8, B: 0, A: 1}) {
		t.Errorf("sun color = %+v", a.sun.Color)
	}
	if a.scene.ClearColor != (orrery.Color{R: 0, G: 0, B: 0.1, A: 1}) {
		t.Errorf("clear color = %+v", a.scene.ClearColor)
	}
}

func TestTickAdvancesAndRenderSyncs(t *testing.T) {
	a := newTestApp(t)
	earth := a.planets[2]

	for range 10 {
		a.OnTick()
	}
	if math.Abs(earth.revolution.Angle-10) > 1e-9 || math.Abs(earth.rotation.Angle-15) > 1e-9 {
		t.Fatalf("earth angles = %v / %v, want 10 / 15", earth.revolution.Angle, earth.rotation.Angle)
	}

	a.OnRender(a.scene)
	if math.Abs(earth.orbit.Rotation-orrery.Radians(10)) > 1e-12 {
		t.Errorf("orbit rotation = %v, want %v", earth.orbit.Rotation, orrery.Radians(10))
	}
	if math.Abs(earth.body.Rotation-orrery.Radians(15)) > 1e-12 {
		t.Errorf("body rotation = %v", earth.body.Rotation)
	}
}

func TestAnglesStayWrapped(t *testing.T) {
	a := newTestApp(t)
	for range 3 {
		a.OnKey(orrery.KeyUp)
	}
	for range 2000 {
		a.OnTick()
		for _, p := range a.planets {
			for _, v := range []float64{p.revolution.Angle, p.rotation.Angle} {
				if v < 0 || v >= 360 {
					t.Fatalf("angle %v out of [0, 360)", v)
				}
			}
		}
	}
}

func TestKeys(t *testing.T) {
	a := newTestApp(t)
	mercury := a.planets[0]

	if err := a.OnKey(orrery.KeySpace); err != nil {
		t.Fatal(err)
	}
	before := mercury.revolution.Angle
	a.OnTick()
	if mercury.revolution.Angle != before {
		t.Error("paused tick should not move planets")
	}
	if a.tweens.Len() != 1 {
		t.Error("pausing should fade in the PAUSED label")
	}
	a.OnKey(orrery.KeySpace)
	if a.loop.Paused() {
		t.Error("second SPACE should resume")
	}

	a.OnKey(orrery.KeyUp)
	a.OnKey(orrery.KeyDown)
	if math.Abs(a.loop.Speed-0.99) > 1e-12 {
		t.Errorf("speed = %v, want 0.99", a.loop.Speed)
	}

	// Left and Right mean nothing here.
	if err := a.OnKey(orrery.KeyLeft); err != nil {
		t.Errorf("Left: %v", err)
	}
	if err := a.OnKey(orrery.KeyEscape); !errors.Is(err, orrery.ErrQuit) {
		t.Errorf("Escape = %v, want ErrQuit", err)
	}
}

func TestPausedLabelFades(t *testing.T) {
	a := newTestApp(t)
	a.OnKey(orrery.KeySpace)
	for range 30 {
		a.OnTick()
	}
	if math.Abs(a.paused.Alpha-1) > 0.01 {
		t.Errorf("PAUSED alpha = %v, want 1", a.paused.Alpha)
	}
	a.OnKey(orrery.KeySpace)
	for range 30 {
		a.OnTick()
	}
	if a.paused.Alpha > 0.01 {
		t.Errorf("PAUSED alpha = %v, want 0", a.paused.Alpha)
	}
}

func TestClickRegeneratesStars(t *testing.T) {
	a := newTestApp(t)
	first := a.starPoints[0]

	a.OnClick(orrery.Vec2{})

	if len(a.starPoints) != 200 {
		t.Fatalf("stars = %d, want 200", len(a.starPoints))
	}
	if a.starPoints[0] == first {
		t.Error("click should scatter new stars")
	}
	for _, p := range a.starPoints {
		if math.Abs(p.X) > 2 || math.Abs(p.Y) > 2 {
			t.Fatalf("star %+v outside [-2,2]²", p)
		}
	}
	// One quad per star.
	if got := len(a.stars.Vertices); got != 4*200 {
		t.Errorf("star vertices = %d, want 800", got)
	}
}

func TestApplyReload(t *testing.T) {
	a := newTestApp(t)
	spec, err := config.LoadSpec[config.SolarSystem](config.SolarSystemFile, "")
	if err != nil {
		t.Fatal(err)
	}
	spec.Planets[0].Revolution = 9
	spec.Sun.Color = config.RGB(1, 0, 0)

	if err := a.apply(spec); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.planets[0].revolution.Speed != 9 {
		t.Errorf("mercury speed = %v, want 9", a.planets[0].revolution.Speed)
	}
	if a.sun.Color != (orrery.Color{R: 1, A: 1}) {
		t.Errorf("sun color = %+v", a.sun.Color)
	}

	spec.Planets = spec.Planets[:4]
	if err := a.apply(spec); !errors.Is(err, errEntityCount) {
		t.Errorf("apply with 4 planets = %v, want errEntityCount", err)
	}
}

func TestScriptedRun(t *testing.T) {
	a := newTestApp(t)
	runner, err := orrery.LoadTestScript([]byte(`
steps:
  - {action: key, key: space}
  - {action: wait, frames: 2}
  - {action: key, key: escape}
`))
	if err != nil {
		t.Fatal(err)
	}
	a.scene.SetTestRunner(runner)

	var quit error
	for range 20 {
		if quit = a.scene.Update(); quit != nil {
			break
		}
	}
	if quit == nil {
		t.Fatal("script should end the run with escape")
	}
	if !a.loop.Paused() {
		t.Error("script paused the loop")
	}
}

func TestCloseReloadStopsWatching(t *testing.T) {
	a := newTestApp(t)
	data, err := config.Load(config.SolarSystemFile, "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := config.NewReloader[config.SolarSystem](config.SolarSystemFile, path)
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

func TestPausedCaptionCentred(t *testing.T) {
	spec, err := config.LoadSpec[config.SolarSystem](config.SolarSystemFile, "")
	if err != nil {
		t.Fatal(err)
	}
	font, err := orrery.LoadDefaultFont(orrery.DefaultFontSize)
	if err != nil {
		t.Fatal(err)
	}
	scene := orrery.NewScene()
	a := newApp(scene, spec, rand.New(rand.NewPCG(1, 2)), font)
	width, _ := font.MeasureString(pausedCaption)

	for _, size := range []int{800, 1600} {
		scene.Layout(size, size)
		want := -width / 2 / scene.Viewport().Scale()
		if math.Abs(a.paused.X-want) > 1e-9 || a.paused.Y != pausedY {
			t.Errorf("%dpx: caption at (%v, %v), want (%v, %v)", size, a.paused.X, a.paused.Y, want, pausedY)
		}
	}
}
