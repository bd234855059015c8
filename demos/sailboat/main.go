// sailboat drifts a boat along the water line under a turning sun. LEFT and
// RIGHT push the boat, a click repaints it, SPACE pauses and UP/DOWN change
// the speed.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/orrery"
	"github.com/phanxgames/orrery/config"
)

const (
	tickSeconds = 1.0 / 60
	helpX       = -1.9
	helpTop     = 1.8
	helpSpacing = 0.1

	// Sea and water line are stretched on resize when the window is wider.
	seaHalfWidth = 4.0
	seaDepth     = 3.0
	lineWidth    = 0.012
	rayWidth     = 0.02
)

// Boat outline in boat-local units; the origin sits on the water line.
var (
	hullShape = []orrery.Vec2{{X: -0.25, Y: -0.06}, {X: 0.25, Y: -0.06}, {X: 0.36, Y: 0.06}, {X: -0.36, Y: 0.06}}
	mastShape = []orrery.Vec2{{X: 0, Y: 0.06}, {X: 0, Y: 0.62}}
	mainShape = []orrery.Vec2{{X: 0.02, Y: 0.12}, {X: 0.3, Y: 0.12}, {X: 0.02, Y: 0.6}}
	jibShape  = []orrery.Vec2{{X: -0.02, Y: 0.15}, {X: -0.02, Y: 0.54}, {X: -0.26, Y: 0.15}}
)

type reloader = config.Reloader[config.Sailboat, *config.Sailboat]

type app struct {
	scene  *orrery.Scene
	spec   *config.Sailboat
	loop   *orrery.Loop
	rng    *rand.Rand
	tweens orrery.Tweens
	reload *reloader

	sunSpin orrery.Spinner
	boatX   orrery.Scroller

	sun   *orrery.Node
	boat  *orrery.Node
	sea   *orrery.Node
	water *orrery.Node
	// hull, main sail, jib
	tinted  [config.PaletteSize]*orrery.Node
	palette []orrery.RGB8
}

func newApp(scene *orrery.Scene, spec *config.Sailboat, rng *rand.Rand, font *orrery.TTFFont) *app {
	a := &app{
		scene:   scene,
		spec:    spec,
		rng:     rng,
		sunSpin: orrery.Spinner{Speed: spec.Sun.Speed},
		boatX:   orrery.Scroller{Speed: spec.Boat.Speed, Bound: spec.Boat.Bound},
	}
	a.loop = orrery.NewLoop(&a.sunSpin, &a.boatX)
	scene.ClearColor = spec.Background.Color
	root := scene.Root()

	a.sun = orrery.NewContainer("sun")
	a.sun.SetPosition(spec.Sun.X, spec.Sun.Y)
	disc := orrery.NewCircle("sun-disc", spec.Sun.Radius, spec.Sun.Segments)
	disc.Color = spec.Sun.Color.Color
	a.sun.AddChild(disc)
	for i := range spec.Sun.Rays {
		angle := 2 * math.Pi * float64(i) / float64(spec.Sun.Rays)
		inner := spec.Sun.Radius * 1.15
		outer := inner + spec.Sun.RayLength
		ray := orrery.NewLineStrip("sun-ray", []orrery.Vec2{
			{X: inner * math.Cos(angle), Y: inner * math.Sin(angle)},
			{X: outer * math.Cos(angle), Y: outer * math.Sin(angle)},
		}, rayWidth)
		ray.Color = spec.Sun.Color.Color
		a.sun.AddChild(ray)
	}
	root.AddChild(a.sun)

	y := spec.WaterLine
	a.sea = orrery.NewPolygon("sea", []orrery.Vec2{
		{X: -seaHalfWidth, Y: y - seaDepth},
		{X: seaHalfWidth, Y: y - seaDepth},
		{X: seaHalfWidth, Y: y},
		{X: -seaHalfWidth, Y: y},
	})
	a.sea.Color = spec.Sea.Color
	root.AddChild(a.sea)

	a.boat = orrery.NewContainer("boat")
	a.boat.SetPosition(0, spec.Boat.Y)
	hull := orrery.NewPolygon("hull", hullShape)
	mast := orrery.NewLineStrip("mast", mastShape, lineWidth)
	mast.Color = spec.Boat.Mast.Color
	mainSail := orrery.NewPolygon("main-sail", mainShape)
	jib := orrery.NewPolygon("jib", jibShape)
	a.boat.AddChild(mast)
	a.boat.AddChild(mainSail)
	a.boat.AddChild(jib)
	a.boat.AddChild(hull)
	a.tinted = [config.PaletteSize]*orrery.Node{hull, mainSail, jib}
	for i, n := range a.tinted {
		n.Color = spec.Boat.Palette[i].Color
	}
	root.AddChild(a.boat)

	a.water = orrery.NewLineStrip("water-line", []orrery.Vec2{{X: -seaHalfWidth, Y: y}, {X: seaHalfWidth, Y: y}}, lineWidth)
	root.AddChild(a.water)

	for i, line := range spec.Help {
		t := orrery.NewText("help", line, font)
		t.SetPosition(helpX, helpTop-float64(i)*helpSpacing)
		t.Color = orrery.Color{A: 1}
		root.AddChild(t)
	}

	scene.SetHandler(a)
	return a
}

func (a *app) OnKey(k orrery.Key) error {
	if handled, err := a.loop.HandleKey(k); handled {
		return err
	}
	switch k {
	case orrery.KeyLeft:
		a.boatX.Nudge(-a.spec.Boat.Nudge)
	case orrery.KeyRight:
		a.boatX.Nudge(a.spec.Boat.Nudge)
	}
	return nil
}

// OnClick picks a new hull and sail palette and fades the boat into it.
func (a *app) OnClick(orrery.Vec2) {
	a.palette = orrery.Palette(a.rng, config.PaletteSize)
	for i, n := range a.tinted {
		to := a.palette[i].Color()
		if a.spec.Boat.FadeSeconds <= 0 {
			a.tweens.Cancel(n)
			n.Color = to
			continue
		}
		a.tweens.Add(orrery.TweenColor(n, to, float32(a.spec.Boat.FadeSeconds), ease.InOutQuad))
	}
}

func (a *app) OnTick() {
	a.pollReload()
	a.loop.Tick()
	a.tweens.Update(tickSeconds)
}

func (a *app) OnRender(*orrery.Scene) {
	a.sun.SetRotationDegrees(a.sunSpin.Angle)
	a.boat.SetPosition(a.boatX.Offset, a.spec.Boat.Y)
}

// OnResize stretches the sea and water line across the visible width.
func (a *app) OnResize(w, h int) {
	view := a.scene.Viewport().VisibleBounds()
	sx := max(1, view.Width/2/seaHalfWidth)
	a.sea.SetScale(sx, 1)
	a.water.SetScale(sx, 1)
}

// pollReload takes speeds, the nudge step and colors from a changed scene
// definition. A clicked palette survives a reload.
func (a *app) pollReload() {
	if a.reload == nil {
		return
	}
	spec, err := a.reload.Poll()
	if err != nil {
		log.Printf("sailboat: reload: %v", err)
		return
	}
	if spec != nil {
		a.apply(spec)
		log.Printf("sailboat: reloaded %s", a.reload.Path())
	}
}

func (a *app) apply(spec *config.Sailboat) {
	a.sunSpin.Speed = spec.Sun.Speed
	a.boatX.Speed = spec.Boat.Speed
	a.scene.ClearColor = spec.Background.Color
	if a.palette == nil {
		for i, n := range a.tinted {
			a.tweens.Cancel(n)
			n.Color = spec.Boat.Palette[i].Color
		}
	}
	// Geometry stays as built.
	spec.Boat.Y = a.spec.Boat.Y
	spec.Boat.Bound = a.spec.Boat.Bound
	a.spec = spec
}

// closeReload stops watching the config file. Safe to call without -watch.
func (a *app) closeReload() {
	if a.reload == nil {
		return
	}
	if err := a.reload.Close(); err != nil {
		log.Printf("sailboat: watch: %v", err)
	}
	a.reload = nil
}

func main() {
	configPath := flag.String("config", "", "scene definition override (YAML)")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	debug := flag.Bool("debug", false, "log per-frame stats to stderr")
	showFPS := flag.Bool("fps", false, "show the FPS overlay")
	script := flag.String("script", "", "run a scripted input file (YAML)")
	shots := flag.String("shots", "screenshots", "screenshot directory")
	flag.Parse()

	spec, err := config.LoadSpec[config.Sailboat](config.SailboatFile, *configPath)
	if err != nil {
		log.Fatalf("sailboat: %v", err)
	}
	font, err := orrery.LoadDefaultFont(orrery.DefaultFontSize)
	if err != nil {
		log.Fatalf("sailboat: %v", err)
	}

	scene := orrery.NewScene()
	scene.SetDebugMode(*debug)
	scene.ScreenshotDir = *shots
	seed := uint64(time.Now().UnixNano())
	a := newApp(scene, spec, rand.New(rand.NewPCG(seed, seed>>1)), font)

	if *script != "" {
		runner, err := orrery.LoadTestScriptFile(*script)
		if err != nil {
			log.Fatalf("sailboat: %v", err)
		}
		scene.SetTestRunner(runner)
	}

	if *watch {
		if *configPath == "" {
			log.Fatalf("sailboat: -watch needs -config")
		}
		r, err := config.NewReloader[config.Sailboat](config.SailboatFile, *configPath)
		if err != nil {
			log.Fatalf("sailboat: watch: %v", err)
		}
		a.reload = r
	}

	err = orrery.Run(scene, orrery.RunConfig{
		Title:   spec.Window.Title,
		Width:   spec.Window.Width,
		Height:  spec.Window.Height,
		ShowFPS: *showFPS,
	})
	a.closeReload()
	if err != nil {
		log.Fatalf("sailboat: %v", err)
	}
}
